package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
)

// ReviewsHandler handles review HTTP requests
type ReviewsHandler struct {
	storage repositories.Storage
}

// NewReviewsHandler creates a new reviews handler
func NewReviewsHandler(storage repositories.Storage) *ReviewsHandler {
	return &ReviewsHandler{
		storage: storage,
	}
}

// CreateReview handles POST /api/reviews
func (h *ReviewsHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var payload entities.NewReview
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.ProviderID == "" || payload.CustomerID == "" || payload.BookingID == "" {
		respondWithError(w, http.StatusBadRequest, "providerId, customerId and bookingId are required")
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		respondWithError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	review, err := h.storage.CreateReview(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, review)
}

// UpdateReview handles PATCH /api/reviews/{id}
func (h *ReviewsHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")
	if reviewID == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	var upd entities.ReviewUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if upd.Rating != nil && (*upd.Rating < 1 || *upd.Rating > 5) {
		respondWithError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	review, err := h.storage.UpdateReview(r.Context(), reviewID, upd)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{id}. Deleting an absent
// review is reported as not found, not an error.
func (h *ReviewsHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	reviewID := r.PathValue("id")
	if reviewID == "" {
		respondWithError(w, http.StatusBadRequest, "review ID is required")
		return
	}

	deleted, err := h.storage.DeleteReview(r.Context(), reviewID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if !deleted {
		respondWithError(w, http.StatusNotFound, "review not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
