package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
)

// BookingsHandler handles booking HTTP requests
type BookingsHandler struct {
	storage repositories.Storage
}

// NewBookingsHandler creates a new bookings handler
func NewBookingsHandler(storage repositories.Storage) *BookingsHandler {
	return &BookingsHandler{
		storage: storage,
	}
}

// ListBookings handles GET /api/bookings
func (h *BookingsHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter := repositories.BookingFilter{
		CustomerID: r.URL.Query().Get("customerId"),
		ProviderID: r.URL.Query().Get("providerId"),
		Status:     r.URL.Query().Get("status"),
	}

	bookings, err := h.storage.ListBookings(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list bookings")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": bookings,
		"count":    len(bookings),
	})
}

// GetBooking handles GET /api/bookings/{id}
func (h *BookingsHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	booking, err := h.storage.GetBooking(r.Context(), bookingID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}

// CreateBooking handles POST /api/bookings
func (h *BookingsHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var payload entities.NewBooking
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.CustomerID == "" || payload.ProviderID == "" {
		respondWithError(w, http.StatusBadRequest, "customerId and providerId are required")
		return
	}

	booking, err := h.storage.CreateBooking(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, booking)
}

// UpdateBooking handles PATCH /api/bookings/{id}
func (h *BookingsHandler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := r.PathValue("id")
	if bookingID == "" {
		respondWithError(w, http.StatusBadRequest, "booking ID is required")
		return
	}

	var upd entities.BookingUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	booking, err := h.storage.UpdateBooking(r.Context(), bookingID, upd)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, booking)
}
