package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
)

// ProvidersHandler handles provider profile HTTP requests
type ProvidersHandler struct {
	storage repositories.Storage
}

// NewProvidersHandler creates a new providers handler
func NewProvidersHandler(storage repositories.Storage) *ProvidersHandler {
	return &ProvidersHandler{
		storage: storage,
	}
}

// ListProviders handles GET /api/providers. Filters arrive as query
// parameters and compose conjunctively.
func (h *ProvidersHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ProviderFilter{
		CategoryID: r.URL.Query().Get("categoryId"),
		Location:   r.URL.Query().Get("location"),
	}
	if raw := r.URL.Query().Get("isApproved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid isApproved value")
			return
		}
		filter.IsApproved = &approved
	}

	providers, err := h.storage.ListProviders(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list providers")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}

// GetProvider handles GET /api/providers/{id}
func (h *ProvidersHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	provider, err := h.storage.GetProvider(r.Context(), providerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, provider)
}

// GetProviderByUser handles GET /api/users/{userId}/provider
func (h *ProvidersHandler) GetProviderByUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	provider, err := h.storage.GetProviderByUserID(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, provider)
}

// CreateProvider handles POST /api/providers
func (h *ProvidersHandler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var payload entities.NewProvider
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.UserID == "" || payload.Specialty == "" || payload.Location == "" {
		respondWithError(w, http.StatusBadRequest, "userId, specialty and location are required")
		return
	}

	provider, err := h.storage.CreateProvider(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, provider)
}

// UpdateProvider handles PATCH /api/providers/{id}
func (h *ProvidersHandler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	var upd entities.ProviderUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	provider, err := h.storage.UpdateProvider(r.Context(), providerID, upd)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, provider)
}

// ListProviderCategories handles GET /api/providers/{id}/categories
func (h *ProvidersHandler) ListProviderCategories(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	links, err := h.storage.ListProviderCategories(r.Context(), providerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list provider categories")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": links,
		"count":      len(links),
	})
}

type createProviderCategoryRequest struct {
	CategoryID string `json:"categoryId"`
}

// CreateProviderCategory handles POST /api/providers/{id}/categories
func (h *ProvidersHandler) CreateProviderCategory(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	var payload createProviderCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if payload.CategoryID == "" {
		respondWithError(w, http.StatusBadRequest, "categoryId is required")
		return
	}

	link, err := h.storage.CreateProviderCategory(r.Context(), entities.NewProviderCategory{
		ProviderID: providerID,
		CategoryID: payload.CategoryID,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, link)
}

// ListProviderReviews handles GET /api/providers/{id}/reviews
func (h *ProvidersHandler) ListProviderReviews(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	reviews, err := h.storage.ListProviderReviews(r.Context(), providerID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list reviews")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
