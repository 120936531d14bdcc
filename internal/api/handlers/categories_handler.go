package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
)

// CategoriesHandler handles service category HTTP requests
type CategoriesHandler struct {
	storage repositories.Storage
}

// NewCategoriesHandler creates a new categories handler
func NewCategoriesHandler(storage repositories.Storage) *CategoriesHandler {
	return &CategoriesHandler{
		storage: storage,
	}
}

// ListCategories handles GET /api/categories
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.storage.ListServiceCategories(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// GetCategory handles GET /api/categories/{id}
func (h *CategoriesHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		respondWithError(w, http.StatusBadRequest, "category ID is required")
		return
	}

	category, err := h.storage.GetServiceCategory(r.Context(), categoryID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, category)
}

// CreateCategory handles POST /api/categories
func (h *CategoriesHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var payload entities.NewServiceCategory
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.Name == "" || payload.Icon == "" || payload.Color == "" {
		respondWithError(w, http.StatusBadRequest, "name, icon and color are required")
		return
	}

	category, err := h.storage.CreateServiceCategory(r.Context(), payload)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, category)
}

// UpdateCategory handles PATCH /api/categories/{id}
func (h *CategoriesHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.PathValue("id")
	if categoryID == "" {
		respondWithError(w, http.StatusBadRequest, "category ID is required")
		return
	}

	var upd entities.ServiceCategoryUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	category, err := h.storage.UpdateServiceCategory(r.Context(), categoryID, upd)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, category)
}
