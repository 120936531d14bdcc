package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

// UsersHandler handles user account HTTP requests
type UsersHandler struct {
	storage repositories.Storage
}

// NewUsersHandler creates a new users handler
func NewUsersHandler(storage repositories.Storage) *UsersHandler {
	return &UsersHandler{
		storage: storage,
	}
}

type createUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
}

// CreateUser handles POST /api/users. The plaintext password is hashed
// here; storage only ever sees the hash.
func (h *UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var payload createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if payload.Email == "" || payload.Password == "" || payload.FirstName == "" || payload.LastName == "" {
		respondWithError(w, http.StatusBadRequest, "email, password, firstName and lastName are required")
		return
	}
	role := entities.UserRole(payload.Role)
	if !validRole(role) {
		respondWithError(w, http.StatusBadRequest, "invalid role")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	user, err := h.storage.CreateUser(r.Context(), entities.NewUser{
		Email:     payload.Email,
		Password:  string(hash),
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Role:      role,
		Phone:     payload.Phone,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, user)
}

// GetUser handles GET /api/users/{id}
func (h *UsersHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	user, err := h.storage.GetUser(r.Context(), userID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

// ListUsers handles GET /api/users
func (h *UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.storage.ListUsers(r.Context())
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"users": users,
		"count": len(users),
	})
}

// UpdateUser handles PATCH /api/users/{id}
func (h *UsersHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user ID is required")
		return
	}

	var upd entities.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if upd.Role != nil && !validRole(*upd.Role) {
		respondWithError(w, http.StatusBadRequest, "invalid role")
		return
	}
	if upd.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*upd.Password), bcrypt.DefaultCost)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		hashed := string(hash)
		upd.Password = &hashed
	}

	user, err := h.storage.UpdateUser(r.Context(), userID, upd)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, user)
}

func validRole(role entities.UserRole) bool {
	switch role {
	case "", entities.UserRoleCustomer, entities.UserRoleProvider, entities.UserRoleAdmin:
		return true
	}
	return false
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps storage errors onto HTTP statuses. Anything
// that is not a typed AppError is an internal error.
func respondWithAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeConflict:
			respondWithError(w, http.StatusConflict, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
