package repositories

import (
	"context"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
)

// ProviderFilter narrows provider listings. Active fields compose with
// AND; zero values mean "no constraint".
type ProviderFilter struct {
	// CategoryID matches providers whose category set contains the id.
	CategoryID string
	// Location is a case-insensitive substring match.
	Location string
	// IsApproved is an exact match when non-nil.
	IsApproved *bool
}

// BookingFilter narrows booking listings. Each field is an exact match
// when non-empty; active fields compose with AND.
type BookingFilter struct {
	CustomerID string
	ProviderID string
	Status     string
}

// Storage is the single persistence contract of the marketplace. Two
// backends implement it: an in-memory store for tests and a postgres
// store for everything else. Callers depend only on this interface and
// must not assume which backend is active.
//
// Reads for a missing id return a NOT_FOUND AppError (check with
// apperrors.IsNotFound); updates against a missing id do the same and
// never create a record. Creates assign the identifier, fill every
// documented default and return the fully materialized entity.
type Storage interface {
	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id string) (*entities.User, error)

	// GetUserByEmail retrieves a user by email
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)

	// ListUsers retrieves all users
	ListUsers(ctx context.Context) ([]*entities.User, error)

	// CreateUser creates a new user from the given input
	CreateUser(ctx context.Context, in entities.NewUser) (*entities.User, error)

	// UpdateUser merges the partial update over an existing user
	UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error)

	// GetServiceCategory retrieves a service category by ID
	GetServiceCategory(ctx context.Context, id string) (*entities.ServiceCategory, error)

	// ListServiceCategories retrieves all service categories
	ListServiceCategories(ctx context.Context) ([]*entities.ServiceCategory, error)

	// CreateServiceCategory creates a new service category
	CreateServiceCategory(ctx context.Context, in entities.NewServiceCategory) (*entities.ServiceCategory, error)

	// UpdateServiceCategory merges the partial update over an existing category
	UpdateServiceCategory(ctx context.Context, id string, upd entities.ServiceCategoryUpdate) (*entities.ServiceCategory, error)

	// GetProvider retrieves a provider by ID
	GetProvider(ctx context.Context, id string) (*entities.Provider, error)

	// GetProviderByUserID retrieves the provider profile linked to a user
	GetProviderByUserID(ctx context.Context, userID string) (*entities.Provider, error)

	// ListProviders retrieves providers matching the filter, each with
	// its denormalized user summary attached when the linked user exists
	ListProviders(ctx context.Context, filter ProviderFilter) ([]*entities.Provider, error)

	// CreateProvider creates a new provider profile
	CreateProvider(ctx context.Context, in entities.NewProvider) (*entities.Provider, error)

	// UpdateProvider merges the partial update over an existing provider
	UpdateProvider(ctx context.Context, id string, upd entities.ProviderUpdate) (*entities.Provider, error)

	// ListProviderCategories retrieves the category links of a provider
	ListProviderCategories(ctx context.Context, providerID string) ([]*entities.ProviderCategory, error)

	// CreateProviderCategory links a provider to a category
	CreateProviderCategory(ctx context.Context, in entities.NewProviderCategory) (*entities.ProviderCategory, error)

	// GetBooking retrieves a booking by ID
	GetBooking(ctx context.Context, id string) (*entities.Booking, error)

	// ListBookings retrieves bookings matching the filter
	ListBookings(ctx context.Context, filter BookingFilter) ([]*entities.Booking, error)

	// CreateBooking creates a new booking
	CreateBooking(ctx context.Context, in entities.NewBooking) (*entities.Booking, error)

	// UpdateBooking merges the partial update over an existing booking
	UpdateBooking(ctx context.Context, id string, upd entities.BookingUpdate) (*entities.Booking, error)

	// GetReview retrieves a review by ID
	GetReview(ctx context.Context, id string) (*entities.Review, error)

	// ListProviderReviews retrieves the visible reviews of a provider.
	// Hidden reviews are never returned, regardless of caller.
	ListProviderReviews(ctx context.Context, providerID string) ([]*entities.Review, error)

	// CreateReview creates a new review
	CreateReview(ctx context.Context, in entities.NewReview) (*entities.Review, error)

	// UpdateReview merges the partial update over an existing review
	UpdateReview(ctx context.Context, id string, upd entities.ReviewUpdate) (*entities.Review, error)

	// DeleteReview removes a review and reports whether it existed.
	// Deleting an already-absent id returns false with no error.
	DeleteReview(ctx context.Context, id string) (bool, error)
}
