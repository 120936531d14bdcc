package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	"github.com/admin222aman/LocalFixConnect/internal/seed"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

// Store is the in-memory storage backend. It holds every collection in
// process memory behind a single lock and loses all state on restart.
// Insertion order is preserved so listings enumerate deterministically.
// Records are cloned at the boundary in both directions; callers never
// alias store state.
type Store struct {
	mu sync.RWMutex

	users     map[string]*entities.User
	userOrder []string

	categories    map[string]*entities.ServiceCategory
	categoryOrder []string

	providers     map[string]*entities.Provider
	providerOrder []string

	providerCategories    map[string]*entities.ProviderCategory
	providerCategoryOrder []string

	bookings     map[string]*entities.Booking
	bookingOrder []string

	reviews     map[string]*entities.Review
	reviewOrder []string
}

var _ repositories.Storage = (*Store)(nil)

// New creates an empty in-memory store and immediately seeds it with
// the baseline reference data. Every construction starts fresh.
func New(ctx context.Context) (*Store, error) {
	s := &Store{
		users:              make(map[string]*entities.User),
		categories:         make(map[string]*entities.ServiceCategory),
		providers:          make(map[string]*entities.Provider),
		providerCategories: make(map[string]*entities.ProviderCategory),
		bookings:           make(map[string]*entities.Booking),
		reviews:            make(map[string]*entities.Review),
	}
	if err := seed.Run(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(ctx context.Context, id string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return cloneUser(u), nil
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.userOrder {
		if u := s.users[id]; u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
}

// ListUsers retrieves all users in insertion order
func (s *Store) ListUsers(ctx context.Context) ([]*entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*entities.User, 0, len(s.userOrder))
	for _, id := range s.userOrder {
		users = append(users, cloneUser(s.users[id]))
	}
	return users, nil
}

// CreateUser creates a new user
func (s *Store) CreateUser(ctx context.Context, in entities.NewUser) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := entities.NewUserRecord(uuid.NewString(), in, time.Now())
	s.users[u.ID] = cloneUser(u)
	s.userOrder = append(s.userOrder, u.ID)
	return u, nil
}

// UpdateUser merges the partial update over an existing user
func (s *Store) UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	u.Apply(upd)
	return cloneUser(u), nil
}

// GetServiceCategory retrieves a service category by ID
func (s *Store) GetServiceCategory(ctx context.Context, id string) (*entities.ServiceCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service category with id %s not found", id))
	}
	return cloneCategory(c), nil
}

// ListServiceCategories retrieves all service categories in insertion order
func (s *Store) ListServiceCategories(ctx context.Context) ([]*entities.ServiceCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]*entities.ServiceCategory, 0, len(s.categoryOrder))
	for _, id := range s.categoryOrder {
		categories = append(categories, cloneCategory(s.categories[id]))
	}
	return categories, nil
}

// CreateServiceCategory creates a new service category
func (s *Store) CreateServiceCategory(ctx context.Context, in entities.NewServiceCategory) (*entities.ServiceCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := entities.NewServiceCategoryRecord(uuid.NewString(), in)
	s.categories[c.ID] = cloneCategory(c)
	s.categoryOrder = append(s.categoryOrder, c.ID)
	return c, nil
}

// UpdateServiceCategory merges the partial update over an existing category
func (s *Store) UpdateServiceCategory(ctx context.Context, id string, upd entities.ServiceCategoryUpdate) (*entities.ServiceCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service category with id %s not found", id))
	}
	c.Apply(upd)
	return cloneCategory(c), nil
}

// GetProvider retrieves a provider by ID
func (s *Store) GetProvider(ctx context.Context, id string) (*entities.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.providers[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	return cloneProvider(p), nil
}

// GetProviderByUserID retrieves the provider profile linked to a user
func (s *Store) GetProviderByUserID(ctx context.Context, userID string) (*entities.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.providerOrder {
		if p := s.providers[id]; p.UserID == userID {
			return cloneProvider(p), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with user id %s not found", userID))
}

// ListProviders retrieves providers matching the filter, active fields
// composing with AND, each with its linked user summary attached when
// the user exists.
func (s *Store) ListProviders(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	providers := make([]*entities.Provider, 0)
	for _, id := range s.providerOrder {
		p := s.providers[id]
		if !matchProvider(p, filter) {
			continue
		}
		cp := cloneProvider(p)
		if u, ok := s.users[p.UserID]; ok {
			cp.User = u.Summary()
		}
		providers = append(providers, cp)
	}
	return providers, nil
}

func matchProvider(p *entities.Provider, filter repositories.ProviderFilter) bool {
	if filter.IsApproved != nil && p.IsApproved != *filter.IsApproved {
		return false
	}
	if filter.Location != "" &&
		!strings.Contains(strings.ToLower(p.Location), strings.ToLower(filter.Location)) {
		return false
	}
	if filter.CategoryID != "" && !containsString(p.Categories, filter.CategoryID) {
		return false
	}
	return true
}

// CreateProvider creates a new provider profile
func (s *Store) CreateProvider(ctx context.Context, in entities.NewProvider) (*entities.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := entities.NewProviderRecord(uuid.NewString(), in, time.Now())
	s.providers[p.ID] = cloneProvider(p)
	s.providerOrder = append(s.providerOrder, p.ID)
	return p, nil
}

// UpdateProvider merges the partial update over an existing provider
func (s *Store) UpdateProvider(ctx context.Context, id string, upd entities.ProviderUpdate) (*entities.Provider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.providers[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	p.Apply(upd)
	return cloneProvider(p), nil
}

// ListProviderCategories retrieves the category links of a provider
func (s *Store) ListProviderCategories(ctx context.Context, providerID string) ([]*entities.ProviderCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := make([]*entities.ProviderCategory, 0)
	for _, id := range s.providerCategoryOrder {
		if pc := s.providerCategories[id]; pc.ProviderID == providerID {
			cp := *pc
			links = append(links, &cp)
		}
	}
	return links, nil
}

// CreateProviderCategory links a provider to a category
func (s *Store) CreateProviderCategory(ctx context.Context, in entities.NewProviderCategory) (*entities.ProviderCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pc := entities.NewProviderCategoryRecord(uuid.NewString(), in)
	cp := *pc
	s.providerCategories[pc.ID] = &cp
	s.providerCategoryOrder = append(s.providerCategoryOrder, pc.ID)
	return pc, nil
}

// GetBooking retrieves a booking by ID
func (s *Store) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	return cloneBooking(b), nil
}

// ListBookings retrieves bookings matching the filter
func (s *Store) ListBookings(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*entities.Booking, 0)
	for _, id := range s.bookingOrder {
		b := s.bookings[id]
		if filter.CustomerID != "" && b.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ProviderID != "" && b.ProviderID != filter.ProviderID {
			continue
		}
		if filter.Status != "" && string(b.Status) != filter.Status {
			continue
		}
		bookings = append(bookings, cloneBooking(b))
	}
	return bookings, nil
}

// CreateBooking creates a new booking
func (s *Store) CreateBooking(ctx context.Context, in entities.NewBooking) (*entities.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := entities.NewBookingRecord(uuid.NewString(), in, time.Now())
	s.bookings[b.ID] = cloneBooking(b)
	s.bookingOrder = append(s.bookingOrder, b.ID)
	return b, nil
}

// UpdateBooking merges the partial update over an existing booking
func (s *Store) UpdateBooking(ctx context.Context, id string, upd entities.BookingUpdate) (*entities.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	b.Apply(upd)
	return cloneBooking(b), nil
}

// GetReview retrieves a review by ID
func (s *Store) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	cp := *r
	return &cp, nil
}

// ListProviderReviews retrieves the visible reviews of a provider.
// Hidden reviews are never returned.
func (s *Store) ListProviderReviews(ctx context.Context, providerID string) ([]*entities.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reviews := make([]*entities.Review, 0)
	for _, id := range s.reviewOrder {
		r := s.reviews[id]
		if r.ProviderID != providerID || !r.IsVisible {
			continue
		}
		cp := *r
		reviews = append(reviews, &cp)
	}
	return reviews, nil
}

// CreateReview creates a new review
func (s *Store) CreateReview(ctx context.Context, in entities.NewReview) (*entities.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := entities.NewReviewRecord(uuid.NewString(), in, time.Now())
	cp := *r
	s.reviews[r.ID] = &cp
	s.reviewOrder = append(s.reviewOrder, r.ID)
	return r, nil
}

// UpdateReview merges the partial update over an existing review
func (s *Store) UpdateReview(ctx context.Context, id string, upd entities.ReviewUpdate) (*entities.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	r.Apply(upd)
	cp := *r
	return &cp, nil
}

// DeleteReview removes a review and reports whether it existed.
func (s *Store) DeleteReview(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[id]; !ok {
		return false, nil
	}
	delete(s.reviews, id)
	s.reviewOrder = removeID(s.reviewOrder, id)
	return true, nil
}

func cloneUser(u *entities.User) *entities.User {
	cp := *u
	return &cp
}

func cloneCategory(c *entities.ServiceCategory) *entities.ServiceCategory {
	cp := *c
	return &cp
}

func cloneProvider(p *entities.Provider) *entities.Provider {
	cp := *p
	cp.Categories = cloneStrings(p.Categories)
	cp.Portfolio = cloneStrings(p.Portfolio)
	cp.Certifications = cloneStrings(p.Certifications)
	if p.HourlyRate != nil {
		v := *p.HourlyRate
		cp.HourlyRate = &v
	}
	if p.YearsExperience != nil {
		v := *p.YearsExperience
		cp.YearsExperience = &v
	}
	cp.User = nil
	return &cp
}

func cloneBooking(b *entities.Booking) *entities.Booking {
	cp := *b
	if b.EstimatedDuration != nil {
		v := *b.EstimatedDuration
		cp.EstimatedDuration = &v
	}
	if b.EstimatedCost != nil {
		v := *b.EstimatedCost
		cp.EstimatedCost = &v
	}
	if b.ActualCost != nil {
		v := *b.ActualCost
		cp.ActualCost = &v
	}
	return &cp
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func containsString(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
