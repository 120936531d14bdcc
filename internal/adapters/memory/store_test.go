package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background())
	require.NoError(t, err)
	return s
}

func TestNew_SeedsBaselineData(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	categories, err := s.ListServiceCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 8)
	assert.Equal(t, "Plumbing", categories[0].Name)
	assert.Equal(t, "Moving", categories[7].Name)

	users, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)

	providers, err := s.ListProviders(ctx, repositories.ProviderFilter{})
	require.NoError(t, err)
	assert.Len(t, providers, 3)
	for _, p := range providers {
		assert.True(t, p.IsApproved)
		require.NotNil(t, p.User, "seeded providers carry their user summary")
	}
}

func TestNew_SeededAdminPasswordIsHashed(t *testing.T) {
	s := newStore(t)

	admin, err := s.GetUserByEmail(context.Background(), "admin@localfixconnect.com")
	require.NoError(t, err)
	assert.Equal(t, entities.UserRoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("admin123")))
}

func TestNew_SeededRatingsAppliedViaUpdate(t *testing.T) {
	s := newStore(t)

	mike, err := s.GetUserByEmail(context.Background(), "mike.johnson@localfixconnect.com")
	require.NoError(t, err)
	provider, err := s.GetProviderByUserID(context.Background(), mike.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.Decimal("4.8"), provider.Rating)
	assert.Equal(t, 127, provider.ReviewCount)
}

func TestCreateUser_GetReturnsEqualRecord(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, entities.NewUser{
		Email:     "jane@example.com",
		Password:  "hash",
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "555-1234",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, entities.UserRoleCustomer, created.Role)

	got, err := s.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestGetUser_MissingIDReturnsNotFound(t *testing.T) {
	s := newStore(t)

	_, err := s.GetUser(context.Background(), "nope")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetUserByEmail(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, entities.NewUser{Email: "findme@example.com"})
	require.NoError(t, err)

	got, err := s.GetUserByEmail(ctx, "findme@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = s.GetUserByEmail(ctx, "absent@example.com")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUpdateUser_EmptyUpdateIsNoOp(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	created, err := s.CreateUser(ctx, entities.NewUser{Email: "u@example.com", FirstName: "U"})
	require.NoError(t, err)

	updated, err := s.UpdateUser(ctx, created.ID, entities.UserUpdate{})
	require.NoError(t, err)
	assert.Equal(t, created, updated)
}

func TestUpdateUser_MissingIDDoesNotCreate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	before, err := s.ListUsers(ctx)
	require.NoError(t, err)

	name := "Ghost"
	_, err = s.UpdateUser(ctx, "missing-id", entities.UserUpdate{FirstName: &name})
	assert.True(t, apperrors.IsNotFound(err))

	after, err := s.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestCreateProvider_DefaultsRatingToDecimalString(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, entities.NewUser{Email: "p@example.com", Role: entities.UserRoleProvider})
	require.NoError(t, err)

	provider, err := s.CreateProvider(ctx, entities.NewProvider{
		UserID:    user.ID,
		Specialty: "Handyman",
		Location:  "Downtown",
	})
	require.NoError(t, err)

	assert.Equal(t, entities.Decimal("0"), provider.Rating)
	assert.Equal(t, 0, provider.ReviewCount)
	assert.True(t, provider.IsAvailable)

	got, err := s.GetProvider(ctx, provider.ID)
	require.NoError(t, err)
	assert.Equal(t, provider, got)
}

func TestListProviders_FiltersComposeConjunctively(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	mk := func(email, location string, approved bool) *entities.Provider {
		user, err := s.CreateUser(ctx, entities.NewUser{Email: email, Role: entities.UserRoleProvider})
		require.NoError(t, err)
		p, err := s.CreateProvider(ctx, entities.NewProvider{
			UserID:     user.ID,
			Specialty:  "Tester",
			Location:   location,
			IsApproved: approved,
		})
		require.NoError(t, err)
		return p
	}

	match := mk("a@x.com", "North Hills", true)
	mk("b@x.com", "North Hills", false) // right location, not approved
	mk("c@x.com", "South Bay", true)    // approved, wrong location

	approved := true
	got, err := s.ListProviders(ctx, repositories.ProviderFilter{
		IsApproved: &approved,
		Location:   "north",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, match.ID, got[0].ID)
}

func TestListProviders_CategoryMembershipWithUserSummary(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	category, err := s.CreateServiceCategory(ctx, entities.NewServiceCategory{
		Name: "Electrical", Icon: "zap", Color: "#F59E0B",
	})
	require.NoError(t, err)

	user, err := s.CreateUser(ctx, entities.NewUser{
		Email:     "sparky@example.com",
		FirstName: "Spark",
		LastName:  "Eee",
		Role:      entities.UserRoleProvider,
	})
	require.NoError(t, err)

	provider, err := s.CreateProvider(ctx, entities.NewProvider{
		UserID:     user.ID,
		Specialty:  "Electrician",
		Location:   "Midtown",
		Categories: []string{category.ID},
	})
	require.NoError(t, err)

	got, err := s.ListProviders(ctx, repositories.ProviderFilter{CategoryID: category.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, provider.ID, got[0].ID)
	require.NotNil(t, got[0].User)
	assert.Equal(t, "Spark", got[0].User.FirstName)
	assert.Equal(t, "sparky@example.com", got[0].User.Email)
}

func TestListProviders_MissingLinkedUserLeavesSummaryNil(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	provider, err := s.CreateProvider(ctx, entities.NewProvider{
		UserID:    "dangling-user-id",
		Specialty: "Orphan",
		Location:  "Nowhere",
	})
	require.NoError(t, err)

	got, err := s.ListProviders(ctx, repositories.ProviderFilter{Location: "Nowhere"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, provider.ID, got[0].ID)
	assert.Nil(t, got[0].User)
}

func TestProviderCategories_LinkAndList(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	link, err := s.CreateProviderCategory(ctx, entities.NewProviderCategory{
		ProviderID: "p-1",
		CategoryID: "c-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, link.ID)

	// duplicate pairs are tolerated
	_, err = s.CreateProviderCategory(ctx, entities.NewProviderCategory{
		ProviderID: "p-1",
		CategoryID: "c-1",
	})
	require.NoError(t, err)

	links, err := s.ListProviderCategories(ctx, "p-1")
	require.NoError(t, err)
	assert.Len(t, links, 2)

	none, err := s.ListProviderCategories(ctx, "p-2")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCreateBooking_StatusDefaultsToPending(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	booking, err := s.CreateBooking(ctx, entities.NewBooking{
		CustomerID: "cust-1",
		ProviderID: "prov-1",
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusPending, booking.Status)

	got, err := s.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking, got)
}

func TestListBookings_Filters(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	b1, err := s.CreateBooking(ctx, entities.NewBooking{CustomerID: "cust-1", ProviderID: "prov-1"})
	require.NoError(t, err)
	_, err = s.CreateBooking(ctx, entities.NewBooking{CustomerID: "cust-1", ProviderID: "prov-2", Status: entities.BookingStatusConfirmed})
	require.NoError(t, err)
	_, err = s.CreateBooking(ctx, entities.NewBooking{CustomerID: "cust-2", ProviderID: "prov-1"})
	require.NoError(t, err)

	byCustomer, err := s.ListBookings(ctx, repositories.BookingFilter{CustomerID: "cust-1"})
	require.NoError(t, err)
	assert.Len(t, byCustomer, 2)

	pending, err := s.ListBookings(ctx, repositories.BookingFilter{
		CustomerID: "cust-1",
		Status:     string(entities.BookingStatusPending),
	})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b1.ID, pending[0].ID)

	all, err := s.ListBookings(ctx, repositories.BookingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateBooking_PartialMerge(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	booking, err := s.CreateBooking(ctx, entities.NewBooking{CustomerID: "cust-1", ProviderID: "prov-1", Notes: "original"})
	require.NoError(t, err)

	done := entities.BookingStatusCompleted
	cost := entities.Decimal("150.00")
	updated, err := s.UpdateBooking(ctx, booking.ID, entities.BookingUpdate{
		Status:     &done,
		ActualCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.BookingStatusCompleted, updated.Status)
	require.NotNil(t, updated.ActualCost)
	assert.Equal(t, entities.Decimal("150.00"), *updated.ActualCost)
	assert.Equal(t, "original", updated.Notes)
}

func TestListProviderReviews_HidesInvisible(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	visible, err := s.CreateReview(ctx, entities.NewReview{
		ProviderID: "prov-1", CustomerID: "cust-1", BookingID: "book-1", Rating: 5,
	})
	require.NoError(t, err)

	hiddenReview, err := s.CreateReview(ctx, entities.NewReview{
		ProviderID: "prov-1", CustomerID: "cust-2", BookingID: "book-2", Rating: 1,
	})
	require.NoError(t, err)

	hidden := false
	_, err = s.UpdateReview(ctx, hiddenReview.ID, entities.ReviewUpdate{IsVisible: &hidden})
	require.NoError(t, err)

	reviews, err := s.ListProviderReviews(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, visible.ID, reviews[0].ID)
}

func TestDeleteReview_Idempotent(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	review, err := s.CreateReview(ctx, entities.NewReview{
		ProviderID: "prov-1", CustomerID: "cust-1", BookingID: "book-1", Rating: 4,
	})
	require.NoError(t, err)

	deleted, err := s.DeleteReview(ctx, review.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.DeleteReview(ctx, review.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = s.GetReview(ctx, review.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestStore_ReturnedRecordsAreCopies(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, entities.NewUser{Email: "copy@example.com", FirstName: "Original"})
	require.NoError(t, err)

	user.FirstName = "Mutated"

	got, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.FirstName)

	// slices are isolated too
	p, err := s.CreateProvider(ctx, entities.NewProvider{
		UserID:     user.ID,
		Categories: []string{"c-1"},
	})
	require.NoError(t, err)
	p.Categories[0] = "tampered"

	gotP, err := s.GetProvider(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"c-1"}, gotP.Categories)
}

func TestStore_FreshConstructionStartsOver(t *testing.T) {
	ctx := context.Background()

	s1, err := New(ctx)
	require.NoError(t, err)
	_, err = s1.CreateUser(ctx, entities.NewUser{Email: "extra@example.com"})
	require.NoError(t, err)

	s2, err := New(ctx)
	require.NoError(t, err)
	_, err = s2.GetUserByEmail(ctx, "extra@example.com")
	assert.True(t, apperrors.IsNotFound(err))

	users, err := s2.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 4)
}
