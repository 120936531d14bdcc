package database

import (
	"context"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

var providerTestColumns = []string{
	"id", "user_id", "specialty", "business_name", "location", "description",
	"hourly_rate", "is_approved", "is_available", "rating", "review_count",
	"categories", "portfolio", "certifications", "years_experience",
	"profile_image", "availability", "created_at",
}

// providerTestRow builds a full row in column order. Array columns are
// the text[] literals lib/pq parses on scan.
func providerTestRow(id, userID, categories string) []driver.Value {
	return []driver.Value{
		id, userID, "Electrician", "Johnson Electrical Services", "Springfield", nil,
		"85.00", true, true, "4.80", 127,
		categories, "{}", "{}", 12,
		nil, nil, time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC),
	}
}

func TestGetProviderByUserID_MapsRow(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "providers" WHERE \("user_id" = 'user-7'\)`).
		WillReturnRows(sqlmock.NewRows(providerTestColumns).
			AddRow(providerTestRow("prov-1", "user-7", "{cat-electrical}")...))

	provider, err := store.GetProviderByUserID(context.Background(), "user-7")
	require.NoError(t, err)
	assert.Equal(t, "prov-1", provider.ID)
	assert.Equal(t, "Johnson Electrical Services", provider.BusinessName)
	require.NotNil(t, provider.HourlyRate)
	assert.Equal(t, entities.Decimal("85.00"), *provider.HourlyRate)
	assert.Equal(t, entities.Decimal("4.80"), provider.Rating)
	assert.Equal(t, 127, provider.ReviewCount)
	assert.Equal(t, []string{"cat-electrical"}, provider.Categories)
	require.NotNil(t, provider.YearsExperience)
	assert.Equal(t, 12, *provider.YearsExperience)
	assert.Equal(t, "", provider.ProfileImage)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProvider_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "providers"`).
		WillReturnRows(sqlmock.NewRows(providerTestColumns))

	_, err := store.GetProvider(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProviders_PushesApprovalAndLocationIntoSQL(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "providers" WHERE .+"is_approved" IS TRUE.+"location" ILIKE '%spring%'`).
		WillReturnRows(sqlmock.NewRows(providerTestColumns).
			AddRow(providerTestRow("prov-1", "user-7", "{cat-electrical}")...))
	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE \("id" IN \('user-7'\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow("user-7", "Mike", "Johnson", "mike.johnson@localfixconnect.com"))

	approved := true
	providers, err := store.ListProviders(context.Background(), repositories.ProviderFilter{
		Location:   "spring",
		IsApproved: &approved,
	})
	require.NoError(t, err)
	require.Len(t, providers, 1)
	require.NotNil(t, providers[0].User)
	assert.Equal(t, "Mike", providers[0].User.FirstName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProviders_CategoryFilterAppliedAfterFetch(t *testing.T) {
	store, mock := newMockStore(t)

	// No SQL predicate for the category filter; both rows come back and
	// the non-member is dropped before the user lookup.
	mock.ExpectQuery(`SELECT .+ FROM "providers" ORDER BY "created_at" ASC`).
		WillReturnRows(sqlmock.NewRows(providerTestColumns).
			AddRow(providerTestRow("prov-1", "user-1", "{cat-electrical}")...).
			AddRow(providerTestRow("prov-2", "user-2", "{cat-plumbing}")...))
	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE \("id" IN \('user-1'\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}).
			AddRow("user-1", "Mike", "Johnson", "mike.johnson@localfixconnect.com"))

	providers, err := store.ListProviders(context.Background(), repositories.ProviderFilter{
		CategoryID: "cat-electrical",
	})
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Equal(t, "prov-1", providers[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProviders_EmptyResultSkipsUserLookup(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "providers"`).
		WillReturnRows(sqlmock.NewRows(providerTestColumns))

	providers, err := store.ListProviders(context.Background(), repositories.ProviderFilter{})
	require.NoError(t, err)
	assert.Empty(t, providers)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListProviders_MissingUserLeavesNilSummary(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "providers"`).
		WillReturnRows(sqlmock.NewRows(providerTestColumns).
			AddRow(providerTestRow("prov-1", "user-gone", "{cat-electrical}")...))
	mock.ExpectQuery(`SELECT .+ FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email"}))

	providers, err := store.ListProviders(context.Background(), repositories.ProviderFilter{})
	require.NoError(t, err)
	require.Len(t, providers, 1)
	assert.Nil(t, providers[0].User)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProvider_AppliesCreationDefaults(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO "providers"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	provider, err := store.CreateProvider(context.Background(), entities.NewProvider{
		UserID:     "user-7",
		Specialty:  "Electrician",
		Location:   "Springfield",
		Categories: []string{"cat-electrical"},
	})
	require.NoError(t, err)
	assert.Equal(t, entities.DecimalZero, provider.Rating)
	assert.Equal(t, 0, provider.ReviewCount)
	assert.True(t, provider.IsAvailable)
	assert.False(t, provider.IsApproved)
	assert.NotNil(t, provider.Portfolio)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProvider_ReplacesSlicesWholesale(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "providers" WHERE \("id" = 'prov-1'\)`).
		WillReturnRows(sqlmock.NewRows(providerTestColumns).
			AddRow(providerTestRow("prov-1", "user-7", "{cat-electrical}")...))
	mock.ExpectExec(`UPDATE "providers" SET .+ WHERE \("id" = 'prov-1'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	provider, err := store.UpdateProvider(context.Background(), "prov-1", entities.ProviderUpdate{
		Categories: []string{"cat-electrical", "cat-appliance"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-electrical", "cat-appliance"}, provider.Categories)
	assert.Equal(t, "Electrician", provider.Specialty)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProvider_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "providers"`).
		WillReturnRows(sqlmock.NewRows(providerTestColumns))

	specialty := "Plumber"
	_, err := store.UpdateProvider(context.Background(), "missing", entities.ProviderUpdate{Specialty: &specialty})
	assert.True(t, apperrors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
