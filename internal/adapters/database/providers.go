package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

var providerColumns = []any{
	"id", "user_id", "specialty", "business_name", "location", "description",
	"hourly_rate", "is_approved", "is_available", "rating", "review_count",
	"categories", "portfolio", "certifications", "years_experience",
	"profile_image", "availability", "created_at",
}

// GetProvider retrieves a provider by ID
func (s *Store) GetProvider(ctx context.Context, id string) (*entities.Provider, error) {
	return s.getProviderByField(ctx, "id", id)
}

// GetProviderByUserID retrieves the provider profile linked to a user
func (s *Store) GetProviderByUserID(ctx context.Context, userID string) (*entities.Provider, error) {
	return s.getProviderByField(ctx, "user_id", userID)
}

func (s *Store) getProviderByField(ctx context.Context, field, value string) (*entities.Provider, error) {
	query, args, err := s.db.Select(providerColumns...).
		From("providers").
		Where(goqu.Ex{field: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build provider query", err)
	}

	provider, err := scanProvider(s.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}
	return provider, nil
}

// ListProviders retrieves providers matching the filter, each with its
// denormalized user summary attached when the linked user exists. The
// approval and location predicates go into SQL; category membership
// cannot (categories is a text[] column) and is applied post-fetch.
func (s *Store) ListProviders(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	ds := s.db.Select(providerColumns...).From("providers")

	if filter.IsApproved != nil {
		ds = ds.Where(goqu.Ex{"is_approved": *filter.IsApproved})
	}
	if filter.Location != "" {
		ds = ds.Where(goqu.C("location").ILike("%" + filter.Location + "%"))
	}
	ds = ds.Order(goqu.I("created_at").Asc())

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build providers list query", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list providers", err)
	}
	defer rows.Close()

	providers := make([]*entities.Provider, 0)
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider", err)
		}
		if filter.CategoryID != "" && !containsString(provider.Categories, filter.CategoryID) {
			continue
		}
		providers = append(providers, provider)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate providers", err)
	}

	if err := s.attachUserSummaries(ctx, providers); err != nil {
		return nil, err
	}
	return providers, nil
}

// attachUserSummaries resolves the linked users of the given providers
// in one query and attaches their summaries. Providers whose user is
// missing keep a nil summary.
func (s *Store) attachUserSummaries(ctx context.Context, providers []*entities.Provider) error {
	if len(providers) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(providers))
	userIDs := make([]string, 0, len(providers))
	for _, p := range providers {
		if !seen[p.UserID] {
			seen[p.UserID] = true
			userIDs = append(userIDs, p.UserID)
		}
	}

	query, args, err := s.db.Select("id", "first_name", "last_name", "email").
		From("users").
		Where(goqu.Ex{"id": userIDs}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build user summaries query", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to load user summaries", err)
	}
	defer rows.Close()

	summaries := make(map[string]*entities.UserSummary)
	for rows.Next() {
		summary := &entities.UserSummary{}
		if err := rows.Scan(&summary.ID, &summary.FirstName, &summary.LastName, &summary.Email); err != nil {
			return apperrors.NewInternalError("failed to scan user summary", err)
		}
		summaries[summary.ID] = summary
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewInternalError("failed to iterate user summaries", err)
	}

	for _, p := range providers {
		p.User = summaries[p.UserID]
	}
	return nil
}

// CreateProvider creates a new provider profile with defaults resolved
func (s *Store) CreateProvider(ctx context.Context, in entities.NewProvider) (*entities.Provider, error) {
	provider := entities.NewProviderRecord(uuid.NewString(), in, time.Now())

	query, args, err := s.db.Insert("providers").Rows(providerRecord(provider, true)).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build provider insert", err)
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to create provider", err)
	}
	return provider, nil
}

// UpdateProvider merges the partial update over an existing provider
func (s *Store) UpdateProvider(ctx context.Context, id string, upd entities.ProviderUpdate) (*entities.Provider, error) {
	provider, err := s.GetProvider(ctx, id)
	if err != nil {
		return nil, err
	}
	provider.Apply(upd)

	query, args, err := s.db.Update("providers").
		Set(providerRecord(provider, false)).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build provider update", err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update provider", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	return provider, nil
}

func providerRecord(p *entities.Provider, includeKeys bool) goqu.Record {
	record := goqu.Record{
		"user_id":          p.UserID,
		"specialty":        p.Specialty,
		"business_name":    nullString(p.BusinessName),
		"location":         p.Location,
		"description":      nullString(p.Description),
		"hourly_rate":      nullDecimal(p.HourlyRate),
		"is_approved":      p.IsApproved,
		"is_available":     p.IsAvailable,
		"rating":           string(p.Rating),
		"review_count":     p.ReviewCount,
		"categories":       pq.Array(p.Categories),
		"portfolio":        pq.Array(p.Portfolio),
		"certifications":   pq.Array(p.Certifications),
		"years_experience": nullInt(p.YearsExperience),
		"profile_image":    nullString(p.ProfileImage),
		"availability":     nullString(p.Availability),
	}
	if includeKeys {
		record["id"] = p.ID
		record["created_at"] = p.CreatedAt
	}
	return record
}

func scanProvider(row rowScanner) (*entities.Provider, error) {
	provider := &entities.Provider{}
	var businessName, description, profileImage, availability sql.NullString
	var hourlyRate sql.NullString
	var yearsExperience sql.NullInt64

	err := row.Scan(
		&provider.ID,
		&provider.UserID,
		&provider.Specialty,
		&businessName,
		&provider.Location,
		&description,
		&hourlyRate,
		&provider.IsApproved,
		&provider.IsAvailable,
		&provider.Rating,
		&provider.ReviewCount,
		pq.Array(&provider.Categories),
		pq.Array(&provider.Portfolio),
		pq.Array(&provider.Certifications),
		&yearsExperience,
		&profileImage,
		&availability,
		&provider.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	provider.BusinessName = businessName.String
	provider.Description = description.String
	provider.HourlyRate = decimalPtr(hourlyRate)
	provider.YearsExperience = intPtr(yearsExperience)
	provider.ProfileImage = profileImage.String
	provider.Availability = availability.String
	if provider.Categories == nil {
		provider.Categories = []string{}
	}
	if provider.Portfolio == nil {
		provider.Portfolio = []string{}
	}
	if provider.Certifications == nil {
		provider.Certifications = []string{}
	}
	return provider, nil
}

func containsString(s []string, v string) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}
