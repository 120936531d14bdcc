package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

var reviewColumns = []any{
	"id", "provider_id", "customer_id", "booking_id", "rating",
	"comment", "is_visible", "created_at",
}

// GetReview retrieves a review by ID
func (s *Store) GetReview(ctx context.Context, id string) (*entities.Review, error) {
	query, args, err := s.db.Select(reviewColumns...).
		From("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review query", err)
	}

	review, err := scanReview(s.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get review", err)
	}
	return review, nil
}

// ListProviderReviews retrieves the visible reviews of a provider.
// The visibility restriction is part of the query, not a caller filter.
func (s *Store) ListProviderReviews(ctx context.Context, providerID string) ([]*entities.Review, error) {
	query, args, err := s.db.Select(reviewColumns...).
		From("reviews").
		Where(goqu.Ex{"provider_id": providerID, "is_visible": true}).
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build reviews list query", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	reviews := make([]*entities.Review, 0)
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		reviews = append(reviews, review)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}
	return reviews, nil
}

// CreateReview creates a new review with defaults resolved
func (s *Store) CreateReview(ctx context.Context, in entities.NewReview) (*entities.Review, error) {
	review := entities.NewReviewRecord(uuid.NewString(), in, time.Now())

	query, args, err := s.db.Insert("reviews").Rows(goqu.Record{
		"id":          review.ID,
		"provider_id": review.ProviderID,
		"customer_id": review.CustomerID,
		"booking_id":  review.BookingID,
		"rating":      review.Rating,
		"comment":     nullString(review.Comment),
		"is_visible":  review.IsVisible,
		"created_at":  review.CreatedAt,
	}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review insert", err)
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to create review", err)
	}
	return review, nil
}

// UpdateReview merges the partial update over an existing review
func (s *Store) UpdateReview(ctx context.Context, id string, upd entities.ReviewUpdate) (*entities.Review, error) {
	review, err := s.GetReview(ctx, id)
	if err != nil {
		return nil, err
	}
	review.Apply(upd)

	query, args, err := s.db.Update("reviews").Set(goqu.Record{
		"rating":     review.Rating,
		"comment":    nullString(review.Comment),
		"is_visible": review.IsVisible,
	}).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build review update", err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update review", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("review with id %s not found", id))
	}
	return review, nil
}

// DeleteReview removes a review and reports whether it existed
func (s *Store) DeleteReview(ctx context.Context, id string) (bool, error) {
	query, args, err := s.db.Delete("reviews").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build review delete", err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return false, apperrors.NewInternalError("failed to delete review", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to get rows affected", err)
	}
	return rowsAffected > 0, nil
}

func scanReview(row rowScanner) (*entities.Review, error) {
	review := &entities.Review{}
	var comment sql.NullString

	err := row.Scan(
		&review.ID,
		&review.ProviderID,
		&review.CustomerID,
		&review.BookingID,
		&review.Rating,
		&comment,
		&review.IsVisible,
		&review.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	review.Comment = comment.String
	return review, nil
}
