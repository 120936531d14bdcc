package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

var bookingColumns = []any{
	"id", "customer_id", "provider_id", "status", "estimated_duration",
	"estimated_cost", "actual_cost", "notes", "created_at",
}

// GetBooking retrieves a booking by ID
func (s *Store) GetBooking(ctx context.Context, id string) (*entities.Booking, error) {
	query, args, err := s.db.Select(bookingColumns...).
		From("bookings").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking query", err)
	}

	booking, err := scanBooking(s.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get booking", err)
	}
	return booking, nil
}

// ListBookings retrieves bookings matching the filter as one
// conjunctive predicate
func (s *Store) ListBookings(ctx context.Context, filter repositories.BookingFilter) ([]*entities.Booking, error) {
	ds := s.db.Select(bookingColumns...).From("bookings")

	if filter.CustomerID != "" {
		ds = ds.Where(goqu.Ex{"customer_id": filter.CustomerID})
	}
	if filter.ProviderID != "" {
		ds = ds.Where(goqu.Ex{"provider_id": filter.ProviderID})
	}
	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}
	ds = ds.Order(goqu.I("created_at").Asc())

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build bookings list query", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list bookings", err)
	}
	defer rows.Close()

	bookings := make([]*entities.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan booking", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate bookings", err)
	}
	return bookings, nil
}

// CreateBooking creates a new booking with defaults resolved
func (s *Store) CreateBooking(ctx context.Context, in entities.NewBooking) (*entities.Booking, error) {
	booking := entities.NewBookingRecord(uuid.NewString(), in, time.Now())

	query, args, err := s.db.Insert("bookings").Rows(goqu.Record{
		"id":                 booking.ID,
		"customer_id":        booking.CustomerID,
		"provider_id":        booking.ProviderID,
		"status":             string(booking.Status),
		"estimated_duration": nullInt(booking.EstimatedDuration),
		"estimated_cost":     nullDecimal(booking.EstimatedCost),
		"actual_cost":        nullDecimal(booking.ActualCost),
		"notes":              nullString(booking.Notes),
		"created_at":         booking.CreatedAt,
	}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking insert", err)
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to create booking", err)
	}
	return booking, nil
}

// UpdateBooking merges the partial update over an existing booking
func (s *Store) UpdateBooking(ctx context.Context, id string, upd entities.BookingUpdate) (*entities.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}
	booking.Apply(upd)

	query, args, err := s.db.Update("bookings").Set(goqu.Record{
		"status":             string(booking.Status),
		"estimated_duration": nullInt(booking.EstimatedDuration),
		"estimated_cost":     nullDecimal(booking.EstimatedCost),
		"actual_cost":        nullDecimal(booking.ActualCost),
		"notes":              nullString(booking.Notes),
	}).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build booking update", err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update booking", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("booking with id %s not found", id))
	}
	return booking, nil
}

func scanBooking(row rowScanner) (*entities.Booking, error) {
	booking := &entities.Booking{}
	var estimatedDuration sql.NullInt64
	var estimatedCost, actualCost sql.NullString
	var notes sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.ProviderID,
		&booking.Status,
		&estimatedDuration,
		&estimatedCost,
		&actualCost,
		&notes,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.EstimatedDuration = intPtr(estimatedDuration)
	booking.EstimatedCost = decimalPtr(estimatedCost)
	booking.ActualCost = decimalPtr(actualCost)
	booking.Notes = notes.String
	return booking, nil
}
