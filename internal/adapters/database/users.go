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

var userColumns = []any{
	"id", "email", "password", "first_name", "last_name", "role", "phone", "created_at",
}

// GetUser retrieves a user by ID
func (s *Store) GetUser(ctx context.Context, id string) (*entities.User, error) {
	return s.getUserByField(ctx, "id", id)
}

// GetUserByEmail retrieves a user by email
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return s.getUserByField(ctx, "email", email)
}

func (s *Store) getUserByField(ctx context.Context, field, value string) (*entities.User, error) {
	query, args, err := s.db.Select(userColumns...).
		From("users").
		Where(goqu.Ex{field: value}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user query", err)
	}

	user, err := scanUser(s.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with %s %s not found", field, value))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get user", err)
	}
	return user, nil
}

// ListUsers retrieves all users
func (s *Store) ListUsers(ctx context.Context) ([]*entities.User, error) {
	query, args, err := s.db.Select(userColumns...).
		From("users").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build users list query", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list users", err)
	}
	defer rows.Close()

	users := make([]*entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan user", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate users", err)
	}
	return users, nil
}

// CreateUser creates a new user with defaults resolved
func (s *Store) CreateUser(ctx context.Context, in entities.NewUser) (*entities.User, error) {
	user := entities.NewUserRecord(uuid.NewString(), in, time.Now())

	query, args, err := s.db.Insert("users").Rows(goqu.Record{
		"id":         user.ID,
		"email":      user.Email,
		"password":   user.Password,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       string(user.Role),
		"phone":      nullString(user.Phone),
		"created_at": user.CreatedAt,
	}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user insert", err)
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to create user", err)
	}
	return user, nil
}

// UpdateUser merges the partial update over an existing user
func (s *Store) UpdateUser(ctx context.Context, id string, upd entities.UserUpdate) (*entities.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Apply(upd)

	query, args, err := s.db.Update("users").Set(goqu.Record{
		"email":      user.Email,
		"password":   user.Password,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"role":       string(user.Role),
		"phone":      nullString(user.Phone),
	}).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build user update", err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update user", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	return user, nil
}

func scanUser(row rowScanner) (*entities.User, error) {
	user := &entities.User{}
	var phone sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.FirstName,
		&user.LastName,
		&user.Role,
		&phone,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Phone = phone.String
	return user, nil
}
