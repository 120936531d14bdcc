package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

var userTestColumns = []string{
	"id", "email", "password", "first_name", "last_name", "role", "phone", "created_at",
}

func TestGetUser_MapsNullPhone(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE \("id" = 'user-1'\)`).
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow("user-1", "jane@example.com", "hashed", "Jane", "Doe", "admin", nil, created))

	user, err := store.GetUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, entities.UserRoleAdmin, user.Role)
	assert.Equal(t, "", user.Phone)
	assert.Equal(t, created, user.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userTestColumns))

	_, err := store.GetUser(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_QueriesByEmail(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE \("email" = 'jane@example.com'\)`).
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow("user-1", "jane@example.com", "hashed", "Jane", "Doe", "customer", "555-0101", time.Now()))

	user, err := store.GetUserByEmail(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "555-0101", user.Phone)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers_OrderedByCreation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "users" ORDER BY "created_at" ASC`).
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow("user-1", "first@example.com", "h", "First", "User", "customer", nil, time.Now()).
			AddRow("user-2", "second@example.com", "h", "Second", "User", "provider", nil, time.Now()))

	users, err := store.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "user-1", users[0].ID)
	assert.Equal(t, "user-2", users[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_InsertsResolvedRecord(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := store.CreateUser(context.Background(), entities.NewUser{
		Email:     "jane@example.com",
		Password:  "hashed",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, entities.UserRoleCustomer, user.Role)
	assert.False(t, user.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_MergesBeforeWriting(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "users" WHERE \("id" = 'user-1'\)`).
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow("user-1", "jane@example.com", "hashed", "Jane", "Doe", "customer", nil, time.Now()))
	mock.ExpectExec(`UPDATE "users" SET .+'Janet'.+ WHERE \("id" = 'user-1'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	first := "Janet"
	user, err := store.UpdateUser(context.Background(), "user-1", entities.UserUpdate{FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Janet", user.FirstName)
	assert.Equal(t, "jane@example.com", user.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_MissingUser(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userTestColumns))

	first := "Janet"
	_, err := store.UpdateUser(context.Background(), "missing", entities.UserUpdate{FirstName: &first})
	assert.True(t, apperrors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_RowGoneBetweenReadAndWrite(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT .+ FROM "users"`).
		WillReturnRows(sqlmock.NewRows(userTestColumns).
			AddRow("user-1", "jane@example.com", "hashed", "Jane", "Doe", "customer", nil, time.Now()))
	mock.ExpectExec(`UPDATE "users"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	first := "Janet"
	_, err := store.UpdateUser(context.Background(), "user-1", entities.UserUpdate{FirstName: &first})
	assert.True(t, apperrors.IsNotFound(err))
	require.NoError(t, mock.ExpectationsWereMet())
}
