package database

import (
	"database/sql"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	"github.com/admin222aman/LocalFixConnect/internal/domain/repositories"
	"github.com/admin222aman/LocalFixConnect/internal/infrastructure/clients/postgres"
)

// Store is the postgres-backed storage backend. Every operation is a
// single round-trip (plus the documented post-fetch category filter
// and read-time user-summary join on provider listings); there is no
// cross-operation transaction scope.
type Store struct {
	conn *sql.DB
	db   *goqu.Database
}

var _ repositories.Storage = (*Store)(nil)

// New creates a postgres storage backend on an established client.
func New(client *postgres.Client) *Store {
	return newStore(client.DB())
}

func newStore(conn *sql.DB) *Store {
	return &Store{
		conn: conn,
		db:   goqu.New("postgres", conn),
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullDecimal(d *entities.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(*d), Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func decimalPtr(ns sql.NullString) *entities.Decimal {
	if !ns.Valid {
		return nil
	}
	d := entities.Decimal(ns.String)
	return &d
}

func intPtr(ni sql.NullInt64) *int {
	if !ni.Valid {
		return nil
	}
	v := int(ni.Int64)
	return &v
}
