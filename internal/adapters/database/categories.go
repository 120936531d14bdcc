package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/admin222aman/LocalFixConnect/internal/domain/entities"
	apperrors "github.com/admin222aman/LocalFixConnect/pkg/errors"
)

var categoryColumns = []any{"id", "name", "description", "icon", "color"}

// GetServiceCategory retrieves a service category by ID
func (s *Store) GetServiceCategory(ctx context.Context, id string) (*entities.ServiceCategory, error) {
	query, args, err := s.db.Select(categoryColumns...).
		From("service_categories").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category query", err)
	}

	category, err := scanCategory(s.conn.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service category with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get service category", err)
	}
	return category, nil
}

// ListServiceCategories retrieves all service categories ordered by name
func (s *Store) ListServiceCategories(ctx context.Context) ([]*entities.ServiceCategory, error) {
	query, args, err := s.db.Select(categoryColumns...).
		From("service_categories").
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build categories list query", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list service categories", err)
	}
	defer rows.Close()

	categories := make([]*entities.ServiceCategory, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan service category", err)
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate service categories", err)
	}
	return categories, nil
}

// CreateServiceCategory creates a new service category
func (s *Store) CreateServiceCategory(ctx context.Context, in entities.NewServiceCategory) (*entities.ServiceCategory, error) {
	category := entities.NewServiceCategoryRecord(uuid.NewString(), in)

	query, args, err := s.db.Insert("service_categories").Rows(goqu.Record{
		"id":          category.ID,
		"name":        category.Name,
		"description": nullString(category.Description),
		"icon":        category.Icon,
		"color":       category.Color,
	}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category insert", err)
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to create service category", err)
	}
	return category, nil
}

// UpdateServiceCategory merges the partial update over an existing category
func (s *Store) UpdateServiceCategory(ctx context.Context, id string, upd entities.ServiceCategoryUpdate) (*entities.ServiceCategory, error) {
	category, err := s.GetServiceCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	category.Apply(upd)

	query, args, err := s.db.Update("service_categories").Set(goqu.Record{
		"name":        category.Name,
		"description": nullString(category.Description),
		"icon":        category.Icon,
		"color":       category.Color,
	}).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build category update", err)
	}

	result, err := s.conn.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update service category", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service category with id %s not found", id))
	}
	return category, nil
}

// ListProviderCategories retrieves the category links of a provider
func (s *Store) ListProviderCategories(ctx context.Context, providerID string) ([]*entities.ProviderCategory, error) {
	query, args, err := s.db.Select("id", "provider_id", "category_id").
		From("provider_categories").
		Where(goqu.Ex{"provider_id": providerID}).
		Order(goqu.I("id").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build provider categories query", err)
	}

	rows, err := s.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list provider categories", err)
	}
	defer rows.Close()

	links := make([]*entities.ProviderCategory, 0)
	for rows.Next() {
		link := &entities.ProviderCategory{}
		if err := rows.Scan(&link.ID, &link.ProviderID, &link.CategoryID); err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider category", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate provider categories", err)
	}
	return links, nil
}

// CreateProviderCategory links a provider to a category
func (s *Store) CreateProviderCategory(ctx context.Context, in entities.NewProviderCategory) (*entities.ProviderCategory, error) {
	link := entities.NewProviderCategoryRecord(uuid.NewString(), in)

	query, args, err := s.db.Insert("provider_categories").Rows(goqu.Record{
		"id":          link.ID,
		"provider_id": link.ProviderID,
		"category_id": link.CategoryID,
	}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build provider category insert", err)
	}

	if _, err := s.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to create provider category", err)
	}
	return link, nil
}

func scanCategory(row rowScanner) (*entities.ServiceCategory, error) {
	category := &entities.ServiceCategory{}
	var description sql.NullString

	err := row.Scan(
		&category.ID,
		&category.Name,
		&description,
		&category.Icon,
		&category.Color,
	)
	if err != nil {
		return nil, err
	}
	category.Description = description.String
	return category, nil
}
