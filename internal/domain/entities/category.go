package entities

// ServiceCategory represents a category of home services (plumbing,
// electrical, ...) that providers attach themselves to.
type ServiceCategory struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description,omitempty" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	Color       string `json:"color" db:"color"`
}

// NewServiceCategory is the input for creating a service category.
type NewServiceCategory struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// ServiceCategoryUpdate is a partial update of a service category.
type ServiceCategoryUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
}

// NewServiceCategoryRecord materializes a category record from
// creation input.
func NewServiceCategoryRecord(id string, in NewServiceCategory) *ServiceCategory {
	return &ServiceCategory{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Icon:        in.Icon,
		Color:       in.Color,
	}
}

// Apply merges the non-nil fields of the update over the category.
func (c *ServiceCategory) Apply(upd ServiceCategoryUpdate) {
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	if upd.Icon != nil {
		c.Icon = *upd.Icon
	}
	if upd.Color != nil {
		c.Color = *upd.Color
	}
}

// ProviderCategory links a provider to a service category. The pair is
// not enforced unique; duplicates are tolerated.
type ProviderCategory struct {
	ID         string `json:"id" db:"id"`
	ProviderID string `json:"providerId" db:"provider_id"`
	CategoryID string `json:"categoryId" db:"category_id"`
}

// NewProviderCategory is the input for linking a provider to a category.
type NewProviderCategory struct {
	ProviderID string `json:"providerId"`
	CategoryID string `json:"categoryId"`
}

// NewProviderCategoryRecord materializes a provider-category link.
func NewProviderCategoryRecord(id string, in NewProviderCategory) *ProviderCategory {
	return &ProviderCategory{
		ID:         id,
		ProviderID: in.ProviderID,
		CategoryID: in.CategoryID,
	}
}
