package entities

import "time"

// Provider represents a service provider profile linked 1:1 to a user
// account. Rating is a decimal string, never a number; it defaults to
// "0" and is only moved by explicit updates.
type Provider struct {
	ID              string       `json:"id" db:"id"`
	UserID          string       `json:"userId" db:"user_id"`
	Specialty       string       `json:"specialty" db:"specialty"`
	BusinessName    string       `json:"businessName,omitempty" db:"business_name"`
	Location        string       `json:"location" db:"location"`
	Description     string       `json:"description,omitempty" db:"description"`
	HourlyRate      *Decimal     `json:"hourlyRate,omitempty" db:"hourly_rate"`
	IsApproved      bool         `json:"isApproved" db:"is_approved"`
	IsAvailable     bool         `json:"isAvailable" db:"is_available"`
	Rating          Decimal      `json:"rating" db:"rating"`
	ReviewCount     int          `json:"reviewCount" db:"review_count"`
	Categories      []string     `json:"categories" db:"categories"`
	Portfolio       []string     `json:"portfolio" db:"portfolio"`
	Certifications  []string     `json:"certifications" db:"certifications"`
	YearsExperience *int         `json:"yearsExperience,omitempty" db:"years_experience"`
	ProfileImage    string       `json:"profileImage,omitempty" db:"profile_image"`
	Availability    string       `json:"availability,omitempty" db:"availability"`
	CreatedAt       time.Time    `json:"createdAt" db:"created_at"`
	User            *UserSummary `json:"user,omitempty" db:"-"`
}

// NewProvider is the input for creating a provider profile. Rating and
// review count are not part of the creation contract; they start at
// "0" and 0 and change only through updates.
type NewProvider struct {
	UserID          string   `json:"userId"`
	Specialty       string   `json:"specialty"`
	BusinessName    string   `json:"businessName,omitempty"`
	Location        string   `json:"location"`
	Description     string   `json:"description,omitempty"`
	HourlyRate      *Decimal `json:"hourlyRate,omitempty"`
	IsApproved      bool     `json:"isApproved"`
	IsAvailable     *bool    `json:"isAvailable,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Portfolio       []string `json:"portfolio,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	YearsExperience *int     `json:"yearsExperience,omitempty"`
	ProfileImage    string   `json:"profileImage,omitempty"`
	Availability    string   `json:"availability,omitempty"`
}

// ProviderUpdate is a partial update of a provider. Nil fields are
// left untouched; slice fields replace wholesale when present.
type ProviderUpdate struct {
	Specialty       *string  `json:"specialty,omitempty"`
	BusinessName    *string  `json:"businessName,omitempty"`
	Location        *string  `json:"location,omitempty"`
	Description     *string  `json:"description,omitempty"`
	HourlyRate      *Decimal `json:"hourlyRate,omitempty"`
	IsApproved      *bool    `json:"isApproved,omitempty"`
	IsAvailable     *bool    `json:"isAvailable,omitempty"`
	Rating          *Decimal `json:"rating,omitempty"`
	ReviewCount     *int     `json:"reviewCount,omitempty"`
	Categories      []string `json:"categories,omitempty"`
	Portfolio       []string `json:"portfolio,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	YearsExperience *int     `json:"yearsExperience,omitempty"`
	ProfileImage    *string  `json:"profileImage,omitempty"`
	Availability    *string  `json:"availability,omitempty"`
}

// NewProviderRecord materializes a full provider record from creation
// input, applying the documented defaults.
func NewProviderRecord(id string, in NewProvider, now time.Time) *Provider {
	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}
	return &Provider{
		ID:              id,
		UserID:          in.UserID,
		Specialty:       in.Specialty,
		BusinessName:    in.BusinessName,
		Location:        in.Location,
		Description:     in.Description,
		HourlyRate:      in.HourlyRate,
		IsApproved:      in.IsApproved,
		IsAvailable:     available,
		Rating:          DecimalZero,
		ReviewCount:     0,
		Categories:      orEmpty(in.Categories),
		Portfolio:       orEmpty(in.Portfolio),
		Certifications:  orEmpty(in.Certifications),
		YearsExperience: in.YearsExperience,
		ProfileImage:    in.ProfileImage,
		Availability:    in.Availability,
		CreatedAt:       now,
	}
}

// Apply merges the non-nil fields of the update over the provider.
func (p *Provider) Apply(upd ProviderUpdate) {
	if upd.Specialty != nil {
		p.Specialty = *upd.Specialty
	}
	if upd.BusinessName != nil {
		p.BusinessName = *upd.BusinessName
	}
	if upd.Location != nil {
		p.Location = *upd.Location
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.HourlyRate != nil {
		p.HourlyRate = upd.HourlyRate
	}
	if upd.IsApproved != nil {
		p.IsApproved = *upd.IsApproved
	}
	if upd.IsAvailable != nil {
		p.IsAvailable = *upd.IsAvailable
	}
	if upd.Rating != nil {
		p.Rating = *upd.Rating
	}
	if upd.ReviewCount != nil {
		p.ReviewCount = *upd.ReviewCount
	}
	if upd.Categories != nil {
		p.Categories = upd.Categories
	}
	if upd.Portfolio != nil {
		p.Portfolio = upd.Portfolio
	}
	if upd.Certifications != nil {
		p.Certifications = upd.Certifications
	}
	if upd.YearsExperience != nil {
		p.YearsExperience = upd.YearsExperience
	}
	if upd.ProfileImage != nil {
		p.ProfileImage = *upd.ProfileImage
	}
	if upd.Availability != nil {
		p.Availability = *upd.Availability
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
