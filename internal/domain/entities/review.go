package entities

import "time"

// Review represents a customer review of a provider, tied to the
// booking it came from. Only reviews with IsVisible set are returned
// by provider-facing listings.
type Review struct {
	ID         string    `json:"id" db:"id"`
	ProviderID string    `json:"providerId" db:"provider_id"`
	CustomerID string    `json:"customerId" db:"customer_id"`
	BookingID  string    `json:"bookingId" db:"booking_id"`
	Rating     int       `json:"rating" db:"rating"`
	Comment    string    `json:"comment,omitempty" db:"comment"`
	IsVisible  bool      `json:"isVisible" db:"is_visible"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// NewReview is the input for creating a review. Visibility is not part
// of the creation contract; new reviews start visible.
type NewReview struct {
	ProviderID string `json:"providerId"`
	CustomerID string `json:"customerId"`
	BookingID  string `json:"bookingId"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
}

// ReviewUpdate is a partial update of a review.
type ReviewUpdate struct {
	Rating    *int    `json:"rating,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	IsVisible *bool   `json:"isVisible,omitempty"`
}

// NewReviewRecord materializes a full review record from creation
// input, applying the documented defaults.
func NewReviewRecord(id string, in NewReview, now time.Time) *Review {
	return &Review{
		ID:         id,
		ProviderID: in.ProviderID,
		CustomerID: in.CustomerID,
		BookingID:  in.BookingID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		IsVisible:  true,
		CreatedAt:  now,
	}
}

// Apply merges the non-nil fields of the update over the review.
func (r *Review) Apply(upd ReviewUpdate) {
	if upd.Rating != nil {
		r.Rating = *upd.Rating
	}
	if upd.Comment != nil {
		r.Comment = *upd.Comment
	}
	if upd.IsVisible != nil {
		r.IsVisible = *upd.IsVisible
	}
}
