package entities

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking represents a service booking between a customer and a provider
type Booking struct {
	ID                string        `json:"id" db:"id"`
	CustomerID        string        `json:"customerId" db:"customer_id"`
	ProviderID        string        `json:"providerId" db:"provider_id"`
	Status            BookingStatus `json:"status" db:"status"`
	EstimatedDuration *int          `json:"estimatedDuration,omitempty" db:"estimated_duration"`
	EstimatedCost     *Decimal      `json:"estimatedCost,omitempty" db:"estimated_cost"`
	ActualCost        *Decimal      `json:"actualCost,omitempty" db:"actual_cost"`
	Notes             string        `json:"notes,omitempty" db:"notes"`
	CreatedAt         time.Time     `json:"createdAt" db:"created_at"`
}

// NewBooking is the input for creating a booking. Status defaults to
// pending when unset.
type NewBooking struct {
	CustomerID        string        `json:"customerId"`
	ProviderID        string        `json:"providerId"`
	Status            BookingStatus `json:"status,omitempty"`
	EstimatedDuration *int          `json:"estimatedDuration,omitempty"`
	EstimatedCost     *Decimal      `json:"estimatedCost,omitempty"`
	ActualCost        *Decimal      `json:"actualCost,omitempty"`
	Notes             string        `json:"notes,omitempty"`
}

// BookingUpdate is a partial update of a booking.
type BookingUpdate struct {
	Status            *BookingStatus `json:"status,omitempty"`
	EstimatedDuration *int           `json:"estimatedDuration,omitempty"`
	EstimatedCost     *Decimal       `json:"estimatedCost,omitempty"`
	ActualCost        *Decimal       `json:"actualCost,omitempty"`
	Notes             *string        `json:"notes,omitempty"`
}

// NewBookingRecord materializes a full booking record from creation
// input, applying the documented defaults.
func NewBookingRecord(id string, in NewBooking, now time.Time) *Booking {
	status := in.Status
	if status == "" {
		status = BookingStatusPending
	}
	return &Booking{
		ID:                id,
		CustomerID:        in.CustomerID,
		ProviderID:        in.ProviderID,
		Status:            status,
		EstimatedDuration: in.EstimatedDuration,
		EstimatedCost:     in.EstimatedCost,
		ActualCost:        in.ActualCost,
		Notes:             in.Notes,
		CreatedAt:         now,
	}
}

// Apply merges the non-nil fields of the update over the booking.
func (b *Booking) Apply(upd BookingUpdate) {
	if upd.Status != nil {
		b.Status = *upd.Status
	}
	if upd.EstimatedDuration != nil {
		b.EstimatedDuration = upd.EstimatedDuration
	}
	if upd.EstimatedCost != nil {
		b.EstimatedCost = upd.EstimatedCost
	}
	if upd.ActualCost != nil {
		b.ActualCost = upd.ActualCost
	}
	if upd.Notes != nil {
		b.Notes = *upd.Notes
	}
}
