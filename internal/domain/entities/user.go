package entities

import "time"

// UserRole represents the role of a user account
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleProvider UserRole = "provider"
	UserRoleAdmin    UserRole = "admin"
)

// User represents a user account in the marketplace
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	Role      UserRole  `json:"role" db:"role"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// UserSummary is the denormalized slice of a user attached to provider
// listings at read time. It is never stored.
type UserSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// Summary returns the denormalized view of the user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}

// NewUser is the input for creating a user. Password is expected to be
// hashed already; this layer stores whatever it is given.
type NewUser struct {
	Email     string   `json:"email"`
	Password  string   `json:"password"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role,omitempty"`
	Phone     string   `json:"phone,omitempty"`
}

// UserUpdate is a partial update of a user. Nil fields are left
// untouched.
type UserUpdate struct {
	Email     *string   `json:"email,omitempty"`
	Password  *string   `json:"password,omitempty"`
	FirstName *string   `json:"firstName,omitempty"`
	LastName  *string   `json:"lastName,omitempty"`
	Role      *UserRole `json:"role,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
}

// NewUserRecord materializes a full user record from creation input,
// applying the documented defaults. Both storage backends build their
// rows through this constructor so defaults never drift between them.
func NewUserRecord(id string, in NewUser, now time.Time) *User {
	role := in.Role
	if role == "" {
		role = UserRoleCustomer
	}
	return &User{
		ID:        id,
		Email:     in.Email,
		Password:  in.Password,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Role:      role,
		Phone:     in.Phone,
		CreatedAt: now,
	}
}

// Apply merges the non-nil fields of the update over the user.
func (u *User) Apply(upd UserUpdate) {
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Password != nil {
		u.Password = *upd.Password
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.Role != nil {
		u.Role = *upd.Role
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
}
