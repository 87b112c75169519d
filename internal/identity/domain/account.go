package domain

import (
	"time"

	"github.com/aussiebroadwan/localserve/pkg/idx"
)

// Role is the marketplace side an account acts on.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleProvider Role = "provider"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleProvider
}

// Status is the activation state derived from the role. Providers wait for
// an approval step that lives outside identity.
type Status string

const (
	StatusActive  Status = "active"
	StatusPending Status = "pending"
)

// StatusFor derives the initial activation state for a role.
func StatusFor(r Role) Status {
	if r == RoleProvider {
		return StatusPending
	}
	return StatusActive
}

// Profile holds the caller supplied account attributes.
type Profile struct {
	Name        string
	Email       string
	Role        Role
	Mobile      string
	Address     string
	ServiceType string
	ServiceArea string
}

// Account is a persisted identity record.
//
// OTP and OTPExpiry are always set or cleared together. Verified flips from
// false to true exactly once, after which no code is pending.
type Account struct {
	ID           idx.ID
	Profile
	PasswordHash string
	Verified     bool
	OTP          *string
	OTPExpiry    *time.Time
	Status       Status
	CreatedAt    time.Time
}

// HasPendingCode reports whether a one-time code is outstanding.
func (a Account) HasPendingCode() bool {
	return a.OTP != nil && a.OTPExpiry != nil
}

// Projection is the only representation of an account handed to callers.
// It never carries the password hash or a one-time code.
type Projection struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	Verified    bool   `json:"verified"`
	Mobile      string `json:"mobile"`
	Address     string `json:"address"`
	ServiceType string `json:"service_type"`
	ServiceArea string `json:"service_area"`
	Status      Status `json:"status"`
}

// Project strips secrets from an account.
func (a Account) Project() Projection {
	return Projection{
		ID:          a.ID.String(),
		Name:        a.Name,
		Email:       a.Email,
		Role:        a.Role,
		Verified:    a.Verified,
		Mobile:      a.Mobile,
		Address:     a.Address,
		ServiceType: a.ServiceType,
		ServiceArea: a.ServiceArea,
		Status:      a.Status,
	}
}
