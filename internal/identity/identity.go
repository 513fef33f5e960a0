// Package identity carries the caller's role into engine operations.
// Authentication happens upstream; the engine only checks the role.
package identity

import (
	"errors"
	"fmt"
)

type Role string

const (
	RoleSeeker  Role = "seeker"
	RoleCompany Role = "company"
)

var ErrForbidden = errors.New("FORBIDDEN")

// Identity is resolved by the session service and passed in with each job.
type Identity struct {
	UserID    int64 `json:"userId"`
	Role      Role  `json:"role"`
	SeekerID  int64 `json:"seekerId,omitempty"`
	CompanyID int64 `json:"companyId,omitempty"`
}

func Seeker(userID, seekerID int64) Identity {
	return Identity{UserID: userID, Role: RoleSeeker, SeekerID: seekerID}
}

func Company(userID, companyID int64) Identity {
	return Identity{UserID: userID, Role: RoleCompany, CompanyID: companyID}
}

// RequireSeeker returns the seeker id or ErrForbidden.
func (i Identity) RequireSeeker() (int64, error) {
	if i.Role != RoleSeeker || i.SeekerID <= 0 {
		return 0, fmt.Errorf("%w: seeker role required, got %q", ErrForbidden, i.Role)
	}
	return i.SeekerID, nil
}

// RequireCompany returns the company id or ErrForbidden.
func (i Identity) RequireCompany() (int64, error) {
	if i.Role != RoleCompany || i.CompanyID <= 0 {
		return 0, fmt.Errorf("%w: company role required, got %q", ErrForbidden, i.Role)
	}
	return i.CompanyID, nil
}
