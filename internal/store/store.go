// Package store provides persistence for hub accounts and access requests.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// Role is the platform role an account or access request carries.
type Role string

const (
	RoleUser           Role = "user"
	RoleAdmin          Role = "admin"
	RoleHealthOfficer  Role = "public-health-officer"
	RoleAnalyst        Role = "analyst"
	RoleProgramManager Role = "program-manager"
	RoleDeveloper      Role = "developer"
	RoleOther          Role = "other"
)

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleHealthOfficer, RoleAnalyst,
		RoleProgramManager, RoleDeveloper, RoleOther:
		return true
	}
	return false
}

// User is a hub account. Approved gates platform access; an unapproved
// account can still sign in and see its pending state.
type User struct {
	ID           string
	Email        string
	Name         string
	Org          string
	Role         Role
	Approved     bool
	PasswordHash []byte
	CreatedAt    time.Time
}

// RequestStatus is the review state of an access request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusDenied   RequestStatus = "denied"
)

// AccessRequest records a request for platform access awaiting admin review.
type AccessRequest struct {
	ID        string
	Name      string
	Email     string
	Org       string
	Role      Role
	Reason    string
	Status    RequestStatus
	CreatedAt time.Time
}

// UserStore handles persistence of hub accounts. Email lookups are
// case-insensitive.
type UserStore interface {
	CreateUser(ctx context.Context, u User) error
	FindUserByID(ctx context.Context, id string) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	ListUsers(ctx context.Context) ([]User, error)
}

// RequestStore handles persistence of access requests.
type RequestStore interface {
	CreateRequest(ctx context.Context, r AccessRequest) error
	FindRequest(ctx context.Context, id string) (AccessRequest, error)
	ListRequests(ctx context.Context) ([]AccessRequest, error)
	SetRequestStatus(ctx context.Context, id string, status RequestStatus) error
}
