// Package service implements the business logic layer for the access hub.
// It handles sign-in, account registration, access request review, and
// session credential operations.
package service

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cdah-platform/access-hub/internal/store"
	"github.com/cdah-platform/access-hub/pkg/token"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrRequestNotFound    = errors.New("access request not found")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInternal           = errors.New("internal error")
)

// PasswordMode controls bcrypt cost for password hashing.
// Use PasswordModeProduction for real deployments and PasswordModeTesting only in tests.
type PasswordMode int

const (
	// PasswordModeProduction uses bcrypt.DefaultCost for secure password hashing.
	PasswordModeProduction PasswordMode = iota
	// PasswordModeTesting uses bcrypt.MinCost for fast test execution.
	PasswordModeTesting
)

// Cost returns the bcrypt cost for this mode.
func (m PasswordMode) Cost() int {
	if m == PasswordModeTesting {
		log.Println("WARNING: Using insecure password hashing (testing mode)")
		return bcrypt.MinCost
	}
	return bcrypt.DefaultCost
}

// Service coordinates sign-in, registration, access request review, and
// credential issuance. It depends on storage interfaces and delegates to
// them for persistence.
type Service struct {
	users        store.UserStore
	requests     store.RequestStore
	issuer       *token.Issuer
	verifier     *token.Verifier
	passwordMode PasswordMode
	now          func() time.Time
}

func New(
	users store.UserStore,
	requests store.RequestStore,
	issuer *token.Issuer,
	verifier *token.Verifier,
	passwordMode PasswordMode,
) *Service {
	return &Service{
		users:        users,
		requests:     requests,
		issuer:       issuer,
		verifier:     verifier,
		passwordMode: passwordMode,
		now:          time.Now,
	}
}
