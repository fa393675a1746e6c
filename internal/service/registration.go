package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/cdah-platform/access-hub/internal/ids"
	"github.com/cdah-platform/access-hub/internal/store"
)

// RegisterParams are the fields collected by the sign-up form.
type RegisterParams struct {
	Email    string
	Password string
	Name     string
	Org      string
	Role     store.Role
}

// Register creates an unapproved account. Duplicate emails are rejected
// case-insensitively.
func (s *Service) Register(ctx context.Context, p RegisterParams) (store.User, error) {
	email := strings.TrimSpace(p.Email)
	if email == "" || p.Password == "" {
		return store.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidCredentials)
	}
	role := p.Role
	if role == "" {
		role = store.RoleUser
	}
	if !role.Valid() {
		return store.User{}, fmt.Errorf("%w: %s", ErrInvalidRole, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), s.passwordMode.Cost())
	if err != nil {
		return store.User{}, fmt.Errorf("%w: failed to hash password: %v", ErrInternal, err)
	}

	// an access request approved before the account existed carries over
	approved, err := s.hasApprovedRequest(ctx, email)
	if err != nil {
		return store.User{}, err
	}

	user := store.User{
		ID:           ids.New(),
		Email:        email,
		Name:         strings.TrimSpace(p.Name),
		Org:          strings.TrimSpace(p.Org),
		Role:         role,
		Approved:     approved,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return store.User{}, fmt.Errorf("%w: %s", ErrDuplicateAccount, email)
		}
		return store.User{}, fmt.Errorf("%w: failed to create account: %v", ErrInternal, err)
	}
	return user, nil
}

func (s *Service) hasApprovedRequest(ctx context.Context, email string) (bool, error) {
	requests, err := s.requests.ListRequests(ctx)
	if err != nil {
		return false, fmt.Errorf("%w: failed to list requests: %v", ErrInternal, err)
	}
	for _, r := range requests {
		if r.Status == store.StatusApproved && strings.EqualFold(r.Email, email) {
			return true, nil
		}
	}
	return false, nil
}
