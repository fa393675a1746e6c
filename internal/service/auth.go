package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cdah-platform/access-hub/internal/store"
	"github.com/cdah-platform/access-hub/pkg/token"
)

// LoginResult is a successful sign-in. A session credential is minted even
// for unapproved accounts; callers gate platform access on Approved.
type LoginResult struct {
	User     store.User
	Approved bool
	Session  token.VerifiedSession
}

// Login authenticates an email/password pair and mints a session credential.
// Unknown accounts and wrong passwords both come back as
// ErrInvalidCredentials so the response doesn't reveal which one it was.
func (s *Service) Login(
	ctx context.Context,
	email string,
	password string,
) (LoginResult, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, fmt.Errorf("%w: failed to look up account: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return LoginResult{}, ErrInvalidCredentials
	}

	sess, err := s.issuer.Issue(identityOf(user))
	if err != nil {
		return LoginResult{}, fmt.Errorf("%w: failed to issue credential: %v", ErrInternal, err)
	}

	return LoginResult{
		User:     user,
		Approved: user.Approved,
		Session:  sess,
	}, nil
}

// IsApproved reports whether the account may reach platform applications.
func (s *Service) IsApproved(ctx context.Context, id string) (bool, error) {
	user, err := s.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to look up account: %v", ErrInternal, err)
	}
	return user.Approved, nil
}

func identityOf(u store.User) token.Identity {
	return token.Identity{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
		Org:   u.Org,
	}
}
