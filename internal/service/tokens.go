package service

import (
	"context"
	"errors"

	"github.com/cdah-platform/access-hub/internal/store"
	"github.com/cdah-platform/access-hub/pkg/token"
)

// Resolver adapts the user store to the subject resolution the hub's
// verifier performs: a credential for a deleted account must not decode.
type Resolver struct {
	users store.UserStore
}

func NewResolver(users store.UserStore) *Resolver {
	return &Resolver{users: users}
}

func (r *Resolver) ResolveSubject(ctx context.Context, id string) (token.Identity, error) {
	user, err := r.users.FindUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return token.Identity{}, token.ErrSubjectNotFound
		}
		return token.Identity{}, err
	}
	return identityOf(user), nil
}

// Decode validates a raw credential against the hub's full policy,
// including subject resolution.
func (s *Service) Decode(ctx context.Context, raw string) (token.VerifiedSession, error) {
	return s.verifier.Decode(ctx, raw)
}

// Refresh re-resolves the subject and mints a fresh credential with a full
// validity window, so claims pick up account changes made since issuance.
func (s *Service) Refresh(ctx context.Context, current token.VerifiedSession) (token.VerifiedSession, error) {
	return s.issuer.Refresh(ctx, current, NewResolver(s.users))
}
