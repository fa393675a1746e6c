package token

import (
	"context"
	"errors"
	"time"
)

// Issuer mints session credentials for authenticated users. Minting has no
// side effects; persisting or transmitting the result is the caller's job.
type Issuer struct {
	codec Codec
	ttl   time.Duration
	now   func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithTTL overrides the credential validity window.
func WithTTL(ttl time.Duration) IssuerOption {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

// WithIssuerClock overrides the time source, for tests.
func WithIssuerClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		if now != nil {
			i.now = now
		}
	}
}

func NewIssuer(codec Codec, opts ...IssuerOption) *Issuer {
	issuer := &Issuer{
		codec: codec,
		ttl:   DefaultTTL,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}
	return issuer
}

// Issue mints a credential whose claims are a verbatim snapshot of the
// identity. Must only be called for a fully-resolved, authenticated user.
func (i *Issuer) Issue(identity Identity) (VerifiedSession, error) {
	if identity.ID == "" || identity.Email == "" {
		return VerifiedSession{}, errors.New("token: issue requires a resolved identity")
	}

	now := i.now().UTC().Truncate(time.Second)
	claims := Claims{
		Subject:   identity.ID,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      identity.Role,
		Org:       identity.Org,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(i.ttl).Unix(),
	}
	raw, err := i.codec.Encode(claims)
	if err != nil {
		return VerifiedSession{}, err
	}
	return sessionFromClaims(claims, raw), nil
}

// Refresh re-resolves the session's subject and issues a brand new
// credential with a fresh validity window. It never extends the current
// token in place, and fails with ErrSubjectNotFound when the user no
// longer exists.
func (i *Issuer) Refresh(
	ctx context.Context,
	current VerifiedSession,
	resolver SubjectResolver,
) (VerifiedSession, error) {
	identity, err := resolver.ResolveSubject(ctx, current.ID)
	if err != nil {
		return VerifiedSession{}, ErrSubjectNotFound
	}
	return i.Issue(identity)
}
