package token

import (
	"context"
	"time"
)

// Verifier decodes raw credentials and applies the validation policy. It is
// a pure function over its input: no network, no retries; a failure is
// terminal for that call and the caller decides what to do next.
type Verifier struct {
	codec    Codec
	resolver SubjectResolver
	now      func() time.Time
}

// VerifierOption configures a Verifier.
type VerifierOption func(*Verifier)

// WithVerifierClock overrides the time source, for tests.
func WithVerifierClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) {
		if now != nil {
			v.now = now
		}
	}
}

// NewVerifier builds a verifier. The issuing application passes a
// SubjectResolver backed by its user store; child applications pass nil and
// trust the embedded claims.
func NewVerifier(codec Codec, resolver SubjectResolver, opts ...VerifierOption) *Verifier {
	verifier := &Verifier{
		codec:    codec,
		resolver: resolver,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(verifier)
	}
	return verifier
}

// Decode validates a raw credential and projects it into a session view.
//
// Policy, in order: signature and structural decoding (ErrInvalidFormat),
// required claims (ErrInvalidStructure), expiry re-checked on every call
// (ErrExpired), and subject resolution when a resolver is configured
// (ErrSubjectNotFound).
func (v *Verifier) Decode(ctx context.Context, raw string) (VerifiedSession, error) {
	claims, err := v.codec.Decode(raw)
	if err != nil {
		return VerifiedSession{}, err
	}

	if claims.Subject == "" || claims.Email == "" || claims.ExpiresAt == 0 {
		return VerifiedSession{}, ErrInvalidStructure
	}

	if !v.now().Before(time.Unix(claims.ExpiresAt, 0)) {
		return VerifiedSession{}, ErrExpired
	}

	if v.resolver != nil {
		if _, err := v.resolver.ResolveSubject(ctx, claims.Subject); err != nil {
			return VerifiedSession{}, ErrSubjectNotFound
		}
	}

	return sessionFromClaims(claims, raw), nil
}
