package token

import (
	"context"
	"errors"
	"net/url"
	"time"
)

// QueryParam is the URL query parameter that carries a session credential
// between applications.
const QueryParam = "sso_token"

// DefaultTTL is the fixed validity window of an issued credential.
const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalidFormat means the raw value could not be decoded at all:
	// wrong shape, bad encoding, or a signature that does not verify.
	ErrInvalidFormat = errors.New("token: invalid format")

	// ErrInvalidStructure means the payload decoded but is missing a
	// required claim (subject, email, or expiry).
	ErrInvalidStructure = errors.New("token: invalid structure")

	// ErrExpired means the credential's validity window has passed. The
	// check is re-evaluated on every decode, so a token that once decoded
	// successfully can fail later.
	ErrExpired = errors.New("token: expired")

	// ErrSubjectNotFound means the issuing application could not resolve
	// the token's subject to a current user record.
	ErrSubjectNotFound = errors.New("token: subject not found")
)

// Identity is the snapshot of a user taken at issuance time. Claims are
// copied by value; later edits to the user never reach an already-issued
// credential.
type Identity struct {
	ID    string
	Email string
	Name  string
	Role  string
	Org   string
}

// Claims is the payload embedded in a session credential.
type Claims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	Org       string `json:"org,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// VerifiedSession is the projection of a decoded credential into a running
// application: the embedded claims plus expiry bookkeeping and the raw
// encoded token for persistence and re-transmission.
type VerifiedSession struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	Role           string    `json:"role,omitempty"`
	Org            string    `json:"org,omitempty"`
	TokenIssuedAt  time.Time `json:"token_issued_at"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
	Raw            string    `json:"-"`
}

// LiveAt reports whether the session's credential is still valid at t.
func (s VerifiedSession) LiveAt(t time.Time) bool {
	return t.Before(s.TokenExpiresAt)
}

// Codec converts claims to and from their wire encoding. Decode is
// responsible for structural validity and signature verification only;
// expiry and subject policy belong to the Verifier.
type Codec interface {
	Encode(claims Claims) (string, error)
	Decode(raw string) (Claims, error)
}

// SubjectResolver resolves a subject id back to a current identity. The
// issuing application backs this with its user store; child applications
// have none and skip the check.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, id string) (Identity, error)
}

// AppendToLocation returns a copy of u with the credential embedded as the
// sso_token query parameter. The input URL is not mutated.
func AppendToLocation(u *url.URL, raw string) *url.URL {
	out := *u
	q := out.Query()
	q.Set(QueryParam, raw)
	out.RawQuery = q.Encode()
	return &out
}

// FromLocation extracts the raw credential from a URL, or "" when absent.
func FromLocation(u *url.URL) string {
	return u.Query().Get(QueryParam)
}

// ScrubLocation returns a copy of u with the sso_token parameter removed,
// so the credential does not linger in browser history, bookmarks, or
// referrer headers.
func ScrubLocation(u *url.URL) *url.URL {
	out := *u
	q := out.Query()
	q.Del(QueryParam)
	out.RawQuery = q.Encode()
	return &out
}

func sessionFromClaims(claims Claims, raw string) VerifiedSession {
	return VerifiedSession{
		ID:             claims.Subject,
		Email:          claims.Email,
		Name:           claims.Name,
		Role:           claims.Role,
		Org:            claims.Org,
		TokenIssuedAt:  time.Unix(claims.IssuedAt, 0).UTC(),
		TokenExpiresAt: time.Unix(claims.ExpiresAt, 0).UTC(),
		Raw:            raw,
	}
}
