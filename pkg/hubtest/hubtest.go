package hubtest

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/cdah-platform/access-hub/pkg/token"
)

// Alice is a ready-made identity for tests that don't care about claims.
var Alice = token.Identity{
	ID:    "hubtest-alice",
	Email: "alice@hubtest.example",
	Name:  "Alice Test",
	Role:  "analyst",
	Org:   "Hubtest Org",
}

const sharedTestSecret = "hubtest-shared-secret"

// Env mints and verifies credentials with one shared secret, standing in
// for a hub during tests.
type Env struct {
	codec  *token.HS256Codec
	issuer *token.Issuer
}

// NewEnv creates a test environment using a fixed secret. Most tests should
// use this.
func NewEnv(issuerDomain string) *Env {
	return NewEnvWithSecret([]byte(sharedTestSecret), issuerDomain)
}

// NewEnvWithSecret creates a test environment with a specific secret. Use
// when testing secret mismatch scenarios.
func NewEnvWithSecret(secret []byte, issuerDomain string) *Env {
	codec := token.NewHS256Codec(secret, issuerDomain)
	return &Env{
		codec:  codec,
		issuer: token.NewIssuer(codec),
	}
}

// Codec exposes the underlying codec for tests that need to build their own
// issuers or verifiers.
func (e *Env) Codec() *token.HS256Codec {
	return e.codec
}

// Verifier returns a child-side verifier (no subject resolution) for wiring
// into the application under test.
func (e *Env) Verifier() *token.Verifier {
	return token.NewVerifier(e.codec, nil)
}

// IssueSession mints a live credential for the identity.
func (e *Env) IssueSession(identity token.Identity) (token.VerifiedSession, error) {
	return e.issuer.Issue(identity)
}

// IssueSessionAt mints a credential as if issued at the given time. Pass a
// time more than the validity window in the past to get an expired
// credential.
func (e *Env) IssueSessionAt(identity token.Identity, issuedAt time.Time) (token.VerifiedSession, error) {
	issuer := token.NewIssuer(e.codec, token.WithIssuerClock(func() time.Time { return issuedAt }))
	return issuer.Issue(identity)
}

// HandoffRequest builds an inbound test request whose URL carries a fresh
// credential for the identity, the way a hub handoff would.
func (e *Env) HandoffRequest(method string, target string, identity token.Identity) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	sess, err := e.issuer.Issue(identity)
	if err != nil {
		panic("hubtest: couldn't issue credential: " + err.Error())
	}
	req.URL = token.AppendToLocation(req.URL, sess.Raw)
	return req
}
