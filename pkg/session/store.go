// Package session persists the client-local view of a verified SSO session:
// the raw credential and its decoded projection. Each application instance
// owns exactly one session slot; there is no shared storage across
// applications, and propagation happens only through the URL handoff.
package session

import (
	"context"
	"errors"

	"github.com/cdah-platform/access-hub/pkg/token"
)

// ErrNoSession is returned by Load when nothing is persisted.
var ErrNoSession = errors.New("session: no persisted session")

// Store is the persistence capability handed to issuing and consuming
// applications. Implementations hold at most one session and are keyed by a
// configured namespace, never by string literals at call sites.
type Store interface {
	Save(ctx context.Context, sess token.VerifiedSession) error
	Load(ctx context.Context) (token.VerifiedSession, error)
	Clear(ctx context.Context) error
}
