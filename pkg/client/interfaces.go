package client

import (
	"context"
	"net/url"

	"github.com/cdah-platform/access-hub/pkg/token"
)

// SessionManager is the operations surface child applications should depend
// on rather than *Client, so tests can substitute a mock.
type SessionManager interface {
	ExtractTokenFromLocation(u *url.URL) string
	EstablishSessionFromToken(ctx context.Context, raw string) (token.VerifiedSession, error)
	Resume(ctx context.Context, loc *url.URL) (token.VerifiedSession, *url.URL, error)
	Current(ctx context.Context) (token.VerifiedSession, error)
	ClearSession(ctx context.Context) error
	IsSessionLive(ctx context.Context) bool
}

var _ SessionManager = (*Client)(nil)
