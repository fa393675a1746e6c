package client

import (
	"context"
	"errors"
	"net/url"

	"github.com/cdah-platform/access-hub/pkg/session"
	"github.com/cdah-platform/access-hub/pkg/token"
)

// Client manages the single client-local session of one application
// instance. It decodes inbound credentials, persists the verified session,
// and rehydrates it on later loads. Time is judged by the verifier, so
// expiry is re-checked on every load.
type Client struct {
	verifier *token.Verifier
	store    session.Store
}

// New builds a client around a verifier (child applications construct theirs
// without a subject resolver) and a session store namespaced to this
// application instance.
func New(verifier *token.Verifier, store session.Store) *Client {
	return &Client{
		verifier: verifier,
		store:    store,
	}
}

// ExtractTokenFromLocation pulls the raw credential out of an inbound URL,
// or "" when the handoff parameter is absent.
func (c *Client) ExtractTokenFromLocation(u *url.URL) string {
	return token.FromLocation(u)
}

// EstablishSessionFromToken decodes a raw credential and, on success,
// persists both the session view and the raw token. Decode failures leave
// the persisted state untouched.
func (c *Client) EstablishSessionFromToken(ctx context.Context, raw string) (token.VerifiedSession, error) {
	sess, err := c.verifier.Decode(ctx, raw)
	if err != nil {
		return token.VerifiedSession{}, err
	}
	if err := c.store.Save(ctx, sess); err != nil {
		return token.VerifiedSession{}, err
	}
	return sess, nil
}

// Resume runs the load protocol for an inbound location: a URL-parameter
// token takes precedence over the persisted session; with no URL token the
// persisted credential is re-decoded (expiry re-checked) and any failure
// clears the persisted state. The returned URL always has the handoff
// parameter scrubbed so the credential does not land in history or
// referrers.
func (c *Client) Resume(ctx context.Context, loc *url.URL) (token.VerifiedSession, *url.URL, error) {
	scrubbed := token.ScrubLocation(loc)

	if raw := token.FromLocation(loc); raw != "" {
		sess, err := c.EstablishSessionFromToken(ctx, raw)
		if err == nil {
			return sess, scrubbed, nil
		}
		// A bad handoff link must not cost the user an existing local
		// session; fall through to rehydration.
	}

	sess, err := c.rehydrate(ctx)
	if err != nil {
		return token.VerifiedSession{}, scrubbed, err
	}
	return sess, scrubbed, nil
}

// Current returns the persisted session after re-validating its credential.
// It never consults a URL.
func (c *Client) Current(ctx context.Context) (token.VerifiedSession, error) {
	return c.rehydrate(ctx)
}

// ClearSession removes the persisted token and session view for this
// application only. Other applications keep their local sessions.
func (c *Client) ClearSession(ctx context.Context) error {
	return c.store.Clear(ctx)
}

// IsSessionLive reports whether a persisted session exists and its
// credential still verifies right now.
func (c *Client) IsSessionLive(ctx context.Context) bool {
	_, err := c.rehydrate(ctx)
	return err == nil
}

func (c *Client) rehydrate(ctx context.Context) (token.VerifiedSession, error) {
	persisted, err := c.store.Load(ctx)
	if err != nil {
		return token.VerifiedSession{}, err
	}

	sess, err := c.verifier.Decode(ctx, persisted.Raw)
	if err != nil {
		// expired or invalid: demote to unauthenticated
		if clearErr := c.store.Clear(ctx); clearErr != nil && !errors.Is(clearErr, session.ErrNoSession) {
			return token.VerifiedSession{}, clearErr
		}
		return token.VerifiedSession{}, err
	}
	return sess, nil
}
