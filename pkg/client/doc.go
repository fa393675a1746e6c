// Package client implements the consuming side of the CDAH SSO handoff for
// child applications.
//
// A child application receives a session credential as the sso_token query
// parameter on an inbound URL, or rehydrates one it persisted earlier. The
// Client runs the full load protocol:
//
//	c := client.New(verifier, store)
//
//	sess, cleanURL, err := c.Resume(r.Context(), r.URL)
//	switch {
//	case err == nil:
//	    // authenticated; redirect to cleanURL if it differs from r.URL
//	case errors.Is(err, session.ErrNoSession):
//	    // unauthenticated; send the user to the hub
//	default:
//	    // expired or invalid; local state has been cleared
//	}
//
// URL-parameter tokens always take precedence over the persisted session: a
// fresh handoff supersedes a stale local session. Logout clears local state
// only — there is no cross-application logout broadcast.
package client
