package api

import (
	"fmt"
	"net/http"

	"github.com/cdah-platform/access-hub/internal/obs"
	"github.com/cdah-platform/access-hub/pkg/token"
)

type SessionResponse struct {
	User      UserResponse `json:"user"`
	IssuedAt  int64        `json:"issuedAt"`
	ExpiresAt int64        `json:"expiresAt"`
}

func sessionResponse(sess token.VerifiedSession) *SessionResponse {
	return &SessionResponse{
		User: UserResponse{
			ID:    sess.ID,
			Email: sess.Email,
			Name:  sess.Name,
			Org:   sess.Org,
			Role:  sess.Role,
		},
		IssuedAt:  sess.TokenIssuedAt.Unix(),
		ExpiresAt: sess.TokenExpiresAt.Unix(),
	}
}

// Session reports who the cookie credential belongs to. Invalid or expired
// credentials come back as a neutral 401.
func (a *API) Session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := a.currentSession(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}
		returnJson(sessionResponse(sess), w)
	}
}

type RefreshResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// Refresh mints a fresh credential with a full validity window for the
// current session.
func (a *API) Refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := a.currentSession(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}

		refreshed, err := a.svc.Refresh(r.Context(), sess)
		if err != nil {
			logApiErr(r, fmt.Sprintf("refresh failed: %v", err))
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}

		obs.CountTokenIssued()
		a.setSessionCookie(w, refreshed)
		returnJson(&RefreshResponse{
			Token:     refreshed.Raw,
			ExpiresAt: refreshed.TokenExpiresAt.Unix(),
		}, w)
	}
}
