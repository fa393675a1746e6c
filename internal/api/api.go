// Package api exposes the hub's HTTP surface: sign-in, registration, access
// request review, and handoff URLs for platform applications.
package api

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/cdah-platform/access-hub/internal/catalog"
	"github.com/cdah-platform/access-hub/internal/service"
	"github.com/cdah-platform/access-hub/pkg/token"
)

const sessionCookieName = "hubSession"

// API holds the handler dependencies. Handlers are methods returning
// closures so each route captures exactly what it needs.
type API struct {
	svc          *service.Service
	catalog      *catalog.Catalog
	cookieSecure bool
}

func New(svc *service.Service, cat *catalog.Catalog, cookieSecure bool) *API {
	return &API{
		svc:          svc,
		catalog:      cat,
		cookieSecure: cookieSecure,
	}
}

func decodeRequest[T any](req *T, w http.ResponseWriter, r *http.Request) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		logApiErr(r, "bad json request")
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func returnJson(data any, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func logApiErr(r *http.Request, msg string) {
	log.Printf("%s %s: %s", r.Method, r.RequestURI, msg)
}

// setSessionCookie stores the raw credential as the hub's own persisted
// state slot. Max-Age tracks the credential's remaining lifetime.
func (a *API) setSessionCookie(w http.ResponseWriter, sess token.VerifiedSession) {
	maxAge := int(time.Until(sess.TokenExpiresAt).Seconds())
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Path:     "/",
		Value:    sess.Raw,
		MaxAge:   maxAge,
		SameSite: http.SameSiteStrictMode,
		Secure:   a.cookieSecure,
		HttpOnly: true,
	})
}

func (a *API) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:   sessionCookieName,
		Path:   "/",
		MaxAge: -1,
	})
}

// currentSession re-verifies the cookie credential on every request.
func (a *API) currentSession(r *http.Request) (token.VerifiedSession, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return token.VerifiedSession{}, err
	}
	return a.svc.Decode(r.Context(), cookie.Value)
}
