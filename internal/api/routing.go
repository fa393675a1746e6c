package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cdah-platform/access-hub/internal/obs"
)

func (a *API) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(Logging)
	r.Use(obs.Instrument)

	r.HandleFunc("/healthz", a.Healthz()).Methods("GET")
	r.Handle("/metrics", obs.Handler()).Methods("GET")

	s := r.PathPrefix("/api/").Subrouter()
	s.Handle("/login", RateLimit(a.Login(), 5, 1)).Methods("POST")
	s.HandleFunc("/logout", a.Logout()).Methods("POST")
	s.HandleFunc("/register", a.Register()).Methods("POST")
	s.HandleFunc("/refresh", a.Refresh()).Methods("POST")
	s.HandleFunc("/session", a.Session()).Methods("GET")
	s.HandleFunc("/apps", a.Apps()).Methods("GET")
	s.HandleFunc("/requests", a.SubmitRequest()).Methods("POST")
	s.HandleFunc("/requests", a.ListRequests()).Methods("GET")
	s.HandleFunc("/requests/{id}/approve", a.ApproveRequest()).Methods("POST")
	s.HandleFunc("/requests/{id}/deny", a.DenyRequest()).Methods("POST")

	return r
}

func (a *API) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
