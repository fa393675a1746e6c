package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cdah-platform/access-hub/internal/service"
	"github.com/cdah-platform/access-hub/internal/store"
)

type SubmitRequestRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Org    string `json:"org"`
	Role   string `json:"role"`
	Reason string `json:"reason"`
}

type RequestResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Org       string `json:"org"`
	Role      string `json:"role"`
	Reason    string `json:"reason"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"createdAt"`
}

func requestResponse(r store.AccessRequest) RequestResponse {
	return RequestResponse{
		ID:        r.ID,
		Name:      r.Name,
		Email:     r.Email,
		Org:       r.Org,
		Role:      string(r.Role),
		Reason:    r.Reason,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt.Unix(),
	}
}

// SubmitRequest records an access request. No session is required; this is
// the front door for people who don't have an account yet.
func (a *API) SubmitRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SubmitRequestRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		request, err := a.svc.SubmitRequest(r.Context(), service.SubmitRequestParams{
			Name:   req.Name,
			Email:  req.Email,
			Org:    req.Org,
			Role:   store.Role(req.Role),
			Reason: req.Reason,
		})
		switch {
		case errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			logApiErr(r, fmt.Sprintf("submit request failed: %v", err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		resp := requestResponse(request)
		returnJson(&resp, w)
	}
}

// requireAdmin resolves the session and checks the admin role.
func (a *API) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	sess, err := a.currentSession(r)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not signed in")
		return false
	}
	if sess.Role != string(store.RoleAdmin) {
		writeError(w, http.StatusForbidden, "admin access required")
		return false
	}
	return true
}

func (a *API) ListRequests() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.requireAdmin(w, r) {
			return
		}

		requests, err := a.svc.ListRequests(r.Context())
		if err != nil {
			logApiErr(r, fmt.Sprintf("list requests failed: %v", err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		responses := make([]RequestResponse, 0, len(requests))
		for _, request := range requests {
			responses = append(responses, requestResponse(request))
		}
		returnJson(responses, w)
	}
}

func (a *API) ApproveRequest() http.HandlerFunc {
	return a.reviewHandler("approve", a.svc.ApproveRequest)
}

func (a *API) DenyRequest() http.HandlerFunc {
	return a.reviewHandler("deny", a.svc.DenyRequest)
}

func (a *API) reviewHandler(
	action string,
	apply func(ctx context.Context, id string) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !a.requireAdmin(w, r) {
			return
		}

		id := mux.Vars(r)["id"]
		err := apply(r.Context(), id)
		if errors.Is(err, service.ErrRequestNotFound) {
			writeError(w, http.StatusNotFound, "access request not found")
			return
		}
		if err != nil {
			logApiErr(r, fmt.Sprintf("%s request failed: %v", action, err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}
