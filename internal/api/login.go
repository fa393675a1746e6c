package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cdah-platform/access-hub/internal/obs"
	"github.com/cdah-platform/access-hub/internal/service"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	Approved  bool         `json:"approved"`
	ExpiresAt int64        `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Org   string `json:"org"`
	Role  string `json:"role"`
}

func (a *API) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		result, err := a.svc.Login(r.Context(), req.Email, req.Password)
		if errors.Is(err, service.ErrInvalidCredentials) {
			obs.CountLogin("denied")
			writeError(w, http.StatusUnauthorized, "email or password is incorrect")
			return
		}
		if err != nil {
			obs.CountLogin("error")
			logApiErr(r, fmt.Sprintf("login failed: %v", err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		obs.CountLogin("success")
		obs.CountTokenIssued()
		a.setSessionCookie(w, result.Session)
		returnJson(&LoginResponse{
			Token:     result.Session.Raw,
			Approved:  result.Approved,
			ExpiresAt: result.Session.TokenExpiresAt.Unix(),
			User: UserResponse{
				ID:    result.User.ID,
				Email: result.User.Email,
				Name:  result.User.Name,
				Org:   result.User.Org,
				Role:  string(result.User.Role),
			},
		}, w)
	}
}

func (a *API) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// local state only; other applications keep their sessions
		a.clearSessionCookie(w)
		w.WriteHeader(http.StatusOK)
	}
}
