package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/cdah-platform/access-hub/internal/service"
	"github.com/cdah-platform/access-hub/internal/store"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Org      string `json:"org"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	User     UserResponse `json:"user"`
	Approved bool         `json:"approved"`
}

func (a *API) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if ok := decodeRequest(&req, w, r); !ok {
			return
		}

		user, err := a.svc.Register(r.Context(), service.RegisterParams{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
			Org:      req.Org,
			Role:     store.Role(req.Role),
		})
		switch {
		case errors.Is(err, service.ErrDuplicateAccount):
			writeError(w, http.StatusConflict, "an account with that email already exists")
			return
		case errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrInvalidCredentials):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			logApiErr(r, fmt.Sprintf("registration failed: %v", err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		returnJson(&RegisterResponse{
			User: UserResponse{
				ID:    user.ID,
				Email: user.Email,
				Name:  user.Name,
				Org:   user.Org,
				Role:  string(user.Role),
			},
			Approved: user.Approved,
		}, w)
	}
}
