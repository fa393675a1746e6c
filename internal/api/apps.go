package api

import (
	"fmt"
	"net/http"

	"github.com/cdah-platform/access-hub/internal/obs"
)

type AppResponse struct {
	Name       string `json:"name"`
	Display    string `json:"display"`
	HandoffURL string `json:"handoffUrl"`
}

// Apps lists the platform applications the signed-in account can reach,
// each with a handoff URL carrying a fresh credential. Platform access
// requires an approved account; unapproved users can sign in but see
// nothing here.
func (a *API) Apps() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := a.currentSession(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "not signed in")
			return
		}

		approved, err := a.svc.IsApproved(r.Context(), sess.ID)
		if err != nil {
			logApiErr(r, fmt.Sprintf("couldn't check approval: %v", err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}
		if !approved {
			writeError(w, http.StatusForbidden, "account pending approval")
			return
		}

		// each handoff carries a credential with a full validity window
		handoffSess, err := a.svc.Refresh(r.Context(), sess)
		if err != nil {
			logApiErr(r, fmt.Sprintf("couldn't mint handoff credential: %v", err))
			writeError(w, http.StatusInternalServerError, "something went wrong")
			return
		}
		obs.CountTokenIssued()

		apps := a.catalog.ListForRole(sess.Role)
		responses := make([]AppResponse, 0, len(apps))
		for _, app := range apps {
			handoff, err := a.catalog.HandoffURL(app.Name, handoffSess.Raw)
			if err != nil {
				continue
			}
			responses = append(responses, AppResponse{
				Name:       app.Name,
				Display:    app.Display,
				HandoffURL: handoff.String(),
			})
		}
		returnJson(responses, w)
	}
}
