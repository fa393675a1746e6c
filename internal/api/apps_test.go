package api_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/cdah-platform/access-hub/internal/api"
	"github.com/cdah-platform/access-hub/internal/testutil"
	"github.com/cdah-platform/access-hub/pkg/token"
)

func TestApps_ReturnsHandoffURLs(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	env.RegisterApprovedUser(t, "alice@example.org", "password123")
	cookie := env.SessionCookie(t, "alice@example.org", "password123")

	var apps []api.AppResponse
	result := testutil.Get(env.Router, "/api/apps", &apps, cookie)
	testutil.ExpectStatus(t, http.StatusOK, result)

	if len(apps) != 1 {
		t.Fatalf("got %d apps, want 1", len(apps))
	}
	if apps[0].Name != "case-registry" {
		t.Errorf("app name = %q", apps[0].Name)
	}

	// the handoff URL carries a credential that decodes cleanly
	handoff, err := url.Parse(apps[0].HandoffURL)
	if err != nil {
		t.Fatalf("handoff URL unparseable: %v", err)
	}
	raw := token.FromLocation(handoff)
	if raw == "" {
		t.Fatal("handoff URL missing credential")
	}
	verifier := token.NewVerifier(env.Codec, nil)
	sess, err := verifier.Decode(context.Background(), raw)
	if err != nil {
		t.Fatalf("handoff credential does not decode: %v", err)
	}
	if sess.Email != "alice@example.org" {
		t.Errorf("handoff credential subject = %q", sess.Email)
	}
}

func TestApps_PendingAccountForbidden(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	env.RegisterTestUser(t, "pending@example.org", "password123")
	cookie := env.SessionCookie(t, "pending@example.org", "password123")

	result := testutil.Get(env.Router, "/api/apps", nil, cookie)
	testutil.ExpectStatus(t, http.StatusForbidden, result)
}

func TestApps_Unauthenticated(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	result := testutil.Get(env.Router, "/api/apps", nil)
	testutil.ExpectStatus(t, http.StatusUnauthorized, result)
}
