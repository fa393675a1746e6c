package api_test

import (
	"net/http"
	"testing"

	"github.com/cdah-platform/access-hub/internal/api"
	"github.com/cdah-platform/access-hub/internal/testutil"
)

func TestLogin_Success(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	env.RegisterApprovedUser(t, "alice@example.org", "password123")

	body := `{"email": "alice@example.org", "password": "password123"}`
	var resp api.LoginResponse
	result := testutil.PostJSON(env.Router, "/api/login", body, &resp)
	testutil.ExpectStatus(t, http.StatusOK, result)

	if resp.Token == "" {
		t.Fatal("login response missing token")
	}
	if !resp.Approved {
		t.Error("approved account reported as unapproved")
	}
	if resp.User.Email != "alice@example.org" {
		t.Errorf("user email = %q", resp.User.Email)
	}

	// the cookie carries the same credential, HttpOnly
	cookie := testutil.ExpectCookie(t, "hubSession", result)
	if cookie.Value != resp.Token {
		t.Error("session cookie does not carry the issued token")
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}
}

func TestLogin_UnapprovedAccountStillSignsIn(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	env.RegisterTestUser(t, "pending@example.org", "password123")

	body := `{"email": "pending@example.org", "password": "password123"}`
	var resp api.LoginResponse
	result := testutil.PostJSON(env.Router, "/api/login", body, &resp)
	testutil.ExpectStatus(t, http.StatusOK, result)

	if resp.Approved {
		t.Error("unapproved account reported as approved")
	}
	if resp.Token == "" {
		t.Error("unapproved sign-in should still mint a credential")
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	env.RegisterTestUser(t, "alice@example.org", "password123")

	tests := []struct {
		name string
		body string
	}{
		{"wrong password", `{"email": "alice@example.org", "password": "nope"}`},
		{"unknown account", `{"email": "nobody@example.org", "password": "password123"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := testutil.PostJSON(env.Router, "/api/login", tt.body, nil)
			testutil.ExpectStatus(t, http.StatusUnauthorized, result)
		})
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)

	result := testutil.PostJSON(env.Router, "/api/login", `{not json`, nil)
	testutil.ExpectStatus(t, http.StatusBadRequest, result)
}

func TestLogout_ClearsCookie(t *testing.T) {
	t.Parallel()
	env := testutil.SetupTestEnvWithRouter(t)
	env.RegisterApprovedUser(t, "alice@example.org", "password123")
	cookie := env.SessionCookie(t, "alice@example.org", "password123")

	result := testutil.PostJSON(env.Router, "/api/logout", "{}", nil, cookie)
	testutil.ExpectStatus(t, http.StatusOK, result)

	cleared := testutil.ExpectCookie(t, "hubSession", result)
	if cleared.MaxAge >= 0 {
		t.Errorf("logout cookie MaxAge = %d, want negative", cleared.MaxAge)
	}
}
