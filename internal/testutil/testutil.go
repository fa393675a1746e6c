// Package testutil provides test environment setup and utilities for internal package tests.
package testutil

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/cdah-platform/access-hub/internal/api"
	"github.com/cdah-platform/access-hub/internal/catalog"
	"github.com/cdah-platform/access-hub/internal/service"
	"github.com/cdah-platform/access-hub/internal/store"
	"github.com/cdah-platform/access-hub/pkg/token"
)

var testSigningSecret = []byte("testutil-signing-secret")

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	Store   *store.MemoryStore
	Catalog *catalog.Catalog
	Service *service.Service
	Router  http.Handler
	Issuer  *token.Issuer
	Codec   *token.HS256Codec
}

// SetupTestEnv creates an isolated test environment with in-memory storage
// and a one-app catalog.
func SetupTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	mem := store.NewMemoryStore()
	codec := token.NewHS256Codec(testSigningSecret, "test.hub.local")
	issuer := token.NewIssuer(codec)
	verifier := token.NewVerifier(codec, service.NewResolver(mem))

	svc := service.New(
		mem,
		mem,
		issuer,
		verifier,
		service.PasswordModeTesting,
	)

	catalogDir := t.TempDir()
	appDef := `{"display": "Case Registry", "url": "https://registry.test/cases"}`
	if err := os.WriteFile(filepath.Join(catalogDir, "case-registry.json"), []byte(appDef), 0o600); err != nil {
		t.Fatalf("failed to write catalog app: %v", err)
	}
	cat, err := catalog.New(catalogDir)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}

	return &TestEnv{
		Store:   mem,
		Catalog: cat,
		Service: svc,
		Issuer:  issuer,
		Codec:   codec,
	}
}

// SetupTestEnvWithRouter creates TestEnv and configures the API router
func SetupTestEnvWithRouter(t *testing.T) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)
	a := api.New(env.Service, env.Catalog, false)
	env.Router = a.Router()
	return env
}

// RegisterTestUser creates an unapproved account
func (env *TestEnv) RegisterTestUser(
	t *testing.T,
	email string,
	password string,
) store.User {
	t.Helper()
	user, err := env.Service.Register(context.Background(), service.RegisterParams{
		Email:    email,
		Password: password,
		Name:     "Test User",
		Org:      "Test Org",
		Role:     store.RoleAnalyst,
	})
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return user
}

// RegisterApprovedUser creates an account and marks it approved
func (env *TestEnv) RegisterApprovedUser(
	t *testing.T,
	email string,
	password string,
) store.User {
	t.Helper()
	user := env.RegisterTestUser(t, email, password)
	if err := env.Store.SetApproved(context.Background(), user.ID, true); err != nil {
		t.Fatalf("failed to approve test user: %v", err)
	}
	user.Approved = true
	return user
}

// RegisterAdminUser creates an approved admin account
func (env *TestEnv) RegisterAdminUser(
	t *testing.T,
	email string,
	password string,
) store.User {
	t.Helper()
	user, err := env.Service.Register(context.Background(), service.RegisterParams{
		Email:    email,
		Password: password,
		Name:     "Admin",
		Org:      "Test Org",
		Role:     store.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("failed to register admin user: %v", err)
	}
	if err := env.Store.SetApproved(context.Background(), user.ID, true); err != nil {
		t.Fatalf("failed to approve admin user: %v", err)
	}
	user.Approved = true
	return user
}

// SessionCookie signs the user in and returns the session cookie header
// value for follow-up requests.
func (env *TestEnv) SessionCookie(
	t *testing.T,
	email string,
	password string,
) Header {
	t.Helper()
	result, err := env.Service.Login(context.Background(), email, password)
	if err != nil {
		t.Fatalf("failed to sign in test user: %v", err)
	}
	return Header{Key: "Cookie", Value: "hubSession=" + result.Session.Raw}
}
