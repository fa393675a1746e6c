package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cdah-platform/access-hub/internal/ids"
	"github.com/cdah-platform/access-hub/internal/store"
)

func setupStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testUser(email string) store.User {
	return store.User{
		ID:           ids.New(),
		Email:        email,
		Name:         "Test User",
		Org:          "Example Health",
		Role:         store.RoleAnalyst,
		PasswordHash: []byte("hash"),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
}

func TestSQLiteStore_UserRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := setupStore(t)

	u := testUser("alice@example.org")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	byID, err := s.FindUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindUserByID failed: %v", err)
	}
	if byID.Email != u.Email || byID.Role != u.Role || string(byID.PasswordHash) != "hash" {
		t.Errorf("FindUserByID = %+v, want %+v", byID, u)
	}
	if !byID.CreatedAt.Equal(u.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", byID.CreatedAt, u.CreatedAt)
	}

	byEmail, err := s.FindUserByEmail(ctx, "alice@example.org")
	if err != nil {
		t.Fatalf("FindUserByEmail failed: %v", err)
	}
	if byEmail.ID != u.ID {
		t.Errorf("FindUserByEmail.ID = %q, want %q", byEmail.ID, u.ID)
	}
}

func TestSQLiteStore_EmailLookupIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := setupStore(t)

	u := testUser("Alice@Example.org")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	found, err := s.FindUserByEmail(ctx, "alice@example.ORG")
	if err != nil {
		t.Fatalf("FindUserByEmail failed: %v", err)
	}
	if found.ID != u.ID {
		t.Errorf("FindUserByEmail.ID = %q, want %q", found.ID, u.ID)
	}
}

func TestSQLiteStore_DuplicateEmailIsCaseInsensitive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := setupStore(t)

	if err := s.CreateUser(ctx, testUser("alice@example.org")); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	err := s.CreateUser(ctx, testUser("ALICE@example.org"))
	if !errors.Is(err, store.ErrDuplicateEmail) {
		t.Errorf("CreateUser with duplicate email = %v, want ErrDuplicateEmail", err)
	}
}

func TestSQLiteStore_FindUserNotFound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := setupStore(t)

	if _, err := s.FindUserByID(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindUserByID = %v, want ErrNotFound", err)
	}
	if _, err := s.FindUserByEmail(ctx, "missing@example.org"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("FindUserByEmail = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_SetApproved(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := setupStore(t)

	u := testUser("alice@example.org")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := s.SetApproved(ctx, u.ID, true); err != nil {
		t.Fatalf("SetApproved failed: %v", err)
	}

	found, err := s.FindUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindUserByID failed: %v", err)
	}
	if !found.Approved {
		t.Error("user not marked approved")
	}

	if err := s.SetApproved(ctx, "missing", true); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("SetApproved on missing user = %v, want ErrNotFound", err)
	}
}

func TestSQLiteStore_ListUsersOrdered(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := setupStore(t)

	base := time.Now().UTC().Truncate(time.Second)
	for i, email := range []string{"a@example.org", "b@example.org", "c@example.org"} {
		u := testUser(email)
		u.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("ListUsers returned %d users, want 3", len(users))
	}
	if users[0].Email != "a@example.org" || users[2].Email != "c@example.org" {
		t.Errorf("users not ordered by creation time: %v", users)
	}
}

func TestSQLiteStore_RequestLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := setupStore(t)

	r := store.AccessRequest{
		ID:        ids.New(),
		Name:      "Bob",
		Email:     "bob@example.org",
		Org:       "County Health",
		Role:      store.RoleHealthOfficer,
		Reason:    "outbreak reporting",
		Status:    store.StatusPending,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := s.CreateRequest(ctx, r); err != nil {
		t.Fatalf("CreateRequest failed: %v", err)
	}

	found, err := s.FindRequest(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindRequest failed: %v", err)
	}
	if found.Status != store.StatusPending || found.Reason != r.Reason {
		t.Errorf("FindRequest = %+v, want %+v", found, r)
	}

	if err := s.SetRequestStatus(ctx, r.ID, store.StatusApproved); err != nil {
		t.Fatalf("SetRequestStatus failed: %v", err)
	}
	found, err = s.FindRequest(ctx, r.ID)
	if err != nil {
		t.Fatalf("FindRequest failed: %v", err)
	}
	if found.Status != store.StatusApproved {
		t.Errorf("status = %q, want approved", found.Status)
	}

	list, err := s.ListRequests(ctx)
	if err != nil {
		t.Fatalf("ListRequests failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("ListRequests returned %d requests, want 1", len(list))
	}

	if err := s.SetRequestStatus(ctx, "missing", store.StatusDenied); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("SetRequestStatus on missing request = %v, want ErrNotFound", err)
	}
}

func TestRole_Valid(t *testing.T) {
	t.Parallel()
	for _, role := range []store.Role{
		store.RoleUser, store.RoleAdmin, store.RoleHealthOfficer,
		store.RoleAnalyst, store.RoleProgramManager, store.RoleDeveloper,
		store.RoleOther,
	} {
		if !role.Valid() {
			t.Errorf("Role(%q).Valid() = false, want true", role)
		}
	}
	if store.Role("superuser").Valid() {
		t.Error(`Role("superuser").Valid() = true, want false`)
	}
}
