package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/cdah-platform/access-hub/internal/store"
)

const seedYAML = `users:
  - email: admin@cdah.test
    password: admin-pass
    name: Platform Admin
    org: CDAH
    role: admin
    approved: true
  - email: pending@cdah.test
    password: pending-pass
    name: Pending User
    org: County Health
    role: analyst
  - email: ""
    password: ignored
`

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "users.yaml")
	if err := os.WriteFile(path, []byte(seedYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSeedFromFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemoryStore()
	path := writeSeedFile(t)

	if err := store.SeedFromFile(ctx, s, path, bcrypt.MinCost); err != nil {
		t.Fatalf("SeedFromFile failed: %v", err)
	}

	admin, err := s.FindUserByEmail(ctx, "admin@cdah.test")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if admin.Role != store.RoleAdmin || !admin.Approved {
		t.Errorf("admin = %+v, want approved admin", admin)
	}
	if err := bcrypt.CompareHashAndPassword(admin.PasswordHash, []byte("admin-pass")); err != nil {
		t.Errorf("seeded password hash does not verify: %v", err)
	}

	pending, err := s.FindUserByEmail(ctx, "pending@cdah.test")
	if err != nil {
		t.Fatalf("pending user not seeded: %v", err)
	}
	if pending.Approved {
		t.Error("pending user should not be approved")
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("seeded %d users, want 2 (blank email skipped)", len(users))
	}
}

func TestSeedFromFile_Idempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemoryStore()
	path := writeSeedFile(t)

	if err := store.SeedFromFile(ctx, s, path, bcrypt.MinCost); err != nil {
		t.Fatalf("SeedFromFile failed: %v", err)
	}
	if err := store.SeedFromFile(ctx, s, path, bcrypt.MinCost); err != nil {
		t.Fatalf("second SeedFromFile failed: %v", err)
	}

	users, err := s.ListUsers(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("seeding twice produced %d users, want 2", len(users))
	}
}
