package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"

	"github.com/cdah-platform/access-hub/internal/ids"
)

type seedFile struct {
	Users []struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Name     string `yaml:"name"`
		Org      string `yaml:"org"`
		Role     Role   `yaml:"role"`
		Approved bool   `yaml:"approved"`
	} `yaml:"users"`
}

// SeedFromFile loads demo accounts from a YAML file into users. Accounts
// whose email already exists are skipped, so seeding is safe to run on every
// start.
func SeedFromFile(ctx context.Context, users UserStore, path string, cost int) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't read seed file: %w", err)
	}
	var sf seedFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("couldn't parse seed file: %w", err)
	}

	for _, u := range sf.Users {
		if u.Email == "" || u.Password == "" {
			continue
		}
		if _, err := users.FindUserByEmail(ctx, u.Email); err == nil {
			continue
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), cost)
		if err != nil {
			return fmt.Errorf("couldn't hash seed password: %w", err)
		}
		role := u.Role
		if role == "" {
			role = RoleUser
		}
		if err := users.CreateUser(ctx, User{
			ID:           ids.New(),
			Email:        u.Email,
			Name:         u.Name,
			Org:          u.Org,
			Role:         role,
			Approved:     u.Approved,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			return err
		}
	}
	return nil
}
