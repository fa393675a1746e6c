package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore backs both UserStore and RequestStore with a single SQLite
// database file.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("couldn't open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("couldn't enable foreign keys: %w", err)
	}

	if err := initSchema(db); err != nil {
		return nil, fmt.Errorf("couldn't init database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Users() UserStore       { return s }
func (s *SQLiteStore) Requests() RequestStore { return s }

func initSchema(db *sql.DB) error {
	if err := initTable(db, "users", `
		CREATE TABLE IF NOT EXISTS users (
			id            TEXT PRIMARY KEY,
			email         TEXT UNIQUE COLLATE NOCASE,
			name          TEXT,
			org           TEXT,
			role          TEXT,
			approved      INTEGER,
			password_hash BLOB,
			created_at    INTEGER
		);`,
	); err != nil {
		return err
	}

	if err := initTable(db, "requests", `
		CREATE TABLE IF NOT EXISTS requests (
			id          TEXT PRIMARY KEY,
			name        TEXT,
			email       TEXT,
			org         TEXT,
			role        TEXT,
			reason      TEXT,
			status      TEXT,
			created_at  INTEGER
		);`,
	); err != nil {
		return err
	}

	return nil
}

func initTable(db *sql.DB, name string, ddl string) error {
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("couldn't init '%s' table schema: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) CreateUser(ctx context.Context, u User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, org, role, approved, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		u.ID,
		u.Email,
		u.Name,
		u.Org,
		string(u.Role),
		boolToInt(u.Approved),
		u.PasswordHash,
		u.CreatedAt.Unix(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEmail, u.Email)
		}
		return fmt.Errorf("couldn't insert into users: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindUserByID(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, org, role, approved, password_hash, created_at
		FROM users
		WHERE id=?;`,
		id,
	)
	return scanUser(row)
}

func (s *SQLiteStore) FindUserByEmail(ctx context.Context, email string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, name, org, role, approved, password_hash, created_at
		FROM users
		WHERE email=? COLLATE NOCASE;`,
		email,
	)
	return scanUser(row)
}

func (s *SQLiteStore) SetApproved(ctx context.Context, id string, approved bool) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET approved=? WHERE id=?;`,
		boolToInt(approved),
		id,
	)
	if err != nil {
		return fmt.Errorf("couldn't update users: %w", err)
	}
	if resultsEmpty(result) {
		return fmt.Errorf("%w: user %s", ErrNotFound, id)
	}
	return nil
}

func (s *SQLiteStore) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, email, name, org, role, approved, password_hash, created_at
		FROM users
		ORDER BY created_at, id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *SQLiteStore) CreateRequest(ctx context.Context, r AccessRequest) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO requests (id, name, email, org, role, reason, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
		r.ID,
		r.Name,
		r.Email,
		r.Org,
		string(r.Role),
		r.Reason,
		string(r.Status),
		r.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("couldn't insert into requests: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindRequest(ctx context.Context, id string) (AccessRequest, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, email, org, role, reason, status, created_at
		FROM requests
		WHERE id=?;`,
		id,
	)
	return scanRequest(row)
}

func (s *SQLiteStore) ListRequests(ctx context.Context) ([]AccessRequest, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, org, role, reason, status, created_at
		FROM requests
		ORDER BY created_at, id;`,
	)
	if err != nil {
		return nil, fmt.Errorf("couldn't query requests: %w", err)
	}
	defer rows.Close()

	var requests []AccessRequest
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	return requests, rows.Err()
}

func (s *SQLiteStore) SetRequestStatus(ctx context.Context, id string, status RequestStatus) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE requests SET status=? WHERE id=?;`,
		string(status),
		id,
	)
	if err != nil {
		return fmt.Errorf("couldn't update requests: %w", err)
	}
	if resultsEmpty(result) {
		return fmt.Errorf("%w: request %s", ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (User, error) {
	var (
		u         User
		role      string
		approved  int
		createdAt int64
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Org, &role, &approved, &u.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("couldn't scan user: %w", err)
	}
	u.Role = Role(role)
	u.Approved = approved != 0
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return u, nil
}

func scanRequest(row rowScanner) (AccessRequest, error) {
	var (
		r         AccessRequest
		role      string
		status    string
		createdAt int64
	)
	err := row.Scan(&r.ID, &r.Name, &r.Email, &r.Org, &role, &r.Reason, &status, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return AccessRequest{}, ErrNotFound
	}
	if err != nil {
		return AccessRequest{}, fmt.Errorf("couldn't scan request: %w", err)
	}
	r.Role = Role(role)
	r.Status = RequestStatus(status)
	r.CreatedAt = time.Unix(createdAt, 0).UTC()
	return r, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func resultsEmpty(result sql.Result) bool {
	count, err := result.RowsAffected()
	if err != nil {
		return false
	}
	return count == 0
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
