package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vaughan-dsouza/postboard/internal/db"
	"github.com/vaughan-dsouza/postboard/internal/models"
)

type Users struct {
	DB *db.Lazy
}

func NewUsers(lazy *db.Lazy) *Users {
	return &Users{DB: lazy}
}

// NormalizeEmail is the canonical login key: lowercased, trimmed. Exactly
// one user may exist per normalized email.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Users) Create(ctx context.Context, name, email, passwordHash string, role models.Role) (*models.User, error) {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	u := models.User{
		Name:  name,
		Email: NormalizeEmail(email),
		Role:  role,
	}
	err = conn.QueryRowxContext(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Name, u.Email, passwordHash, u.Role).Scan(&u.ID, &u.CreatedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	u.PasswordHash = passwordHash
	return &u, nil
}

func (s *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u models.User
	err = conn.GetContext(ctx, &u, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email=$1
	`, NormalizeEmail(email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Users) ByID(ctx context.Context, id int64) (*models.User, error) {
	conn, err := s.DB.Get(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u models.User
	err = conn.GetContext(ctx, &u, `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id=$1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
