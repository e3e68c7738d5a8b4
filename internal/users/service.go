package users

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// Service manages user accounts.
type Service struct {
	pool *pgxpool.Pool
}

// NewService constructs the service.
func NewService(pool *pgxpool.Pool) *Service {
	return &Service{pool: pool}
}

// Create registers a new user with a bcrypt password hash.
func (s *Service) Create(ctx context.Context, input CreateInput) (User, error) {
	if err := input.Validate(); err != nil {
		return User{}, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	var user User
	err = s.pool.QueryRow(ctx, `
		INSERT INTO users (email, full_name, password_hash, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id, email, full_name, password_hash, is_active, created_at`,
		strings.ToLower(strings.TrimSpace(input.Email)), strings.TrimSpace(input.FullName), string(hash),
	).Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.Active, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, ErrEmailTaken
		}
		return User{}, err
	}
	return user, nil
}

// GetByEmail fetches an account by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, full_name, password_hash, is_active, created_at
		FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&user.ID, &user.Email, &user.FullName, &user.PasswordHash, &user.Active, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies credentials and returns the account.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if !user.Active {
		return User{}, ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrUserNotFound
	}
	return user, nil
}
