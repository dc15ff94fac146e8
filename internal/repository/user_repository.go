package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shopmate-chat/internal/domain/user"
	apperrors "shopmate-chat/pkg/errors"
)

type PostgresUserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (username, password_hash, email)
	          VALUES ($1, $2, $3)
	          RETURNING id`

	err := r.db.QueryRowContext(ctx, query, u.Username, u.PasswordHash, u.Email).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	query := `SELECT id, username, password_hash, email FROM users
	          WHERE username = $1`

	var u user.User
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, apperrors.ErrNotFound
		}
		return user.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}
