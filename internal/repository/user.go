package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/travlapes/backend/internal/models"
)

type UserRepository struct {
	db *pgxpool.Pool
}

const userColumns = `id, username, email, password_hash, created_at, updated_at`

// NewUserRepository создает репозиторий пользователей.
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create создает пользователя; занятые username или email возвращают ErrConflict.
func (r *UserRepository) Create(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		username, email, passwordHash,
	)

	user, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user, ErrConflict
		}
		return user, err
	}

	return user, nil
}

// GetByUsername возвращает пользователя по имени входа.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE username = $1`,
		username,
	)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user, ErrNotFound
	}

	return user, err
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE id = $1`,
		id,
	)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return user, ErrNotFound
	}

	return user, err
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}
