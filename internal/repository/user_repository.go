package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/minhokang/review-market/internal/model"
)

var ErrEmailExists = errors.New("email already exists")

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with an already-hashed password and returns its ID.
func (r *UserRepo) Create(ctx context.Context, email, name, passwordHash string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, name, password) VALUES (?,?,?)",
		email, name, passwordHash)
	if err != nil {
		// 1062 = duplicate entry on the unique email index
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// FindByEmail fetches a user by email as stored (no normalization).
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,name,password,refresh_token,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email))
}

// FindByID fetches a user by id.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (model.User, error) {
	return r.scanOne(r.DB.QueryRowContext(ctx,
		"SELECT id,email,name,password,refresh_token,created_at,updated_at FROM users WHERE id=? LIMIT 1",
		id))
}

// UpdateRefreshToken overwrites the single stored refresh token.
// Last write wins; there is no row-level coordination between
// concurrent rotations.
func (r *UserRepo) UpdateRefreshToken(ctx context.Context, id uint64, token string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET refresh_token=? WHERE id=?", token, id)
	return err
}

func (r *UserRepo) scanOne(row *sql.Row) (model.User, error) {
	var (
		u  model.User
		rt sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Password, &rt, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if rt.Valid {
		u.RefreshToken = &rt.String
	}
	return u, nil
}
