package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/cartacaixa/filmlog/internal/utils"
)

// User mirrors the 'users' table.  The senha hash never leaves the server:
// it is excluded from JSON serialization.
type User struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	SenhaHash string    `json:"-"`
	EhAdmin   bool      `json:"ehAdmin"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UserRepo encapsulates all database queries related to users.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create hashes the senha and inserts a user, returning the stored record.
// ErrUsernameExists is reported when the username is taken.
func (r *UserRepo) Create(ctx context.Context, username, senha string, ehAdmin bool, cost int) (*User, error) {
	username = strings.TrimSpace(username)
	hash, err := utils.HashSenha(senha, cost)
	if err != nil {
		return nil, err
	}
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (username, senha_hash, eh_admin) VALUES (?, ?, ?)",
		username, hash, ehAdmin)
	if err != nil {
		// MySQL 1062 = duplicate entry on the unique username key.
		if strings.Contains(err.Error(), "1062") {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &User{ID: uint64(id), Username: username, SenhaHash: hash, EhAdmin: ehAdmin}, nil
}

// GetByUsername fetches a user by exact username, or ErrUserNotFound.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.get(ctx,
		"SELECT id, username, senha_hash, eh_admin FROM users WHERE username = ? LIMIT 1",
		strings.TrimSpace(username))
}

// GetByID fetches a user by id, or ErrUserNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*User, error) {
	return r.get(ctx,
		"SELECT id, username, senha_hash, eh_admin FROM users WHERE id = ? LIMIT 1", id)
}

func (r *UserRepo) get(ctx context.Context, query string, arg any) (*User, error) {
	var u User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.SenhaHash, &u.EhAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// UpdateCredentials overwrites the username and senha hash of a user.  The
// caller supplies final values (it merges "keep the old one" semantics before
// calling).  ErrUsernameExists is reported when the new username collides.
func (r *UserRepo) UpdateCredentials(ctx context.Context, id uint64, username, senhaHash string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE users SET username = ?, senha_hash = ? WHERE id = ?",
		strings.TrimSpace(username), senhaHash, id)
	if err != nil && strings.Contains(err.Error(), "1062") {
		return ErrUsernameExists
	}
	return err
}

// Delete removes a user and reports whether a row existed.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
