package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"homestay/internal/models"
)

const userColumns = `id, full_name, email, password, created_at`

type userRow struct {
	ID        int64     `db:"id"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *userRow) model() *models.User {
	return &models.User{
		ID:           r.ID,
		FullName:     r.FullName,
		Email:        r.Email,
		PasswordHash: r.Password,
		CreatedAt:    r.CreatedAt,
	}
}

// CreateUser stores a user with an already hashed password.
func (db *DB) CreateUser(ctx context.Context, fullName, email, passwordHash string) (*models.User, error) {
	email = models.NormalizeEmail(email)
	res, err := db.ExecContext(ctx,
		`INSERT INTO users (full_name, email, password, created_at) VALUES (?, ?, ?, ?)`,
		fullName, email, passwordHash, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("user email %q: %w", email, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return db.GetUserByID(ctx, id)
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return db.queryUser(ctx, "id = ?", id)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.queryUser(ctx, "email = ?", models.NormalizeEmail(email))
}

func (db *DB) queryUser(ctx context.Context, where string, arg interface{}) (*models.User, error) {
	var row userRow
	err := db.GetContext(ctx, &row, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.model(), nil
}

func (db *DB) CountUsers(ctx context.Context) (int, error) {
	return db.count(ctx, "users")
}
