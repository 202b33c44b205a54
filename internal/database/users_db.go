package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/rsvp-planner/app/internal/models"
)

const userColumns = "id, email, password_hash, created_at"

// CreateUser hashes the password and inserts a new organizer.
func CreateUser(ctx context.Context, db *sqlx.DB, email string, password string) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx, db.Rebind("INSERT INTO users(id, email, password_hash) VALUES(?, ?, ?)"),
		id, email, string(hashedPassword))
	if err != nil {
		return nil, err
	}

	return GetUserByID(ctx, db, id)
}

// GetUserByEmail returns ErrNotFound for unknown addresses.
func GetUserByEmail(ctx context.Context, db *sqlx.DB, email string) (*models.User, error) {
	user := &models.User{}
	err := db.GetContext(ctx, user, db.Rebind("SELECT "+userColumns+" FROM users WHERE email = ?"), email)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

func GetUserByID(ctx context.Context, db *sqlx.DB, id string) (*models.User, error) {
	user := &models.User{}
	err := db.GetContext(ctx, user, db.Rebind("SELECT "+userColumns+" FROM users WHERE id = ?"), id)
	if err != nil {
		return nil, notFound(err)
	}
	return user, nil
}

// VerifyPassword compares a stored hashed password with a plaintext password.
func VerifyPassword(hashedPassword string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
