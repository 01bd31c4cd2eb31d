package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/AlexanderWinters/the-score-card/internal/domain/users"
	"github.com/AlexanderWinters/the-score-card/internal/store/models"
)

// ErrEmailTaken is returned when registering an address that already exists.
var ErrEmailTaken = errors.New("email already registered")

// Users persists accounts.
type Users struct {
	db *bun.DB
}

// NewUsers constructs a user repository.
func NewUsers(db *bun.DB) *Users {
	return &Users{db: db}
}

// Create inserts a user. The email must already be normalized.
func (r *Users) Create(ctx context.Context, email, passwordHash string) (users.User, error) {
	row := &models.User{Email: email, PasswordHash: passwordHash}
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*models.User)(nil)).Where("email = ?", email).Exists(ctx)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if exists {
			return ErrEmailTaken
		}
		if _, err := tx.NewInsert().Model(row).Returning("*").Exec(ctx); err != nil {
			if isUniqueViolation(err) {
				return ErrEmailTaken
			}
			return fmt.Errorf("insert user: %w", err)
		}
		return nil
	})
	if err != nil {
		return users.User{}, err
	}
	return toUser(row), nil
}

// ByEmail loads a user by normalized email.
func (r *Users) ByEmail(ctx context.Context, email string) (users.User, error) {
	row := new(models.User)
	if err := r.db.NewSelect().Model(row).Where("u.email = ?", email).Scan(ctx); err != nil {
		return users.User{}, notFound(err)
	}
	return toUser(row), nil
}

// ByID loads a user by id.
func (r *Users) ByID(ctx context.Context, id int64) (users.User, error) {
	row := new(models.User)
	if err := r.db.NewSelect().Model(row).Where("u.id = ?", id).Scan(ctx); err != nil {
		return users.User{}, notFound(err)
	}
	return toUser(row), nil
}

func toUser(row *models.User) users.User {
	return users.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
