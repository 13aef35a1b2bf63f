// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/goodvibes/planner/internal/model"
)

// UserRepository provides access to user accounts.
type UserRepository interface {
	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error
	// GetByUsername loads a user by username.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}
