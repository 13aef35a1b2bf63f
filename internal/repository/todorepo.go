package repository

import (
	"context"

	"github.com/goodvibes/planner/internal/model"
)

// TodoRepository provides owner-scoped access to todos. Every method filters by
// owner; a row belonging to another user is indistinguishable from an absent one.
type TodoRepository interface {
	// ListByOwner returns all todos for the owner, unordered.
	ListByOwner(ctx context.Context, owner string) ([]model.Todo, error)

	// Create inserts a new todo row.
	Create(ctx context.Context, t *model.Todo) error

	// Get returns a single todo by id.
	Get(ctx context.Context, owner, id string) (*model.Todo, error)

	// Update overwrites the stored row with the provided state.
	Update(ctx context.Context, t *model.Todo) error

	// Delete removes the row.
	Delete(ctx context.Context, owner, id string) error
}
