package repository

import (
	"context"

	"github.com/goodvibes/planner/internal/model"
)

// TemplateRepository provides owner-scoped access to templates.
type TemplateRepository interface {
	// ListByOwner returns all templates for the owner, unordered.
	ListByOwner(ctx context.Context, owner string) ([]model.Template, error)

	// Create inserts a new template row.
	Create(ctx context.Context, t *model.Template) error

	// Get returns a single template by id.
	Get(ctx context.Context, owner, id string) (*model.Template, error)

	// Update overwrites the stored row with the provided state.
	Update(ctx context.Context, t *model.Template) error

	// Delete removes the row.
	Delete(ctx context.Context, owner, id string) error
}
