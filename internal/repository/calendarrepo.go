package repository

import (
	"context"

	"github.com/goodvibes/planner/internal/model"
)

// CalendarRepository provides owner-scoped access to calendars.
type CalendarRepository interface {
	// ListByOwner returns all calendars for the owner, unordered.
	ListByOwner(ctx context.Context, owner string) ([]model.Calendar, error)

	// CountByOwner returns how many calendars the owner has.
	CountByOwner(ctx context.Context, owner string) (int, error)

	// Create inserts a new calendar row.
	Create(ctx context.Context, c *model.Calendar) error

	// Get returns a single calendar by id.
	Get(ctx context.Context, owner, id string) (*model.Calendar, error)

	// Update overwrites the stored row with the provided state.
	Update(ctx context.Context, c *model.Calendar) error

	// DeleteCascade removes the calendar and every todo of the same owner that
	// references it, inside a single transaction.
	DeleteCascade(ctx context.Context, owner, id string) error
}
