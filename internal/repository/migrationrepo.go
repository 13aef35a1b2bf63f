package repository

import (
	"context"

	"github.com/goodvibes/planner/internal/model"
)

// MigrationRepository performs the bulk-replace import.
type MigrationRepository interface {
	// ReplaceAll deletes every todo, calendar and template belonging to owner
	// and inserts the provided records, all inside one transaction. Nothing is
	// applied if any insert fails.
	ReplaceAll(ctx context.Context, owner string, todos []model.Todo, calendars []model.Calendar, templates []model.Template) error
}
