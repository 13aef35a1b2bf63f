package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/goodvibes/planner/internal/model"
)

// MigrationRepo implements MigrationRepository using PostgreSQL.
type MigrationRepo struct{ db *DB }

// NewMigrationRepo constructs a migration repository.
func NewMigrationRepo(db *DB) *MigrationRepo { return &MigrationRepo{db: db} }

// ReplaceAll wipes the owner's planner data and inserts the imported records
// inside a single transaction. Any failure rolls back both the deletes and the
// inserts.
func (r *MigrationRepo) ReplaceAll(
	ctx context.Context, owner string,
	todos []model.Todo, calendars []model.Calendar, templates []model.Template,
) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const delTodos = `DELETE FROM todos WHERE user_id=$1`
	const delCalendars = `DELETE FROM calendars WHERE user_id=$1`
	const delTemplates = `DELETE FROM templates WHERE user_id=$1`

	if _, err = tx.Exec(ctx, delTodos, owner); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, delCalendars, owner); err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, delTemplates, owner); err != nil {
		return err
	}

	for i := range calendars {
		c := &calendars[i]
		if _, err = tx.Exec(ctx, insertCalendarSQL, c.ID, c.UserID, c.Name, c.Color, c.IsDefault); err != nil {
			return err
		}
	}
	for i := range templates {
		t := &templates[i]
		if _, err = tx.Exec(ctx, insertTemplateSQL,
			t.ID, t.UserID, t.Name, t.Title, t.Description,
			t.StartDate, t.EndDate, t.EstimatedTime, t.Priority, t.CalendarID,
		); err != nil {
			return err
		}
	}
	for i := range todos {
		t := &todos[i]
		if _, err = tx.Exec(ctx, insertTodoSQL,
			t.ID, t.UserID, t.Title, t.Description, t.StartDate, t.EndDate,
			t.EstimatedTime, t.Priority, t.CalendarID, t.IsCompleted,
			t.CreatedAt, t.CompletedAt, t.IsRecurring, t.RecurringPattern, t.RecurringCount,
		); err != nil {
			return err
		}
	}
	return nil
}
