package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/model"
)

// insertTodoSQL is shared with the migration bulk import.
const insertTodoSQL = `
INSERT INTO todos (id, user_id, title, description, start_date, end_date, estimated_time, priority, calendar_id, is_completed, created_at, completed_at, is_recurring, recurring_pattern, recurring_count)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`

const selectTodoCols = `id, user_id, title, description, start_date, end_date, estimated_time, priority, calendar_id, is_completed, created_at, completed_at, is_recurring, recurring_pattern, recurring_count`

// TodoRepo implements TodoRepository using PostgreSQL.
type TodoRepo struct{ db *DB }

// NewTodoRepo constructs a todo repository.
func NewTodoRepo(db *DB) *TodoRepo { return &TodoRepo{db: db} }

func scanTodo(row pgx.Row) (*model.Todo, error) {
	var t model.Todo
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.StartDate, &t.EndDate,
		&t.EstimatedTime, &t.Priority, &t.CalendarID, &t.IsCompleted,
		&t.CreatedAt, &t.CompletedAt, &t.IsRecurring, &t.RecurringPattern, &t.RecurringCount,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByOwner returns every todo belonging to owner.
func (r *TodoRepo) ListByOwner(ctx context.Context, owner string) ([]model.Todo, error) {
	const q = `SELECT ` + selectTodoCols + ` FROM todos WHERE user_id=$1`
	rows, err := r.db.Pool.Query(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Create inserts a new todo row.
func (r *TodoRepo) Create(ctx context.Context, t *model.Todo) error {
	_, err := r.db.Pool.Exec(ctx, insertTodoSQL,
		t.ID, t.UserID, t.Title, t.Description, t.StartDate, t.EndDate,
		t.EstimatedTime, t.Priority, t.CalendarID, t.IsCompleted,
		t.CreatedAt, t.CompletedAt, t.IsRecurring, t.RecurringPattern, t.RecurringCount,
	)
	return err
}

// Get returns a single todo scoped to owner.
func (r *TodoRepo) Get(ctx context.Context, owner, id string) (*model.Todo, error) {
	const q = `SELECT ` + selectTodoCols + ` FROM todos WHERE user_id=$1 AND id=$2`
	t, err := scanTodo(r.db.Pool.QueryRow(ctx, q, owner, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Update overwrites the stored row. The owner scope is part of the predicate,
// so a cross-owner id behaves exactly like a missing one.
func (r *TodoRepo) Update(ctx context.Context, t *model.Todo) error {
	const q = `
UPDATE todos
SET title=$3, description=$4, start_date=$5, end_date=$6, estimated_time=$7, priority=$8, calendar_id=$9, is_completed=$10, completed_at=$11, is_recurring=$12, recurring_pattern=$13, recurring_count=$14
WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q,
		t.UserID, t.ID, t.Title, t.Description, t.StartDate, t.EndDate,
		t.EstimatedTime, t.Priority, t.CalendarID, t.IsCompleted, t.CompletedAt,
		t.IsRecurring, t.RecurringPattern, t.RecurringCount,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes the row scoped to owner.
func (r *TodoRepo) Delete(ctx context.Context, owner, id string) error {
	const q = `DELETE FROM todos WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, owner, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
