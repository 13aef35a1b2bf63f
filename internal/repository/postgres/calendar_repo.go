package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/model"
)

// insertCalendarSQL is shared with the migration bulk import.
const insertCalendarSQL = `
INSERT INTO calendars (id, user_id, name, color, is_default)
VALUES ($1,$2,$3,$4,$5)`

// CalendarRepo implements CalendarRepository using PostgreSQL.
type CalendarRepo struct{ db *DB }

// NewCalendarRepo constructs a calendar repository.
func NewCalendarRepo(db *DB) *CalendarRepo { return &CalendarRepo{db: db} }

// ListByOwner returns every calendar belonging to owner.
func (r *CalendarRepo) ListByOwner(ctx context.Context, owner string) ([]model.Calendar, error) {
	const q = `SELECT id, user_id, name, color, is_default FROM calendars WHERE user_id=$1`
	rows, err := r.db.Pool.Query(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Calendar{}
	for rows.Next() {
		var c model.Calendar
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.IsDefault); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountByOwner returns the number of calendars the owner has.
func (r *CalendarRepo) CountByOwner(ctx context.Context, owner string) (int, error) {
	const q = `SELECT COUNT(*) FROM calendars WHERE user_id=$1`
	var n int
	if err := r.db.Pool.QueryRow(ctx, q, owner).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Create inserts a new calendar row.
func (r *CalendarRepo) Create(ctx context.Context, c *model.Calendar) error {
	_, err := r.db.Pool.Exec(ctx, insertCalendarSQL, c.ID, c.UserID, c.Name, c.Color, c.IsDefault)
	return err
}

// Get returns a single calendar scoped to owner.
func (r *CalendarRepo) Get(ctx context.Context, owner, id string) (*model.Calendar, error) {
	const q = `SELECT id, user_id, name, color, is_default FROM calendars WHERE user_id=$1 AND id=$2`
	var c model.Calendar
	if err := r.db.Pool.QueryRow(ctx, q, owner, id).Scan(&c.ID, &c.UserID, &c.Name, &c.Color, &c.IsDefault); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update overwrites the stored row.
func (r *CalendarRepo) Update(ctx context.Context, c *model.Calendar) error {
	const q = `UPDATE calendars SET name=$3, color=$4, is_default=$5 WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, c.UserID, c.ID, c.Name, c.Color, c.IsDefault)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the calendar and the owner's todos referencing it as a
// single transaction. Both deletes commit together or not at all.
func (r *CalendarRepo) DeleteCascade(ctx context.Context, owner, id string) (err error) {
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

	const delCal = `DELETE FROM calendars WHERE user_id=$1 AND id=$2`
	const delTodos = `DELETE FROM todos WHERE user_id=$1 AND calendar_id=$2`

	tag, err := tx.Exec(ctx, delCal, owner, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		err = errs.ErrNotFound
		return err
	}
	if _, err = tx.Exec(ctx, delTodos, owner, id); err != nil {
		return err
	}
	return nil
}
