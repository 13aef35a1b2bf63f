package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/model"
)

// insertTemplateSQL is shared with the migration bulk import.
const insertTemplateSQL = `
INSERT INTO templates (id, user_id, name, title, description, start_date, end_date, estimated_time, priority, calendar_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

const selectTemplateCols = `id, user_id, name, title, description, start_date, end_date, estimated_time, priority, calendar_id`

// TemplateRepo implements TemplateRepository using PostgreSQL.
type TemplateRepo struct{ db *DB }

// NewTemplateRepo constructs a template repository.
func NewTemplateRepo(db *DB) *TemplateRepo { return &TemplateRepo{db: db} }

func scanTemplate(row pgx.Row) (*model.Template, error) {
	var t model.Template
	err := row.Scan(
		&t.ID, &t.UserID, &t.Name, &t.Title, &t.Description,
		&t.StartDate, &t.EndDate, &t.EstimatedTime, &t.Priority, &t.CalendarID,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByOwner returns every template belonging to owner.
func (r *TemplateRepo) ListByOwner(ctx context.Context, owner string) ([]model.Template, error) {
	const q = `SELECT ` + selectTemplateCols + ` FROM templates WHERE user_id=$1`
	rows, err := r.db.Pool.Query(ctx, q, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Template{}
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Create inserts a new template row.
func (r *TemplateRepo) Create(ctx context.Context, t *model.Template) error {
	_, err := r.db.Pool.Exec(ctx, insertTemplateSQL,
		t.ID, t.UserID, t.Name, t.Title, t.Description,
		t.StartDate, t.EndDate, t.EstimatedTime, t.Priority, t.CalendarID,
	)
	return err
}

// Get returns a single template scoped to owner.
func (r *TemplateRepo) Get(ctx context.Context, owner, id string) (*model.Template, error) {
	const q = `SELECT ` + selectTemplateCols + ` FROM templates WHERE user_id=$1 AND id=$2`
	t, err := scanTemplate(r.db.Pool.QueryRow(ctx, q, owner, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

// Update overwrites the stored row.
func (r *TemplateRepo) Update(ctx context.Context, t *model.Template) error {
	const q = `
UPDATE templates
SET name=$3, title=$4, description=$5, start_date=$6, end_date=$7, estimated_time=$8, priority=$9, calendar_id=$10
WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q,
		t.UserID, t.ID, t.Name, t.Title, t.Description,
		t.StartDate, t.EndDate, t.EstimatedTime, t.Priority, t.CalendarID,
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
func (r *TemplateRepo) Delete(ctx context.Context, owner, id string) error {
	const q = `DELETE FROM templates WHERE user_id=$1 AND id=$2`
	tag, err := r.db.Pool.Exec(ctx, q, owner, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
