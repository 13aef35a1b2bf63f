package postgres

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/model"
)

var todoCols = []string{
	"id", "user_id", "title", "description", "start_date", "end_date",
	"estimated_time", "priority", "calendar_id", "is_completed",
	"created_at", "completed_at", "is_recurring", "recurring_pattern", "recurring_count",
}

func sampleTodo(owner string) *model.Todo {
	return &model.Todo{
		ID:        model.NewID(),
		UserID:    owner,
		Title:     "write report",
		Priority:  model.PriorityMedium,
		CreatedAt: time.Now().UTC(),
	}
}

func todoRow(t *model.Todo) *pgxmock.Rows {
	return pgxmock.NewRows(todoCols).AddRow(
		t.ID, t.UserID, t.Title, t.Description, t.StartDate, t.EndDate,
		t.EstimatedTime, t.Priority, t.CalendarID, t.IsCompleted,
		t.CreatedAt, t.CompletedAt, t.IsRecurring, t.RecurringPattern, t.RecurringCount,
	)
}

func TestTodoRepo_Create(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	td := sampleTodo("alice")

	mock.ExpectExec(`INSERT INTO todos`).
		WithArgs(
			td.ID, td.UserID, td.Title, td.Description, td.StartDate, td.EndDate,
			td.EstimatedTime, td.Priority, td.CalendarID, td.IsCompleted,
			td.CreatedAt, td.CompletedAt, td.IsRecurring, td.RecurringPattern, td.RecurringCount,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	require.NoError(t, r.Create(context.Background(), td))
}

func TestTodoRepo_ListByOwner(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	td := sampleTodo("alice")

	mock.ExpectQuery(`FROM todos WHERE user_id=\$1`).
		WithArgs("alice").
		WillReturnRows(todoRow(td))
	out, err := r.ListByOwner(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, td.ID, out[0].ID)

	// empty result is an empty slice, not nil
	mock.ExpectQuery(`FROM todos WHERE user_id=\$1`).
		WithArgs("bob").
		WillReturnRows(pgxmock.NewRows(todoCols))
	out, err = r.ListByOwner(context.Background(), "bob")
	require.NoError(t, err)
	require.NotNil(t, out)
	require.Len(t, out, 0)
}

func TestTodoRepo_Get_OwnerScoped(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	td := sampleTodo("alice")

	mock.ExpectQuery(`FROM todos WHERE user_id=\$1 AND id=\$2`).
		WithArgs("alice", td.ID).
		WillReturnRows(todoRow(td))
	got, err := r.Get(context.Background(), "alice", td.ID)
	require.NoError(t, err)
	require.Equal(t, td.Title, got.Title)

	// same id, different owner: the row is invisible
	mock.ExpectQuery(`FROM todos WHERE user_id=\$1 AND id=\$2`).
		WithArgs("bob", td.ID).
		WillReturnRows(pgxmock.NewRows(todoCols))
	_, err = r.Get(context.Background(), "bob", td.ID)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

func TestTodoRepo_Update_NotFoundOnZeroRows(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)
	td := sampleTodo("alice")

	mock.ExpectExec(`UPDATE todos`).
		WithArgs(
			td.UserID, td.ID, td.Title, td.Description, td.StartDate, td.EndDate,
			td.EstimatedTime, td.Priority, td.CalendarID, td.IsCompleted, td.CompletedAt,
			td.IsRecurring, td.RecurringPattern, td.RecurringCount,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	require.NoError(t, r.Update(context.Background(), td))

	mock.ExpectExec(`UPDATE todos`).
		WithArgs(
			td.UserID, td.ID, td.Title, td.Description, td.StartDate, td.EndDate,
			td.EstimatedTime, td.Priority, td.CalendarID, td.IsCompleted, td.CompletedAt,
			td.IsRecurring, td.RecurringPattern, td.RecurringCount,
		).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	require.ErrorIs(t, r.Update(context.Background(), td), errs.ErrNotFound)
}

func TestTodoRepo_Delete(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewTodoRepo(db)

	mock.ExpectExec(`DELETE FROM todos WHERE user_id=\$1 AND id=\$2`).
		WithArgs("alice", "t1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	require.NoError(t, r.Delete(context.Background(), "alice", "t1"))

	mock.ExpectExec(`DELETE FROM todos WHERE user_id=\$1 AND id=\$2`).
		WithArgs("alice", "missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	require.ErrorIs(t, r.Delete(context.Background(), "alice", "missing"), errs.ErrNotFound)
}
