package service

import (
	"context"
	"errors"
	"time"

	"github.com/goodvibes/planner/internal/model"
	"github.com/goodvibes/planner/internal/repository"
)

// TodoService defines owner-scoped CRUD over todos.
type TodoService interface {
	// List returns all todos for the owner.
	List(ctx context.Context, owner string) ([]model.Todo, error)
	// Create stamps id/owner/created_at and stores a new todo.
	Create(ctx context.Context, owner string, d model.TodoDraft) (*model.Todo, error)
	// Get returns a single todo; missing and not-owned are the same error.
	Get(ctx context.Context, owner, id string) (*model.Todo, error)
	// Update applies the supplied fields and returns the new state.
	Update(ctx context.Context, owner, id string, p model.TodoPatch) (*model.Todo, error)
	// Delete removes the todo.
	Delete(ctx context.Context, owner, id string) error
}

type TodoServiceImpl struct {
	repo repository.TodoRepository
}

// NewTodoService constructs TodoService.
func NewTodoService(repo repository.TodoRepository) *TodoServiceImpl {
	return &TodoServiceImpl{repo: repo}
}

// List returns all todos for the owner, unordered.
func (s *TodoServiceImpl) List(ctx context.Context, owner string) ([]model.Todo, error) {
	if owner == "" {
		return nil, errors.New("validation: empty owner")
	}
	return s.repo.ListByOwner(ctx, owner)
}

// Create stores a new todo. A fresh id and the owner are stamped here; the
// completion state always starts false.
func (s *TodoServiceImpl) Create(ctx context.Context, owner string, d model.TodoDraft) (*model.Todo, error) {
	if owner == "" {
		return nil, errors.New("validation: empty owner")
	}
	if d.Title == "" {
		return nil, errors.New("validation: empty title")
	}
	priority := d.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	t := &model.Todo{
		ID:               model.NewID(),
		UserID:           owner,
		Title:            d.Title,
		Description:      d.Description,
		StartDate:        d.StartDate,
		EndDate:          d.EndDate,
		EstimatedTime:    d.EstimatedTime,
		Priority:         priority,
		CalendarID:       d.CalendarID,
		IsCompleted:      false,
		CreatedAt:        time.Now().UTC(),
		IsRecurring:      d.IsRecurring,
		RecurringPattern: d.RecurringPattern,
		RecurringCount:   d.RecurringCount,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns a single todo scoped to owner.
func (s *TodoServiceImpl) Get(ctx context.Context, owner, id string) (*model.Todo, error) {
	if owner == "" || id == "" {
		return nil, errors.New("validation: empty owner/id")
	}
	return s.repo.Get(ctx, owner, id)
}

// Update loads the prior state, applies only the supplied fields and writes the
// row back. The completion timestamp is derived from the transition of
// is_completed, compared against the state before assignment.
func (s *TodoServiceImpl) Update(ctx context.Context, owner, id string, p model.TodoPatch) (*model.Todo, error) {
	t, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = p.Description
	}
	if p.StartDate != nil {
		t.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = p.EndDate
	}
	if p.EstimatedTime != nil {
		t.EstimatedTime = p.EstimatedTime
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.CalendarID != nil {
		t.CalendarID = p.CalendarID
	}
	if p.IsCompleted != nil {
		if *p.IsCompleted && !t.IsCompleted {
			now := time.Now().UTC()
			t.CompletedAt = &now
		} else if !*p.IsCompleted {
			t.CompletedAt = nil
		}
		t.IsCompleted = *p.IsCompleted
	}
	if p.IsRecurring != nil {
		t.IsRecurring = *p.IsRecurring
	}
	if p.RecurringPattern != nil {
		t.RecurringPattern = p.RecurringPattern
	}
	if p.RecurringCount != nil {
		t.RecurringCount = p.RecurringCount
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the todo scoped to owner.
func (s *TodoServiceImpl) Delete(ctx context.Context, owner, id string) error {
	if owner == "" || id == "" {
		return errors.New("validation: empty owner/id")
	}
	return s.repo.Delete(ctx, owner, id)
}
