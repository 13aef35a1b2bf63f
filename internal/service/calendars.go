package service

import (
	"context"
	"errors"

	"github.com/goodvibes/planner/internal/model"
	"github.com/goodvibes/planner/internal/repository"
)

// CalendarService defines owner-scoped CRUD over calendars.
type CalendarService interface {
	// List returns all calendars for the owner.
	List(ctx context.Context, owner string) ([]model.Calendar, error)
	// Create stores a new calendar; the owner's first calendar is always the default.
	Create(ctx context.Context, owner string, d model.CalendarDraft) (*model.Calendar, error)
	// Get returns a single calendar.
	Get(ctx context.Context, owner, id string) (*model.Calendar, error)
	// Update applies the supplied fields verbatim and returns the new state.
	Update(ctx context.Context, owner, id string, p model.CalendarPatch) (*model.Calendar, error)
	// Delete removes the calendar and cascades to its todos.
	Delete(ctx context.Context, owner, id string) error
}

type CalendarServiceImpl struct {
	repo repository.CalendarRepository
}

// NewCalendarService constructs CalendarService.
func NewCalendarService(repo repository.CalendarRepository) *CalendarServiceImpl {
	return &CalendarServiceImpl{repo: repo}
}

// List returns all calendars for the owner, unordered.
func (s *CalendarServiceImpl) List(ctx context.Context, owner string) ([]model.Calendar, error) {
	if owner == "" {
		return nil, errors.New("validation: empty owner")
	}
	return s.repo.ListByOwner(ctx, owner)
}

// Create stores a new calendar. The first calendar an owner creates is marked
// default regardless of the requested flag; later creates honor the request.
func (s *CalendarServiceImpl) Create(ctx context.Context, owner string, d model.CalendarDraft) (*model.Calendar, error) {
	if owner == "" {
		return nil, errors.New("validation: empty owner")
	}
	if d.Name == "" {
		return nil, errors.New("validation: empty name")
	}

	n, err := s.repo.CountByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}

	c := &model.Calendar{
		ID:        model.NewID(),
		UserID:    owner,
		Name:      d.Name,
		Color:     d.Color,
		IsDefault: n == 0 || d.IsDefault,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get returns a single calendar scoped to owner.
func (s *CalendarServiceImpl) Get(ctx context.Context, owner, id string) (*model.Calendar, error) {
	if owner == "" || id == "" {
		return nil, errors.New("validation: empty owner/id")
	}
	return s.repo.Get(ctx, owner, id)
}

// Update applies supplied fields without re-checking the default invariant;
// callers may produce multi-default or zero-default states past the first
// calendar.
func (s *CalendarServiceImpl) Update(ctx context.Context, owner, id string, p model.CalendarPatch) (*model.Calendar, error) {
	c, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Color != nil {
		c.Color = *p.Color
	}
	if p.IsDefault != nil {
		c.IsDefault = *p.IsDefault
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes the calendar and every todo of this owner referencing it in
// one atomic unit.
func (s *CalendarServiceImpl) Delete(ctx context.Context, owner, id string) error {
	if owner == "" || id == "" {
		return errors.New("validation: empty owner/id")
	}
	return s.repo.DeleteCascade(ctx, owner, id)
}
