package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/model"
	"github.com/goodvibes/planner/internal/repository"
)

// MigrationService imports a client-side snapshot, replacing the owner's data.
type MigrationService interface {
	// Migrate bulk-replaces the owner's todos, calendars and templates from the
	// snapshot. An all-empty snapshot is a no-op returning zero counts.
	Migrate(ctx context.Context, owner string, snap model.Snapshot) (model.MigrationCounts, error)
}

type MigrationServiceImpl struct {
	repo repository.MigrationRepository
}

// NewMigrationService constructs MigrationService.
func NewMigrationService(repo repository.MigrationRepository) *MigrationServiceImpl {
	return &MigrationServiceImpl{repo: repo}
}

// Migrate translates the snapshot's camelCase records into internal rows and
// hands them to the repository as one transaction. Any malformed record aborts
// the whole import; nothing is partially applied.
func (s *MigrationServiceImpl) Migrate(ctx context.Context, owner string, snap model.Snapshot) (model.MigrationCounts, error) {
	if owner == "" {
		return model.MigrationCounts{}, errors.New("validation: empty owner")
	}

	// Guard against wiping a user's data on an accidental empty payload.
	if snap.Empty() {
		return model.MigrationCounts{}, nil
	}

	calendars := make([]model.Calendar, 0, len(snap.Calendars))
	for i, in := range snap.Calendars {
		c, err := importCalendar(owner, in)
		if err != nil {
			return model.MigrationCounts{}, fmt.Errorf("%w: calendar[%d]: %v", errs.ErrMigrationFailed, i, err)
		}
		calendars = append(calendars, *c)
	}

	templates := make([]model.Template, 0, len(snap.Templates))
	for i, in := range snap.Templates {
		t, err := importTemplate(owner, in)
		if err != nil {
			return model.MigrationCounts{}, fmt.Errorf("%w: template[%d]: %v", errs.ErrMigrationFailed, i, err)
		}
		templates = append(templates, *t)
	}

	todos := make([]model.Todo, 0, len(snap.Todos))
	for i, in := range snap.Todos {
		t, err := importTodo(owner, in)
		if err != nil {
			return model.MigrationCounts{}, fmt.Errorf("%w: todo[%d]: %v", errs.ErrMigrationFailed, i, err)
		}
		todos = append(todos, *t)
	}

	if err := s.repo.ReplaceAll(ctx, owner, todos, calendars, templates); err != nil {
		return model.MigrationCounts{}, fmt.Errorf("%w: %v", errs.ErrMigrationFailed, err)
	}
	return model.MigrationCounts{
		Todos:     len(todos),
		Calendars: len(calendars),
		Templates: len(templates),
	}, nil
}

func importCalendar(owner string, in model.SnapshotCalendar) (*model.Calendar, error) {
	if in.Name == "" {
		return nil, errors.New("missing name")
	}
	if in.Color == "" {
		return nil, errors.New("missing color")
	}
	id := in.ID
	if id == "" {
		id = model.NewID()
	}
	c := &model.Calendar{ID: id, UserID: owner, Name: in.Name, Color: in.Color}
	if in.IsDefault != nil {
		c.IsDefault = *in.IsDefault
	}
	return c, nil
}

func importTemplate(owner string, in model.SnapshotTemplate) (*model.Template, error) {
	if in.Name == "" {
		return nil, errors.New("missing name")
	}
	if in.Title == "" {
		return nil, errors.New("missing title")
	}
	id := in.ID
	if id == "" {
		id = model.NewID()
	}
	priority, err := importPriority(in.Priority)
	if err != nil {
		return nil, err
	}
	return &model.Template{
		ID:            id,
		UserID:        owner,
		Name:          in.Name,
		Title:         in.Title,
		Description:   in.Description,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		EstimatedTime: in.EstimatedTime,
		Priority:      priority,
		CalendarID:    in.CalendarID,
	}, nil
}

func importTodo(owner string, in model.SnapshotTodo) (*model.Todo, error) {
	if in.ID == "" {
		return nil, errors.New("missing id")
	}
	if in.Title == "" {
		return nil, errors.New("missing title")
	}
	priority, err := importPriority(in.Priority)
	if err != nil {
		return nil, err
	}

	t := &model.Todo{
		ID:               in.ID,
		UserID:           owner,
		Title:            in.Title,
		Description:      in.Description,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		EstimatedTime:    in.EstimatedTime,
		Priority:         priority,
		CalendarID:       in.CalendarID,
		CreatedAt:        time.Now().UTC(),
		RecurringPattern: in.RecurringPattern,
		RecurringCount:   in.RecurringCount,
	}
	if in.IsCompleted != nil {
		t.IsCompleted = *in.IsCompleted
	}
	if in.IsRecurring != nil {
		t.IsRecurring = *in.IsRecurring
	}
	if in.CreatedAt != nil {
		ts, err := parseISO(*in.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("bad createdAt: %v", err)
		}
		t.CreatedAt = ts
	}
	if in.CompletedAt != nil {
		ts, err := parseISO(*in.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("bad completedAt: %v", err)
		}
		t.CompletedAt = &ts
	}
	return t, nil
}

func importPriority(p *string) (string, error) {
	if p == nil || *p == "" {
		return model.PriorityMedium, nil
	}
	if !model.ValidPriority(*p) {
		return "", fmt.Errorf("bad priority %q", *p)
	}
	return *p, nil
}

// parseISO accepts ISO-8601 timestamps as clients emit them: full RFC 3339
// with an offset or Z suffix, or a bare local form which is taken as UTC.
func parseISO(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		return time.Time{}, err
	}
	return ts.UTC(), nil
}
