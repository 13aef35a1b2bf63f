package service

import (
	"context"
	"errors"

	"github.com/goodvibes/planner/internal/model"
	"github.com/goodvibes/planner/internal/repository"
)

// TemplateService defines owner-scoped CRUD over templates. A template is a
// static bundle of default todo fields; it has no completion or recurrence
// state of its own.
type TemplateService interface {
	List(ctx context.Context, owner string) ([]model.Template, error)
	Create(ctx context.Context, owner string, d model.TemplateDraft) (*model.Template, error)
	Get(ctx context.Context, owner, id string) (*model.Template, error)
	Update(ctx context.Context, owner, id string, p model.TemplatePatch) (*model.Template, error)
	Delete(ctx context.Context, owner, id string) error
}

type TemplateServiceImpl struct {
	repo repository.TemplateRepository
}

// NewTemplateService constructs TemplateService.
func NewTemplateService(repo repository.TemplateRepository) *TemplateServiceImpl {
	return &TemplateServiceImpl{repo: repo}
}

func (s *TemplateServiceImpl) List(ctx context.Context, owner string) ([]model.Template, error) {
	if owner == "" {
		return nil, errors.New("validation: empty owner")
	}
	return s.repo.ListByOwner(ctx, owner)
}

func (s *TemplateServiceImpl) Create(ctx context.Context, owner string, d model.TemplateDraft) (*model.Template, error) {
	if owner == "" {
		return nil, errors.New("validation: empty owner")
	}
	if d.Name == "" || d.Title == "" {
		return nil, errors.New("validation: empty name/title")
	}
	priority := d.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	t := &model.Template{
		ID:            model.NewID(),
		UserID:        owner,
		Name:          d.Name,
		Title:         d.Title,
		Description:   d.Description,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		EstimatedTime: d.EstimatedTime,
		Priority:      priority,
		CalendarID:    d.CalendarID,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateServiceImpl) Get(ctx context.Context, owner, id string) (*model.Template, error) {
	if owner == "" || id == "" {
		return nil, errors.New("validation: empty owner/id")
	}
	return s.repo.Get(ctx, owner, id)
}

func (s *TemplateServiceImpl) Update(ctx context.Context, owner, id string, p model.TemplatePatch) (*model.Template, error) {
	t, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		t.Name = *p.Name
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
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TemplateServiceImpl) Delete(ctx context.Context, owner, id string) error {
	if owner == "" || id == "" {
		return errors.New("validation: empty owner/id")
	}
	return s.repo.Delete(ctx, owner, id)
}
