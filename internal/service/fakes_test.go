package service

import (
	"context"
	"time"

	"github.com/goodvibes/planner/internal/errs"
	"github.com/goodvibes/planner/internal/limiter"
	"github.com/goodvibes/planner/internal/model"
	"github.com/goodvibes/planner/internal/repository"
)

type fakeUsers struct {
	byName map[string]*model.User

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.byName == nil {
		f.byName = map[string]*model.User{}
	}
	if _, exists := f.byName[u.Username]; exists {
		return errs.ErrAlreadyExists
	}
	cpy := *u
	f.byName[u.Username] = &cpy
	return nil
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byName[username]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

type ownerID struct{ owner, id string }

type fakeTodos struct {
	rows map[ownerID]*model.Todo

	createErr error
	updateErr error
}

var _ repository.TodoRepository = (*fakeTodos)(nil)

func (f *fakeTodos) init() {
	if f.rows == nil {
		f.rows = map[ownerID]*model.Todo{}
	}
}

func (f *fakeTodos) ListByOwner(_ context.Context, owner string) ([]model.Todo, error) {
	f.init()
	out := []model.Todo{}
	for k, t := range f.rows {
		if k.owner == owner {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTodos) Create(_ context.Context, t *model.Todo) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.init()
	cpy := *t
	f.rows[ownerID{t.UserID, t.ID}] = &cpy
	return nil
}

func (f *fakeTodos) Get(_ context.Context, owner, id string) (*model.Todo, error) {
	f.init()
	t, ok := f.rows[ownerID{owner, id}]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTodos) Update(_ context.Context, t *model.Todo) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.init()
	if _, ok := f.rows[ownerID{t.UserID, t.ID}]; !ok {
		return errs.ErrNotFound
	}
	cpy := *t
	f.rows[ownerID{t.UserID, t.ID}] = &cpy
	return nil
}

func (f *fakeTodos) Delete(_ context.Context, owner, id string) error {
	f.init()
	if _, ok := f.rows[ownerID{owner, id}]; !ok {
		return errs.ErrNotFound
	}
	delete(f.rows, ownerID{owner, id})
	return nil
}

type fakeCalendars struct {
	rows map[ownerID]*model.Calendar

	// CascadeCalls records DeleteCascade invocations.
	CascadeCalls []ownerID

	createErr error
	countErr  error
}

var _ repository.CalendarRepository = (*fakeCalendars)(nil)

func (f *fakeCalendars) init() {
	if f.rows == nil {
		f.rows = map[ownerID]*model.Calendar{}
	}
}

func (f *fakeCalendars) ListByOwner(_ context.Context, owner string) ([]model.Calendar, error) {
	f.init()
	out := []model.Calendar{}
	for k, c := range f.rows {
		if k.owner == owner {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeCalendars) CountByOwner(_ context.Context, owner string) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	f.init()
	n := 0
	for k := range f.rows {
		if k.owner == owner {
			n++
		}
	}
	return n, nil
}

func (f *fakeCalendars) Create(_ context.Context, c *model.Calendar) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.init()
	cpy := *c
	f.rows[ownerID{c.UserID, c.ID}] = &cpy
	return nil
}

func (f *fakeCalendars) Get(_ context.Context, owner, id string) (*model.Calendar, error) {
	f.init()
	c, ok := f.rows[ownerID{owner, id}]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cpy := *c
	return &cpy, nil
}

func (f *fakeCalendars) Update(_ context.Context, c *model.Calendar) error {
	f.init()
	if _, ok := f.rows[ownerID{c.UserID, c.ID}]; !ok {
		return errs.ErrNotFound
	}
	cpy := *c
	f.rows[ownerID{c.UserID, c.ID}] = &cpy
	return nil
}

func (f *fakeCalendars) DeleteCascade(_ context.Context, owner, id string) error {
	f.init()
	if _, ok := f.rows[ownerID{owner, id}]; !ok {
		return errs.ErrNotFound
	}
	delete(f.rows, ownerID{owner, id})
	f.CascadeCalls = append(f.CascadeCalls, ownerID{owner, id})
	return nil
}

type fakeTemplates struct {
	rows map[ownerID]*model.Template
}

var _ repository.TemplateRepository = (*fakeTemplates)(nil)

func (f *fakeTemplates) init() {
	if f.rows == nil {
		f.rows = map[ownerID]*model.Template{}
	}
}

func (f *fakeTemplates) ListByOwner(_ context.Context, owner string) ([]model.Template, error) {
	f.init()
	out := []model.Template{}
	for k, t := range f.rows {
		if k.owner == owner {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *fakeTemplates) Create(_ context.Context, t *model.Template) error {
	f.init()
	cpy := *t
	f.rows[ownerID{t.UserID, t.ID}] = &cpy
	return nil
}

func (f *fakeTemplates) Get(_ context.Context, owner, id string) (*model.Template, error) {
	f.init()
	t, ok := f.rows[ownerID{owner, id}]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *t
	return &c, nil
}

func (f *fakeTemplates) Update(_ context.Context, t *model.Template) error {
	f.init()
	if _, ok := f.rows[ownerID{t.UserID, t.ID}]; !ok {
		return errs.ErrNotFound
	}
	cpy := *t
	f.rows[ownerID{t.UserID, t.ID}] = &cpy
	return nil
}

func (f *fakeTemplates) Delete(_ context.Context, owner, id string) error {
	f.init()
	if _, ok := f.rows[ownerID{owner, id}]; !ok {
		return errs.ErrNotFound
	}
	delete(f.rows, ownerID{owner, id})
	return nil
}

type replaceCall struct {
	owner     string
	todos     []model.Todo
	calendars []model.Calendar
	templates []model.Template
}

type fakeMigrationRepo struct {
	calls      []replaceCall
	replaceErr error
}

var _ repository.MigrationRepository = (*fakeMigrationRepo)(nil)

func (f *fakeMigrationRepo) ReplaceAll(_ context.Context, owner string, todos []model.Todo, calendars []model.Calendar, templates []model.Template) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.calls = append(f.calls, replaceCall{owner: owner, todos: todos, calendars: calendars, templates: templates})
	return nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	successErr error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, []byte) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}

func (l *fakeLimiter) Success(context.Context, string, []byte) error {
	l.successCalls++
	return l.successErr
}

func (l *fakeLimiter) Failure(context.Context, string, []byte) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}
