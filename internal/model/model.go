// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Priority levels accepted for todos and templates.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Recurring patterns accepted for todos.
const (
	RecurringDaily   = "daily"
	RecurringWeekly  = "weekly"
	RecurringMonthly = "monthly"
)

// NewID returns a fresh random identifier rendered as a string.
func NewID() string {
	return uuid.Must(uuid.NewV4()).String()
}

// ValidPriority reports whether p is one of the accepted priority levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Token is an issued bearer token.
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"-"` // access token expiry (for diagnostics)
}

// User represents an account stored on the server. Passwords are never stored
// in plaintext; see internal/crypto.
type User struct {
	Username  string    `json:"username"` // unique, also the owner key on all rows
	PwdHash   []byte    `json:"-"`
	SaltAuth  []byte    `json:"-"` // per-user auth salt
	CreatedAt time.Time `json:"-"`
}

// Todo is a single task row owned by one user.
type Todo struct {
	ID               string     `json:"id"`
	UserID           string     `json:"-"` // owner username
	Title            string     `json:"title"`
	Description      *string    `json:"description,omitempty"`
	StartDate        *string    `json:"start_date,omitempty"` // ISO date string
	EndDate          *string    `json:"end_date,omitempty"`
	EstimatedTime    *int       `json:"estimated_time,omitempty"` // minutes
	Priority         string     `json:"priority"`
	CalendarID       *string    `json:"calendar_id,omitempty"`
	IsCompleted      bool       `json:"is_completed"`
	CreatedAt        time.Time  `json:"created_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	IsRecurring      bool       `json:"is_recurring"`
	RecurringPattern *string    `json:"recurring_pattern,omitempty"`
	RecurringCount   *int       `json:"recurring_count,omitempty"`
}

// TodoDraft carries caller-supplied fields for creating a todo. The id, owner,
// completion state and created_at are stamped by the service.
type TodoDraft struct {
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	EstimatedTime    *int    `json:"estimated_time"`
	Priority         string  `json:"priority"`
	CalendarID       *string `json:"calendar_id"`
	IsRecurring      bool    `json:"is_recurring"`
	RecurringPattern *string `json:"recurring_pattern"`
	RecurringCount   *int    `json:"recurring_count"`
}

// TodoPatch is a partial update. Nil means "field not supplied"; only supplied
// fields are applied, in declaration order.
type TodoPatch struct {
	Title            *string `json:"title"`
	Description      *string `json:"description"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	EstimatedTime    *int    `json:"estimated_time"`
	Priority         *string `json:"priority"`
	CalendarID       *string `json:"calendar_id"`
	IsCompleted      *bool   `json:"is_completed"`
	IsRecurring      *bool   `json:"is_recurring"`
	RecurringPattern *string `json:"recurring_pattern"`
	RecurringCount   *int    `json:"recurring_count"`
}

// Calendar groups todos; each user gets a provisioned default set at
// registration.
type Calendar struct {
	ID        string `json:"id"`
	UserID    string `json:"-"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
}

// CalendarDraft carries caller-supplied fields for creating a calendar.
type CalendarDraft struct {
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"is_default"`
}

// CalendarPatch is a partial update for a calendar.
type CalendarPatch struct {
	Name      *string `json:"name"`
	Color     *string `json:"color"`
	IsDefault *bool   `json:"is_default"`
}

// Template is a reusable bundle of default todo fields. It is never completed
// and never recurs on its own.
type Template struct {
	ID            string  `json:"id"`
	UserID        string  `json:"-"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Description   *string `json:"description,omitempty"`
	StartDate     *string `json:"start_date,omitempty"`
	EndDate       *string `json:"end_date,omitempty"`
	EstimatedTime *int    `json:"estimated_time,omitempty"`
	Priority      string  `json:"priority"`
	CalendarID    *string `json:"calendar_id,omitempty"`
}

// TemplateDraft carries caller-supplied fields for creating a template.
type TemplateDraft struct {
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	EstimatedTime *int    `json:"estimated_time"`
	Priority      string  `json:"priority"`
	CalendarID    *string `json:"calendar_id"`
}

// TemplatePatch is a partial update for a template.
type TemplatePatch struct {
	Name          *string `json:"name"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	StartDate     *string `json:"start_date"`
	EndDate       *string `json:"end_date"`
	EstimatedTime *int    `json:"estimated_time"`
	Priority      *string `json:"priority"`
	CalendarID    *string `json:"calendar_id"`
}
