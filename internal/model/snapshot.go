package model

// Snapshot is a client-exported dump of a user's planner data. Field names
// follow the client's camelCase convention; the migration service translates
// them into the internal shape.
type Snapshot struct {
	Todos     []SnapshotTodo     `json:"todos"`
	Calendars []SnapshotCalendar `json:"calendars"`
	Templates []SnapshotTemplate `json:"templates"`
}

// Empty reports whether the snapshot carries no records at all.
func (s Snapshot) Empty() bool {
	return len(s.Todos) == 0 && len(s.Calendars) == 0 && len(s.Templates) == 0
}

// SnapshotTodo is an inbound todo record. ID and Title are required; timestamps
// arrive as ISO-8601 strings.
type SnapshotTodo struct {
	ID               string  `json:"id"`
	Title            string  `json:"title"`
	Description      *string `json:"description"`
	StartDate        *string `json:"startDate"`
	EndDate          *string `json:"endDate"`
	EstimatedTime    *int    `json:"estimatedTime"`
	Priority         *string `json:"priority"`
	CalendarID       *string `json:"calendarId"`
	IsCompleted      *bool   `json:"isCompleted"`
	CreatedAt        *string `json:"createdAt"`
	CompletedAt      *string `json:"completedAt"`
	IsRecurring      *bool   `json:"isRecurring"`
	RecurringPattern *string `json:"recurringPattern"`
	RecurringCount   *int    `json:"recurringCount"`
}

// SnapshotCalendar is an inbound calendar record. Name and Color are required;
// a missing ID gets a fresh one.
type SnapshotCalendar struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault *bool  `json:"isDefault"`
}

// SnapshotTemplate is an inbound template record. Name and Title are required;
// a missing ID gets a fresh one.
type SnapshotTemplate struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	StartDate     *string `json:"startDate"`
	EndDate       *string `json:"endDate"`
	EstimatedTime *int    `json:"estimatedTime"`
	Priority      *string `json:"priority"`
	CalendarID    *string `json:"calendarId"`
}

// MigrationCounts reports how many records of each kind were imported.
type MigrationCounts struct {
	Todos     int `json:"todos"`
	Calendars int `json:"calendars"`
	Templates int `json:"templates"`
}
