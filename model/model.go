package model

import (
	"encoding/json"
	"strings"
	"time"
)

// TimeLayout is the wire format for created_at timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout is the wire format for due dates (calendar date, no time).
const DateLayout = "2006-01-02"

// DefaultCategory is assigned when no category is supplied.
const DefaultCategory = "general"

// Priority classifies how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// DefaultPriority is used when input does not name a known priority.
const DefaultPriority = PriorityMedium

// Priorities returns all priorities from most to least urgent.
func Priorities() []Priority {
	return []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
}

// ParsePriority maps raw input to a priority, case-insensitively.
// Unknown input reports false and falls back to the default.
func ParsePriority(raw string) (Priority, bool) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(raw))); p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return p, true
	}
	return DefaultPriority, false
}

// Rank returns the sort weight of a priority (urgent=4 .. low=1).
// Unknown values rank below low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// NormalizeCategory trims and lower-cases a category, falling back to
// the default when empty.
func NormalizeCategory(raw string) string {
	c := strings.ToLower(strings.TrimSpace(raw))
	if c == "" {
		return DefaultCategory
	}
	return c
}

// NormalizeDueDate returns the canonical "YYYY-MM-DD" form of raw, or
// empty when raw is empty or does not parse as a calendar date.
func NormalizeDueDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return ""
	}
	return d.Format(DateLayout)
}

// Task is an individual tracked work item.
type Task struct {
	ID          int
	Title       string
	Description string
	Priority    Priority
	DueDate     string // "YYYY-MM-DD", empty when no due date
	Category    string
	Completed   bool
	CreatedAt   time.Time
}

// taskJSON is the persisted layout of Task. created_at travels as
// "YYYY-MM-DD HH:MM:SS" rather than RFC 3339.
type taskJSON struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
	DueDate     string   `json:"due_date,omitempty"`
	Category    string   `json:"category"`
	Completed   bool     `json:"completed"`
	CreatedAt   string   `json:"created_at"`
}

// MarshalJSON implements json.Marshaler.
func (t Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Category:    t.Category,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt.Format(TimeLayout),
	})
}

// UnmarshalJSON implements json.Unmarshaler. Missing optional fields
// keep their zero value; defaulting happens when the state is loaded.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw taskJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	createdAt, err := time.Parse(TimeLayout, raw.CreatedAt)
	if err != nil {
		// Legacy or hand-edited files may lack the timestamp; the task
		// is still usable, created_at just stays zero.
		createdAt = time.Time{}
	}
	*t = Task{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Priority:    raw.Priority,
		DueDate:     raw.DueDate,
		Category:    raw.Category,
		Completed:   raw.Completed,
		CreatedAt:   createdAt,
	}
	return nil
}

// Due returns the task's due date, reporting false when the task has
// no due date or the stored string does not parse.
func (t Task) Due() (time.Time, bool) {
	if t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(DateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// State is the full persisted state: the ordered task collection plus
// the next identifier to hand out.
type State struct {
	Tasks  []Task `json:"tasks"`
	NextID int    `json:"next_id"`
}

// NewState returns an initialized empty state.
func NewState() State {
	return State{Tasks: []Task{}, NextID: 1}
}

// Stats aggregates task counts for reporting.
type Stats struct {
	Total          int
	Completed      int
	Pending        int
	CompletionRate float64
	// ByPriority holds pending counts per priority; every priority is
	// present, zero-filled.
	ByPriority map[Priority]int
	// ByCategory holds pending counts per category; only categories
	// with at least one pending task appear.
	ByCategory map[string]int
}
