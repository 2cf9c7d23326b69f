package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  Priority
		known bool
	}{
		{name: "low", raw: "low", want: PriorityLow, known: true},
		{name: "upper case", raw: "URGENT", want: PriorityUrgent, known: true},
		{name: "padded", raw: "  high ", want: PriorityHigh, known: true},
		{name: "unknown falls back", raw: "banana", want: PriorityMedium, known: false},
		{name: "empty falls back", raw: "", want: PriorityMedium, known: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParsePriority(tt.raw)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.known, ok)
		})
	}
}

func TestPriorityRank(t *testing.T) {
	assert.Equal(t, 4, PriorityUrgent.Rank())
	assert.Equal(t, 3, PriorityHigh.Rank())
	assert.Equal(t, 2, PriorityMedium.Rank())
	assert.Equal(t, 1, PriorityLow.Rank())
	assert.Equal(t, 0, Priority("whatever").Rank())
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "work", NormalizeCategory("  Work "))
	assert.Equal(t, DefaultCategory, NormalizeCategory(""))
	assert.Equal(t, DefaultCategory, NormalizeCategory("   "))
}

func TestNormalizeDueDate(t *testing.T) {
	assert.Equal(t, "2026-09-01", NormalizeDueDate("2026-09-01"))
	assert.Equal(t, "", NormalizeDueDate(""))
	assert.Equal(t, "", NormalizeDueDate("next tuesday"))
	assert.Equal(t, "", NormalizeDueDate("2026-13-40"))
}

func TestTaskJSONRoundTrip(t *testing.T) {
	created := time.Date(2026, 8, 25, 14, 30, 5, 0, time.UTC)
	task := Task{
		ID:          7,
		Title:       "Write report",
		Description: "Quarterly numbers",
		Priority:    PriorityHigh,
		DueDate:     "2026-09-01",
		Category:    "work",
		CreatedAt:   created,
	}

	data, err := json.Marshal(task)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"created_at":"2026-08-25 14:30:05"`)
	assert.Contains(t, string(data), `"due_date":"2026-09-01"`)

	var back Task
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, task, back)
}

func TestTaskJSONOmitsEmptyDueDate(t *testing.T) {
	data, err := json.Marshal(Task{ID: 1, Title: "x", CreatedAt: time.Now()})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "due_date")
}

func TestTaskUnmarshalBadCreatedAt(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"x","created_at":"garbage"}`), &task))
	assert.True(t, task.CreatedAt.IsZero())
	assert.Equal(t, "x", task.Title)
}

func TestDue(t *testing.T) {
	task := Task{DueDate: "2026-09-01"}
	due, ok := task.Due()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), due)

	_, ok = Task{}.Due()
	assert.False(t, ok)

	_, ok = Task{DueDate: "not-a-date"}.Due()
	assert.False(t, ok)
}

func TestNewState(t *testing.T) {
	state := NewState()
	assert.NotNil(t, state.Tasks)
	assert.Empty(t, state.Tasks)
	assert.Equal(t, 1, state.NextID)
}
