package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskpilot/app"
	"taskpilot/model"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	svc := app.NewService(model.NewState(), nil, zerolog.Nop())
	return New(svc, 5, "")
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

// typeText feeds a string rune by rune, spaces included.
func typeText(m *Model, text string) {
	for _, r := range text {
		if r == ' ' {
			press(m, "space")
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// addTask walks the staged add flow.
func addTask(m *Model, title, description, priority, due, category string) {
	press(m, "a")
	typeText(m, title)
	press(m, "enter")
	typeText(m, description)
	press(m, "enter")
	typeText(m, priority)
	press(m, "enter")
	typeText(m, due)
	press(m, "enter")
	typeText(m, category)
	press(m, "enter")
}

func TestAddFlowCreatesTask(t *testing.T) {
	m := newTestModel(t)

	addTask(m, "Pay rent", "before the first", "high", "2026-09-01", "home")

	tasks := m.svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pay rent", tasks[0].Title)
	assert.Equal(t, "before the first", tasks[0].Description)
	assert.Equal(t, model.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, "2026-09-01", tasks[0].DueDate)
	assert.Equal(t, "home", tasks[0].Category)

	assert.Equal(t, modeNormal, m.mode)
	assert.Contains(t, m.View(), "Pay rent")
	assert.Contains(t, m.status, "added")
}

func TestAddFlowRejectsEmptyTitle(t *testing.T) {
	m := newTestModel(t)

	press(m, "a", "enter")
	assert.Equal(t, modeAddTitle, m.mode)
	assert.True(t, m.statusErr)

	press(m, "esc")
	assert.Equal(t, modeNormal, m.mode)
	assert.Empty(t, m.svc.Tasks())
}

func TestAddFlowDefaults(t *testing.T) {
	m := newTestModel(t)

	addTask(m, "bare", "", "", "", "")

	tasks := m.svc.Tasks()
	require.Len(t, tasks, 1)
	assert.Equal(t, model.PriorityMedium, tasks[0].Priority)
	assert.Equal(t, model.DefaultCategory, tasks[0].Category)
	assert.Empty(t, tasks[0].DueDate)
}

func TestCompleteSelected(t *testing.T) {
	m := newTestModel(t)
	addTask(m, "do it", "", "", "", "")

	press(m, "x")

	tasks := m.svc.Tasks()
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)
	assert.Contains(t, m.View(), "[x]")
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m := newTestModel(t)
	addTask(m, "doomed", "", "", "", "")

	press(m, "d")
	assert.Equal(t, modeConfirmDelete, m.mode)
	assert.Contains(t, m.View(), "doomed")

	press(m, "n")
	assert.Equal(t, modeNormal, m.mode)
	require.Len(t, m.svc.Tasks(), 1)

	press(m, "d", "y")
	assert.Empty(t, m.svc.Tasks())
}

func TestPriorityKeys(t *testing.T) {
	m := newTestModel(t)
	addTask(m, "bump", "", "low", "", "")

	press(m, "4")
	got, ok := m.svc.Get(1)
	require.True(t, ok)
	assert.Equal(t, model.PriorityUrgent, got.Priority)

	press(m, "1")
	got, _ = m.svc.Get(1)
	assert.Equal(t, model.PriorityLow, got.Priority)
}

func TestCursorMovement(t *testing.T) {
	m := newTestModel(t)
	addTask(m, "first", "", "urgent", "", "")
	addTask(m, "second", "", "low", "", "")

	assert.Equal(t, 1, m.cursor) // follows the last added task

	press(m, "k")
	assert.Equal(t, 0, m.cursor)
	press(m, "k")
	assert.Equal(t, 0, m.cursor)
	press(m, "j", "j", "j")
	assert.Equal(t, 1, m.cursor)
}

func TestPendingFilter(t *testing.T) {
	m := newTestModel(t)
	addTask(m, "open", "", "", "", "")
	addTask(m, "closed", "", "", "", "")
	press(m, "x") // cursor is on "closed"

	press(m, "f")
	view := m.View()
	assert.Contains(t, view, "open")
	assert.NotContains(t, view, "closed")

	press(m, "f")
	assert.Contains(t, m.View(), "closed")
}

func TestSearchFiltersIncrementally(t *testing.T) {
	m := newTestModel(t)
	addTask(m, "groceries", "", "", "", "")
	addTask(m, "standup", "", "", "", "work")

	press(m, "/")
	typeText(m, "wor")
	view := m.View()
	assert.Contains(t, view, "standup")
	assert.NotContains(t, view, "groceries")

	press(m, "enter")
	assert.Equal(t, modeNormal, m.mode)
	assert.Equal(t, "wor", m.query)

	press(m, "esc")
	assert.Empty(t, m.query)
	assert.Contains(t, m.View(), "groceries")
}

func TestStatsOverlay(t *testing.T) {
	m := newTestModel(t)
	addTask(m, "a", "", "urgent", "", "work")
	addTask(m, "b", "", "", "", "work")
	press(m, "x")

	press(m, "s")
	view := m.View()
	assert.Contains(t, view, "Statistics")
	assert.Contains(t, view, "Total: 2")
	assert.Contains(t, view, "50.0%")

	press(m, "esc")
	assert.NotContains(t, m.View(), "Statistics")
}

func TestAdviceOverlay(t *testing.T) {
	m := newTestModel(t)
	addTask(m, "fire drill", "", "urgent", "", "")

	press(m, "r")
	view := m.View()
	assert.Contains(t, view, "Recommendations")
	assert.Contains(t, view, "urgent or high")
	assert.Contains(t, view, "fire drill")
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t)

	press(m, "?")
	assert.Contains(t, m.View(), "Keys")
	press(m, "enter")
	assert.NotContains(t, m.View(), "Keys")
}

func TestQuitFromOverlay(t *testing.T) {
	m := newTestModel(t)
	press(m, "?")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestStartupWarningSeedsStatus(t *testing.T) {
	svc := app.NewService(model.NewState(), nil, zerolog.Nop())
	m := New(svc, 5, "task file was corrupt; starting with an empty task list")

	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "corrupt")
}

func TestBackspaceEditsInput(t *testing.T) {
	m := newTestModel(t)

	press(m, "a")
	typeText(m, "abc")
	press(m, "backspace")
	assert.Equal(t, "ab", m.input)
}
