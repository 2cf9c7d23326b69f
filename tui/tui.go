// Package tui implements the interactive full-screen shell: a task
// list with staged input for new tasks, filtering, search, and
// overlays for statistics, recommendations and key help.
package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"taskpilot/app"
	"taskpilot/model"
	"taskpilot/recommend"
)

type uiMode int

const (
	modeNormal uiMode = iota
	modeAddTitle
	modeAddDescription
	modeAddPriority
	modeAddDue
	modeAddCategory
	modeSearch
	modeConfirmDelete
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlayStats
	overlayAdvice
)

// draft collects the staged fields of a task being added.
type draft struct {
	title       string
	description string
	priority    string
	due         string
	category    string
}

type Model struct {
	svc         *app.Service
	adviceLimit int

	mode    uiMode
	overlay overlayKind
	cursor  int
	input   string

	query       string
	pendingOnly bool

	draft        draft
	confirmID    int
	confirmTitle string

	advice []recommend.Advice

	status    string
	statusErr bool

	width  int
	height int
}

// New creates the shell model. startupStatus, when non-empty, seeds
// the status line (used for the corrupt-file recovery warning).
func New(svc *app.Service, adviceLimit int, startupStatus string) *Model {
	status := strings.TrimSpace(startupStatus)
	statusErr := status != ""
	if status == "" {
		status = "Ready"
	}
	if adviceLimit <= 0 {
		adviceLimit = recommend.DefaultLimit
	}
	return &Model{
		svc:         svc,
		adviceLimit: adviceLimit,
		mode:        modeNormal,
		status:      status,
		statusErr:   statusErr,
	}
}

// Run starts the interactive shell and blocks until the user quits.
func Run(svc *app.Service, adviceLimit int, startupStatus string) error {
	p := tea.NewProgram(New(svc, adviceLimit, startupStatus), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		switch m.mode {
		case modeNormal:
			if quit := m.updateNormalMode(msg); quit {
				return m, tea.Quit
			}
		case modeConfirmDelete:
			m.updateConfirmMode(msg)
		default:
			m.updateInputMode(msg)
		}
	}
	return m, nil
}

func (m *Model) updateNormalMode(msg tea.KeyMsg) bool {
	if m.overlay != overlayNone {
		switch msg.String() {
		case "q", "ctrl+c":
			return true
		case "esc", "enter", "?", "s", "r":
			m.overlay = overlayNone
			m.setStatus("Ready", false)
		}
		return false
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return true
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "a":
		m.mode = modeAddTitle
		m.draft = draft{}
		m.input = ""
		m.setStatus("New task: enter a title", false)
	case "x":
		m.completeSelected()
	case "d":
		m.startDeleteConfirm()
	case "1":
		m.setSelectedPriority(model.PriorityLow)
	case "2":
		m.setSelectedPriority(model.PriorityMedium)
	case "3":
		m.setSelectedPriority(model.PriorityHigh)
	case "4":
		m.setSelectedPriority(model.PriorityUrgent)
	case "f":
		m.pendingOnly = !m.pendingOnly
		m.cursor = 0
		if m.pendingOnly {
			m.setStatus("Showing pending tasks only", false)
		} else {
			m.setStatus("Showing all tasks", false)
		}
	case "/":
		m.mode = modeSearch
		m.input = m.query
		m.setStatus("Search: type to filter, Enter confirms, Esc clears", false)
	case "s":
		m.overlay = overlayStats
	case "r":
		m.advice = recommend.Recommend(m.svc.Tasks(), time.Now(), m.adviceLimit)
		m.overlay = overlayAdvice
	case "?":
		m.overlay = overlayHelp
	case "esc":
		if m.query != "" {
			m.query = ""
			m.cursor = 0
			m.setStatus("Search cleared", false)
		}
	}

	m.ensureSelection()
	return false
}

func (m *Model) updateInputMode(msg tea.KeyMsg) {
	switch msg.String() {
	case "ctrl+c", "esc":
		if m.mode == modeSearch {
			m.query = ""
			m.cursor = 0
		}
		m.mode = modeNormal
		m.input = ""
		m.setStatus("Cancelled", false)
		return
	case "enter":
		m.applyInput()
		return
	}

	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.input = trimLastRune(m.input)
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}

	if m.mode == modeSearch {
		m.query = strings.TrimSpace(m.input)
		m.cursor = 0
		m.ensureSelection()
	}
}

func (m *Model) updateConfirmMode(msg tea.KeyMsg) {
	switch strings.ToLower(msg.String()) {
	case "y":
		id := m.confirmID
		m.mode = modeNormal
		m.confirmID = 0
		m.confirmTitle = ""
		if err := m.svc.Remove(id); err != nil {
			m.setStatus("Could not remove task: "+err.Error(), true)
			return
		}
		m.ensureSelection()
		m.setStatus(fmt.Sprintf("Task #%d removed", id), false)
	case "n", "esc", "enter":
		m.mode = modeNormal
		m.confirmID = 0
		m.confirmTitle = ""
		m.setStatus("Cancelled", false)
	}
}

// applyInput advances the staged add flow, or confirms the search.
func (m *Model) applyInput() {
	text := strings.TrimSpace(m.input)
	switch m.mode {
	case modeAddTitle:
		if text == "" {
			m.setStatus("Title must not be empty", true)
			return
		}
		m.draft.title = text
		m.mode = modeAddDescription
		m.input = ""
	case modeAddDescription:
		m.draft.description = text
		m.mode = modeAddPriority
		m.input = ""
	case modeAddPriority:
		m.draft.priority = text
		m.mode = modeAddDue
		m.input = ""
	case modeAddDue:
		// Shell-side validation: an unparseable date is dropped here
		// rather than rejected.
		m.draft.due = model.NormalizeDueDate(text)
		m.mode = modeAddCategory
		m.input = ""
	case modeAddCategory:
		m.draft.category = text
		m.finishAdd()
	case modeSearch:
		m.query = text
		m.mode = modeNormal
		m.input = ""
		m.cursor = 0
		if text == "" {
			m.setStatus("Search cleared", false)
			return
		}
		m.setStatus("Search applied", false)
	}
}

func (m *Model) finishAdd() {
	task, err := m.svc.Add(m.draft.title, m.draft.description, m.draft.priority, m.draft.due, m.draft.category)
	m.mode = modeNormal
	m.input = ""
	m.draft = draft{}
	if err != nil {
		m.setStatus("Could not add task: "+err.Error(), true)
		return
	}
	m.cursor = m.indexOfTask(task.ID)
	m.setStatus(fmt.Sprintf("Task #%d added", task.ID), false)
}

func (m *Model) completeSelected() {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", true)
		return
	}
	if err := m.svc.Complete(task.ID); err != nil {
		m.setStatus("Could not complete task: "+err.Error(), true)
		return
	}
	m.setStatus(fmt.Sprintf("Task #%d completed", task.ID), false)
}

func (m *Model) startDeleteConfirm() {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", true)
		return
	}
	m.mode = modeConfirmDelete
	m.confirmID = task.ID
	m.confirmTitle = task.Title
}

func (m *Model) setSelectedPriority(p model.Priority) {
	task, ok := m.selectedTask()
	if !ok {
		m.setStatus("No task selected", true)
		return
	}
	if err := m.svc.SetPriority(task.ID, string(p)); err != nil {
		m.setStatus("Could not change priority: "+err.Error(), true)
		return
	}
	m.cursor = m.indexOfTask(task.ID)
	m.setStatus(fmt.Sprintf("Task #%d is now %s priority", task.ID, p), false)
}

func (m *Model) moveCursor(delta int) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(tasks)-1)
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m *Model) ensureSelection() {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		m.cursor = 0
		return
	}
	m.cursor = clamp(m.cursor, 0, len(tasks)-1)
}

// visibleTasks derives the displayed slice: search results when a
// query is active, the priority-sorted list otherwise, both honoring
// the pending-only toggle.
func (m *Model) visibleTasks() []model.Task {
	if m.query != "" {
		matches := m.svc.Search(m.query)
		if !m.pendingOnly {
			return matches
		}
		out := make([]model.Task, 0, len(matches))
		for _, t := range matches {
			if !t.Completed {
				out = append(out, t)
			}
		}
		return out
	}
	return m.svc.List(app.ListOptions{PendingOnly: m.pendingOnly})
}

func (m *Model) selectedTask() (model.Task, bool) {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	if m.cursor < 0 || m.cursor >= len(tasks) {
		m.cursor = 0
	}
	return tasks[m.cursor], true
}

func (m *Model) indexOfTask(id int) int {
	tasks := m.visibleTasks()
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	if len(tasks) == 0 {
		return 0
	}
	return len(tasks) - 1
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func trimLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
