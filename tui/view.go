package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskpilot/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	doneStyle = lipgloss.NewStyle().
			Faint(true).
			Strikethrough(true)

	faintStyle = lipgloss.NewStyle().Faint(true)

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	statusErrStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("203"))

	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(1, 2)

	priorityColors = map[model.Priority]lipgloss.Style{
		model.PriorityUrgent: lipgloss.NewStyle().Foreground(lipgloss.Color("201")),
		model.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		model.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		model.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
	}
)

func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n")
	b.WriteString(m.viewList())
	b.WriteString("\n")
	b.WriteString(m.viewPrompt())
	b.WriteString("\n")
	b.WriteString(m.viewStatus())

	body := b.String()
	if m.overlay == overlayNone {
		return body
	}
	return m.placeOverlay(body)
}

func (m *Model) viewHeader() string {
	title := titleStyle.Render("taskpilot")
	var filters []string
	if m.pendingOnly {
		filters = append(filters, "pending only")
	}
	if m.query != "" {
		filters = append(filters, fmt.Sprintf("search: %q", m.query))
	}
	if len(filters) == 0 {
		return title
	}
	return title + "  " + faintStyle.Render(strings.Join(filters, ", "))
}

func (m *Model) viewList() string {
	tasks := m.visibleTasks()
	if len(tasks) == 0 {
		return paneStyle.Render(faintStyle.Render("No tasks to show. Press a to add one."))
	}

	lines := make([]string, 0, len(tasks))
	for i, t := range tasks {
		lines = append(lines, m.renderTaskRow(t, i == m.cursor))
	}
	return paneStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderTaskRow(t model.Task, selected bool) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}

	dot := "●"
	if style, ok := priorityColors[t.Priority]; ok {
		dot = style.Render(dot)
	}

	meta := fmt.Sprintf("(%s, %s", t.Priority, t.Category)
	if t.DueDate != "" {
		meta += ", due " + t.DueDate
	}
	meta += ")"

	title := t.Title
	if t.Completed {
		title = doneStyle.Render(title)
	}
	if selected {
		title = selectedStyle.Render(title)
	}

	return fmt.Sprintf("%3d %s %s %s  %s", t.ID, box, dot, title, faintStyle.Render(meta))
}

func (m *Model) viewPrompt() string {
	label := ""
	switch m.mode {
	case modeAddTitle:
		label = "Title"
	case modeAddDescription:
		label = "Description (optional)"
	case modeAddPriority:
		label = "Priority (low/medium/high/urgent, blank for medium)"
	case modeAddDue:
		label = "Due date (YYYY-MM-DD, optional)"
	case modeAddCategory:
		label = "Category (blank for general)"
	case modeSearch:
		label = "Search"
	case modeConfirmDelete:
		return promptStyle.Render(fmt.Sprintf("Remove task #%d %q? (y/n)", m.confirmID, m.confirmTitle))
	default:
		return faintStyle.Render("a add  x done  d delete  1-4 priority  f filter  / search  s stats  r advice  ? help  q quit")
	}
	return promptStyle.Render(label+": ") + m.input + "▌"
}

func (m *Model) viewStatus() string {
	if m.statusErr {
		return statusErrStyle.Render(m.status)
	}
	return statusOKStyle.Render(m.status)
}

func (m *Model) placeOverlay(body string) string {
	var content string
	switch m.overlay {
	case overlayHelp:
		content = m.helpOverlay()
	case overlayStats:
		content = m.statsOverlay()
	case overlayAdvice:
		content = m.adviceOverlay()
	default:
		return body
	}

	box := overlayStyle.Render(content)
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) helpOverlay() string {
	rows := []string{
		titleStyle.Render("Keys"),
		"",
		"j/k or arrows   move the cursor",
		"a               add a task (guided fields)",
		"x               mark the selected task complete",
		"d               remove the selected task",
		"1 2 3 4         set priority low/medium/high/urgent",
		"f               toggle pending-only view",
		"/               search; Esc clears",
		"s               statistics",
		"r               recommendations",
		"q or ctrl+c     quit",
		"",
		faintStyle.Render("Press Esc or Enter to close"),
	}
	return strings.Join(rows, "\n")
}

func (m *Model) statsOverlay() string {
	stats := m.svc.Stats()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Statistics"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Total: %d   Completed: %d   Pending: %d   Rate: %.1f%%\n\n",
		stats.Total, stats.Completed, stats.Pending, stats.CompletionRate)

	b.WriteString("Pending by priority\n")
	for _, p := range model.Priorities() {
		fmt.Fprintf(&b, "  %-7s %d\n", p, stats.ByPriority[p])
	}

	if len(stats.ByCategory) > 0 {
		b.WriteString("\nPending by category\n")
		names := make([]string, 0, len(stats.ByCategory))
		for name := range stats.ByCategory {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if stats.ByCategory[names[i]] != stats.ByCategory[names[j]] {
				return stats.ByCategory[names[i]] > stats.ByCategory[names[j]]
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			fmt.Fprintf(&b, "  %-12s %d\n", name, stats.ByCategory[name])
		}
	}

	b.WriteString("\n")
	b.WriteString(faintStyle.Render("Press Esc or Enter to close"))
	return b.String()
}

func (m *Model) adviceOverlay() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Recommendations"))
	b.WriteString("\n\n")
	for i, item := range m.advice {
		fmt.Fprintf(&b, "%d. %s\n", i+1, item.Message)
		for _, t := range item.Tasks {
			fmt.Fprintf(&b, "   %s\n", faintStyle.Render(fmt.Sprintf("#%d %s (%s)", t.ID, t.Title, t.Priority)))
		}
	}
	b.WriteString("\n")
	b.WriteString(faintStyle.Render("Press Esc or Enter to close"))
	return b.String()
}
