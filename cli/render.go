package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskpilot/model"
	"taskpilot/recommend"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("70"))
)

// priorityStyle returns the accent color used for a priority marker.
func priorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityUrgent:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("201"))
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	case model.PriorityMedium:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	case model.PriorityLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	default:
		return faintStyle
	}
}

// renderTaskLine formats one task for list and search output.
func renderTaskLine(t model.Task) string {
	check := "[ ]"
	if t.Completed {
		check = "[x]"
	}
	marker := priorityStyle(t.Priority).Render("●")

	var b strings.Builder
	fmt.Fprintf(&b, "%3d %s %s %s", t.ID, check, marker, t.Title)
	meta := []string{string(t.Priority), t.Category}
	if t.DueDate != "" {
		meta = append(meta, "due "+t.DueDate)
	}
	b.WriteString(faintStyle.Render("  (" + strings.Join(meta, ", ") + ")"))
	if t.Description != "" {
		b.WriteString("\n")
		b.WriteString(faintStyle.Render("      " + t.Description))
	}
	return b.String()
}

// renderTasks formats a task collection, or a placeholder when empty.
func renderTasks(tasks []model.Task, empty string) string {
	if len(tasks) == 0 {
		return faintStyle.Render(empty)
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range tasks {
		lines = append(lines, renderTaskLine(t))
	}
	return strings.Join(lines, "\n")
}

// renderStats formats the statistics aggregate.
func renderStats(st model.Stats) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Tasks"))
	fmt.Fprintf(&b, "\n  total: %d  completed: %d  pending: %d  completion: %.1f%%\n",
		st.Total, st.Completed, st.Pending, st.CompletionRate)

	b.WriteString(headerStyle.Render("Pending by priority"))
	b.WriteString("\n")
	for _, p := range model.Priorities() {
		marker := priorityStyle(p).Render("●")
		fmt.Fprintf(&b, "  %s %-7s %d\n", marker, p, st.ByPriority[p])
	}

	if len(st.ByCategory) > 0 {
		b.WriteString(headerStyle.Render("Pending by category"))
		b.WriteString("\n")
		for _, c := range sortedCategories(st.ByCategory) {
			fmt.Fprintf(&b, "  %-12s %d\n", c, st.ByCategory[c])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderAdvice formats the recommendation output.
func renderAdvice(items []recommend.Advice) string {
	lines := make([]string, 0, len(items)*4)
	for i, a := range items {
		lines = append(lines, fmt.Sprintf("%d. %s %s", i+1, headerStyle.Render(a.Message), faintStyle.Render("["+string(a.Type)+"]")))
		for _, t := range a.Tasks {
			marker := priorityStyle(t.Priority).Render("●")
			lines = append(lines, fmt.Sprintf("   %s #%d %s", marker, t.ID, t.Title))
		}
	}
	return strings.Join(lines, "\n")
}

func sortedCategories(counts map[string]int) []string {
	out := make([]string, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	// Highest count first, name as tie-break, so output is stable.
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}
