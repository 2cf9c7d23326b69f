// Package recommend derives focus suggestions from the current task
// set. It is a fixed sequence of heuristics over the pending tasks;
// it never mutates the tasks it is given or returns.
package recommend

import (
	"fmt"
	"time"
	"unicode/utf8"

	"taskpilot/model"
)

// DefaultLimit caps the number of advisory items when no limit is
// configured.
const DefaultLimit = 5

// maxAttached caps the tasks attached to a single advisory item.
const maxAttached = 3

// quickWinMaxDescription is the exclusive description-length bound
// for the quick-wins heuristic.
const quickWinMaxDescription = 50

// volumeTipThreshold is the pending count above which the volume tip
// fires.
const volumeTipThreshold = 10

// Type tags an advisory item.
type Type string

const (
	TypeInfo      Type = "info"
	TypePriority  Type = "priority"
	TypeOverdue   Type = "overdue"
	TypeCategory  Type = "category"
	TypeQuickWins Type = "quick_wins"
	TypeTip       Type = "tip"
)

// Advice is one advisory item: a type tag, a human-readable message
// and up to three attached tasks.
type Advice struct {
	Type    Type
	Message string
	Tasks   []model.Task
}

// Recommend evaluates the heuristics in fixed order over the pending
// tasks and returns at most limit advisory items. An empty pending
// set yields a single informational item.
func Recommend(tasks []model.Task, now time.Time, limit int) []Advice {
	if limit <= 0 {
		limit = DefaultLimit
	}

	pending := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !t.Completed {
			pending = append(pending, t)
		}
	}
	if len(pending) == 0 {
		return []Advice{{
			Type:    TypeInfo,
			Message: "No pending tasks. Add a task to get started.",
		}}
	}

	out := make([]Advice, 0, 5)
	if a, ok := priorityAdvice(pending); ok {
		out = append(out, a)
	}
	if a, ok := overdueAdvice(pending, now); ok {
		out = append(out, a)
	}
	if a, ok := categoryAdvice(pending); ok {
		out = append(out, a)
	}
	if a, ok := quickWinsAdvice(pending); ok {
		out = append(out, a)
	}
	if len(pending) > volumeTipThreshold {
		out = append(out, Advice{
			Type:    TypeTip,
			Message: fmt.Sprintf("You have %d pending tasks. Consider finishing or dropping a few before taking on more.", len(pending)),
		})
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// priorityAdvice surfaces urgent and high priority tasks, in their
// original order.
func priorityAdvice(pending []model.Task) (Advice, bool) {
	hot := make([]model.Task, 0)
	for _, t := range pending {
		if t.Priority == model.PriorityUrgent || t.Priority == model.PriorityHigh {
			hot = append(hot, t)
		}
	}
	if len(hot) == 0 {
		return Advice{}, false
	}
	return Advice{
		Type:    TypePriority,
		Message: fmt.Sprintf("Start with your %d urgent or high priority tasks.", len(hot)),
		Tasks:   attach(hot),
	}, true
}

// overdueAdvice surfaces tasks due strictly before today. Stored due
// dates that fail to parse are skipped, not treated as overdue.
func overdueAdvice(pending []model.Task, now time.Time) (Advice, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	late := make([]model.Task, 0)
	for _, t := range pending {
		due, ok := t.Due()
		if !ok {
			continue
		}
		if due.Before(today) {
			late = append(late, t)
		}
	}
	if len(late) == 0 {
		return Advice{}, false
	}
	return Advice{
		Type:    TypeOverdue,
		Message: fmt.Sprintf("%d tasks are overdue. Deal with them before they slip further.", len(late)),
		Tasks:   attach(late),
	}, true
}

// categoryAdvice surfaces the category with the most pending tasks,
// only when that count exceeds one. Ties are broken deterministically
// by whichever category was seen first in insertion order.
func categoryAdvice(pending []model.Task) (Advice, bool) {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, t := range pending {
		if _, seen := counts[t.Category]; !seen {
			order = append(order, t.Category)
		}
		counts[t.Category]++
	}

	dominant := ""
	best := 0
	for _, c := range order {
		if counts[c] > best {
			dominant = c
			best = counts[c]
		}
	}
	if best <= 1 {
		return Advice{}, false
	}

	sample := make([]model.Task, 0, maxAttached)
	for _, t := range pending {
		if t.Category != dominant {
			continue
		}
		sample = append(sample, t)
		if len(sample) == maxAttached {
			break
		}
	}
	return Advice{
		Type:    TypeCategory,
		Message: fmt.Sprintf("%q has the most open tasks (%d). Batch them together.", dominant, best),
		Tasks:   sample,
	}, true
}

// quickWinsAdvice surfaces low-effort tasks: short description, low
// or medium priority.
func quickWinsAdvice(pending []model.Task) (Advice, bool) {
	wins := make([]model.Task, 0)
	for _, t := range pending {
		if utf8.RuneCountInString(t.Description) >= quickWinMaxDescription {
			continue
		}
		if t.Priority == model.PriorityLow || t.Priority == model.PriorityMedium {
			wins = append(wins, t)
		}
	}
	if len(wins) == 0 {
		return Advice{}, false
	}
	return Advice{
		Type:    TypeQuickWins,
		Message: fmt.Sprintf("Knock out %d quick wins to build momentum.", len(wins)),
		Tasks:   attach(wins),
	}, true
}

func attach(tasks []model.Task) []model.Task {
	if len(tasks) > maxAttached {
		tasks = tasks[:maxAttached]
	}
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	return out
}
