// Package app holds the task service: domain rules over the
// in-memory task collection, with write-through persistence after
// every successful mutation.
package app

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"taskpilot/model"
)

var (
	ErrEmptyTitle      = errors.New("title must not be empty")
	ErrTaskNotFound    = errors.New("task not found")
	ErrInvalidPriority = errors.New("invalid priority")
)

// Saver persists the full task state. *store.FileStore satisfies it;
// anything with a load-all/save-all shape can be swapped in.
type Saver interface {
	Save(model.State) error
}

// Service owns the in-memory task collection and the next-id counter.
// Every mutation is applied in memory and then written through to the
// saver; when the write fails, the mutation is rolled back so memory
// and disk never diverge.
type Service struct {
	state model.State
	saver Saver
	log   zerolog.Logger
	now   func() time.Time
}

// NewService creates a service around the provided state.
func NewService(state model.State, saver Saver, log zerolog.Logger) *Service {
	return &Service{
		state: normalizeState(state),
		saver: saver,
		log:   log,
		now:   func() time.Time { return time.Now().UTC().Truncate(time.Second) },
	}
}

// State returns a copy of the current state.
func (s *Service) State() model.State {
	return copyState(s.state)
}

// Tasks returns all tasks in insertion order, as a copy.
func (s *Service) Tasks() []model.Task {
	out := make([]model.Task, len(s.state.Tasks))
	copy(out, s.state.Tasks)
	return out
}

// Get returns a task by id.
func (s *Service) Get(id int) (model.Task, bool) {
	for _, t := range s.state.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Add creates a task. The title must be non-empty after trimming; an
// unknown priority silently falls back to medium, the category is
// trimmed and lower-cased, and an unparseable due date is dropped.
func (s *Service) Add(title, description, priority, dueDate, category string) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrEmptyTitle
	}

	p, _ := model.ParsePriority(priority)
	task := model.Task{
		ID:          s.state.NextID,
		Title:       title,
		Description: strings.TrimSpace(description),
		Priority:    p,
		DueDate:     model.NormalizeDueDate(dueDate),
		Category:    model.NormalizeCategory(category),
		CreatedAt:   s.now(),
	}

	snapshot := copyState(s.state)
	s.state.Tasks = append(s.state.Tasks, task)
	s.state.NextID++
	if err := s.persist(); err != nil {
		s.state = snapshot
		return model.Task{}, err
	}

	s.log.Debug().Int("id", task.ID).Str("priority", string(task.Priority)).Str("category", task.Category).Msg("task added")
	return task, nil
}

// Remove deletes the task with the given id.
func (s *Service) Remove(id int) error {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != id {
			continue
		}
		snapshot := copyState(s.state)
		s.state.Tasks = append(s.state.Tasks[:i], s.state.Tasks[i+1:]...)
		if err := s.persist(); err != nil {
			s.state = snapshot
			return err
		}
		s.log.Debug().Int("id", id).Msg("task removed")
		return nil
	}
	return ErrTaskNotFound
}

// Complete marks the task with the given id as completed. Completing
// an already-completed task succeeds.
func (s *Service) Complete(id int) error {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != id {
			continue
		}
		snapshot := copyState(s.state)
		s.state.Tasks[i].Completed = true
		if err := s.persist(); err != nil {
			s.state = snapshot
			return err
		}
		s.log.Debug().Int("id", id).Msg("task completed")
		return nil
	}
	return ErrTaskNotFound
}

// SetPriority changes a task's priority. Unlike Add, an unknown
// priority is rejected rather than normalized.
func (s *Service) SetPriority(id int, priority string) error {
	p, ok := model.ParsePriority(priority)
	if !ok {
		return ErrInvalidPriority
	}
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID != id {
			continue
		}
		snapshot := copyState(s.state)
		s.state.Tasks[i].Priority = p
		if err := s.persist(); err != nil {
			s.state = snapshot
			return err
		}
		s.log.Debug().Int("id", id).Str("priority", string(p)).Msg("task priority updated")
		return nil
	}
	return ErrTaskNotFound
}

// ListOptions narrows the output of List. Empty fields match all.
type ListOptions struct {
	PendingOnly bool
	Category    string
	Priority    string
}

// List returns tasks filtered by opts (pending-only first, then
// category, then priority, both case-insensitive) and sorted by
// priority rank descending. Tasks of equal rank keep their relative
// insertion order.
func (s *Service) List(opts ListOptions) []model.Task {
	category := strings.ToLower(strings.TrimSpace(opts.Category))
	priority := strings.ToLower(strings.TrimSpace(opts.Priority))

	out := make([]model.Task, 0, len(s.state.Tasks))
	for _, t := range s.state.Tasks {
		if opts.PendingOnly && t.Completed {
			continue
		}
		if category != "" && t.Category != category {
			continue
		}
		if priority != "" && string(t.Priority) != priority {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return out
}

// Search returns tasks whose title, description or category contains
// the query, case-insensitively, in insertion order. No ranking.
func (s *Service) Search(query string) []model.Task {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]model.Task, 0)
	if q == "" {
		return out
	}
	for _, t := range s.state.Tasks {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) ||
			strings.Contains(strings.ToLower(t.Category), q) {
			out = append(out, t)
		}
	}
	return out
}

// Stats aggregates the current task collection.
func (s *Service) Stats() model.Stats {
	st := model.Stats{
		ByPriority: make(map[model.Priority]int, 4),
		ByCategory: make(map[string]int),
	}
	for _, p := range model.Priorities() {
		st.ByPriority[p] = 0
	}

	for _, t := range s.state.Tasks {
		st.Total++
		if t.Completed {
			st.Completed++
			continue
		}
		st.Pending++
		st.ByPriority[t.Priority]++
		st.ByCategory[t.Category]++
	}

	if st.Total > 0 {
		st.CompletionRate = math.Round(float64(st.Completed)/float64(st.Total)*1000) / 10
	}
	return st
}

// persist writes the full state through to the saver. A nil saver
// keeps the service memory-only, which tests use.
func (s *Service) persist() error {
	if s.saver == nil {
		return nil
	}
	return s.saver.Save(s.state)
}

func normalizeState(state model.State) model.State {
	state = copyState(state)
	maxID := 0
	for i := range state.Tasks {
		t := &state.Tasks[i]
		t.Category = model.NormalizeCategory(t.Category)
		p, _ := model.ParsePriority(string(t.Priority))
		t.Priority = p
		if t.ID > maxID {
			maxID = t.ID
		}
	}
	if state.NextID <= maxID {
		state.NextID = maxID + 1
	}
	if state.NextID < 1 {
		state.NextID = 1
	}
	return state
}

func copyState(state model.State) model.State {
	tasks := make([]model.Task, len(state.Tasks))
	copy(tasks, state.Tasks)
	out := state
	out.Tasks = tasks
	return out
}
