// Package store persists the full task collection to a local JSON
// file. The file is rewritten in full on every save, using a
// temporary file and an atomic rename so a crash mid-write never
// leaves a torn state file.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"taskpilot/model"
)

// FileStore reads and writes model.State at a fixed path. It only
// serializes and deserializes state; it never mutates it.
type FileStore struct {
	Path string
}

// NewFileStore returns a FileStore backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads state from the backing file.
// A missing file yields an initialized empty state.
func (s *FileStore) Load() (model.State, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewState(), nil
		}
		return model.State{}, err
	}
	return decodeState(data)
}

// LoadWithRecovery loads state, tolerating a corrupt backing file:
// the bad file is moved aside and an empty state is returned together
// with a warning for the user. Only corruption is recovered; other
// read failures propagate.
func (s *FileStore) LoadWithRecovery() (model.State, string, error) {
	state, err := s.Load()
	if err == nil {
		return state, "", nil
	}
	if !isCorruptStateError(err) {
		return model.State{}, "", err
	}

	corruptPath, moveErr := s.moveCorruptFile()
	if moveErr != nil {
		return model.State{}, "", fmt.Errorf("move corrupt task file: %w", moveErr)
	}

	msg := "task file was corrupt; starting with an empty task list"
	if corruptPath != "" {
		msg += fmt.Sprintf(" (bad file kept as %s)", filepath.Base(corruptPath))
	}
	return model.NewState(), msg, nil
}

// Save writes state to the backing file via temporary file + atomic
// rename.
func (s *FileStore) Save(state model.State) error {
	if err := s.ensureDir(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.Path), filepath.Base(s.Path)+".tmp-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		_ = tmp.Close()
		return err
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, s.Path)
}

// decodeState parses persisted state and applies load-time defaults:
// categories are normalized, unknown priorities fall back to medium,
// and a missing next_id counter is rebuilt from the highest task id.
func decodeState(data []byte) (model.State, error) {
	var state model.State
	if err := json.Unmarshal(data, &state); err != nil {
		return model.State{}, err
	}

	if state.Tasks == nil {
		state.Tasks = []model.Task{}
	}

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

	return state, nil
}

func (s *FileStore) ensureDir() error {
	return os.MkdirAll(filepath.Dir(s.Path), 0o755)
}

// moveCorruptFile renames the unreadable state file to a timestamped
// .corrupt sibling so the data is kept for inspection.
func (s *FileStore) moveCorruptFile() (string, error) {
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	base := filepath.Base(s.Path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	timestamp := time.Now().UTC().Format("20060102-150405")
	corruptName := fmt.Sprintf("%s.corrupt-%s%s", name, timestamp, ext)
	corruptPath := filepath.Join(filepath.Dir(s.Path), corruptName)
	if err := os.Rename(s.Path, corruptPath); err != nil {
		return "", err
	}
	return corruptPath, nil
}

func isCorruptStateError(err error) bool {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF)
}
