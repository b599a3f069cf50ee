// Package checkpoint persists validation progress across process
// restarts. The state file's presence is the resume signal: it exists
// from the first flush until the run finishes and writes its outputs,
// and is deleted afterwards.
package checkpoint

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/lexkit/wordvet/internal/domain"
	"github.com/lexkit/wordvet/pkg/atomicfile"
)

// Meta describes the run that created the checkpoint. Informational
// only; resume decisions never consult it.
type Meta struct {
	CreatedAt time.Time `json:"created_at"`
	RunID     string    `json:"run_id"`
}

// State is the persisted progress record. Results are keyed by word so
// re-processing after a crash is idempotent: re-recording an
// already-resolved word overwrites with the same value.
type State struct {
	// LastIndex is the count of words fully processed; it is both the
	// resume cursor and the progress display.
	LastIndex int             `json:"lastIndex"`
	Results   map[string]bool `json:"results"`
	Meta      Meta            `json:"meta"`
}

// Store owns the durable ValidationState for one run.
type Store struct {
	path  string
	state State
}

// NewStore creates a Store persisting at path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted state, or initializes a fresh one when no
// checkpoint file exists.
func (s *Store) Load() error {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = State{
				Results: make(map[string]bool),
				Meta:    Meta{CreatedAt: time.Now().UTC(), RunID: uuid.NewString()},
			}
			return nil
		}
		return fmt.Errorf("read checkpoint: %w", err)
	}

	var st State
	if err := json.Unmarshal(b, &st); err != nil {
		return fmt.Errorf("decode checkpoint: %w", err)
	}
	if st.Results == nil {
		st.Results = make(map[string]bool)
	}
	s.state = st
	return nil
}

// Record stores the verdict for the word at position index and advances
// the cursor past it. Recording the same word twice with the same
// verdict leaves the state unchanged in effect.
func (s *Store) Record(word string, index int, verdict domain.Verdict) {
	s.state.Results[word] = verdict.Valid
	s.state.LastIndex = index + 1
}

// Flush persists the current state crash-safely.
func (s *Store) Flush() error {
	b, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("write checkpoint: %w", err)
	}
	return nil
}

// Clear removes the persisted checkpoint; called only after the run
// fully completes and final outputs are written.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove checkpoint: %w", err)
	}
	return nil
}

// LastIndex returns the resume cursor.
func (s *Store) LastIndex() int { return s.state.LastIndex }

// Result looks up the recorded verdict for a word.
func (s *Store) Result(word string) (valid, ok bool) {
	valid, ok = s.state.Results[word]
	return
}

// Resuming reports whether the loaded state carries prior progress.
func (s *Store) Resuming() bool { return s.state.LastIndex > 0 }

// RunID identifies the run that created this checkpoint.
func (s *Store) RunID() string { return s.state.Meta.RunID }
