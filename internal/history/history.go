// Package history keeps the calculations of the running process, newest
// first. Nothing is persisted.
package history

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"scicalc/internal/evaluator"
)

// DefaultLimit bounds a Store created with a non-positive limit.
const DefaultLimit = 100

var ErrNoEntry = errors.New("no such history entry")

// Entry is one successful calculation.
type Entry struct {
	ID         string              `json:"id"`
	Expression string              `json:"expression"`
	Result     evaluator.Result    `json:"result"`
	AngleMode  evaluator.AngleMode `json:"angle_mode"`
	At         time.Time           `json:"at"`
}

// String is the "expr = result" line shown in history lists.
func (e Entry) String() string {
	return fmt.Sprintf("%s = %s", e.Expression, e.Result)
}

// Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	limit   int
	entries []Entry
	now     func() time.Time
}

func NewStore(limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{limit: limit, now: time.Now}
}

// Add records a calculation at the front of the history, dropping the
// oldest entry once the store is full.
func (s *Store) Add(expression string, result evaluator.Result, mode evaluator.AngleMode) Entry {
	e := Entry{
		ID:         uuid.NewString(),
		Expression: expression,
		Result:     result,
		AngleMode:  mode,
		At:         s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{e}, s.entries...)
	if len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	return e
}

// Entries returns a copy of the history, newest first.
func (s *Store) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry at index, 0 being the newest.
func (s *Store) Get(index int) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.entries) {
		return Entry{}, fmt.Errorf("%w: index %d", ErrNoEntry, index)
	}
	return s.entries[index], nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear drops every entry and reports how many there were.
func (s *Store) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.entries = nil
	return n
}
