package history

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"scicalc/internal/evaluator"
)

func TestStoreNewestFirst(t *testing.T) {
	s := NewStore(10)
	s.Add("1+1", evaluator.Result{Value: 2}, evaluator.Radians)
	s.Add("sin(90)", evaluator.Result{Value: 1}, evaluator.Degrees)

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].String(); got != "sin(90) = 1" {
		t.Fatalf("expected newest entry first, got %q", got)
	}
	if entries[0].AngleMode != evaluator.Degrees {
		t.Fatalf("expected angle mode %s, got %s", evaluator.Degrees, entries[0].AngleMode)
	}
	if _, err := uuid.Parse(entries[1].ID); err != nil {
		t.Fatalf("expected UUID entry id, got %q: %v", entries[1].ID, err)
	}
}

func TestStoreLimit(t *testing.T) {
	s := NewStore(3)
	for i := range 5 {
		s.Add(fmt.Sprintf("%d", i), evaluator.Result{Value: float64(i)}, evaluator.Radians)
	}

	if s.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", s.Len())
	}
	oldest, err := s.Get(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if oldest.Expression != "2" {
		t.Fatalf("expected oldest kept entry %q, got %q", "2", oldest.Expression)
	}
}

func TestStoreDefaultLimit(t *testing.T) {
	if got := NewStore(0).limit; got != DefaultLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultLimit, got)
	}
}

func TestStoreGetOutOfRange(t *testing.T) {
	s := NewStore(5)
	s.Add("1", evaluator.Result{Value: 1}, evaluator.Radians)

	for _, idx := range []int{-1, 1, 10} {
		if _, err := s.Get(idx); !errors.Is(err, ErrNoEntry) {
			t.Fatalf("Get(%d): expected ErrNoEntry, got %v", idx, err)
		}
	}
}

func TestStoreClear(t *testing.T) {
	s := NewStore(5)
	s.Add("1", evaluator.Result{Value: 1}, evaluator.Radians)
	s.Add("2", evaluator.Result{Value: 2}, evaluator.Radians)

	if n := s.Clear(); n != 2 {
		t.Fatalf("expected 2 cleared entries, got %d", n)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", s.Len())
	}
}

func TestStoreEntriesIsACopy(t *testing.T) {
	s := NewStore(5)
	s.Add("1", evaluator.Result{Value: 1}, evaluator.Radians)

	entries := s.Entries()
	entries[0].Expression = "changed"

	if e, _ := s.Get(0); e.Expression != "1" {
		t.Fatalf("expected stored entry to be unchanged, got %q", e.Expression)
	}
}

func TestStoreTimestamps(t *testing.T) {
	s := NewStore(5)
	fixed := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	e := s.Add("1", evaluator.Result{Value: 1}, evaluator.Radians)
	if !e.At.Equal(fixed) {
		t.Fatalf("expected timestamp %v, got %v", fixed, e.At)
	}
}

func TestStoreConcurrentAdds(t *testing.T) {
	s := NewStore(1000)
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(fmt.Sprintf("%d", i), evaluator.Result{Value: float64(i)}, evaluator.Radians)
		}()
	}
	wg.Wait()

	if s.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", s.Len())
	}
}
