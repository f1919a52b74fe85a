package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redlinehq/redline/internal/session"
)

func TestCreateGetClose(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := session.NewManager()

	s := m.Create(ctx)
	if s.ID == "" {
		t.Fatal("Create returned a session with an empty id")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}

	got, err := m.Get(s.ID)
	if err != nil {
		t.Fatalf("Get(%q): %v", s.ID, err)
	}
	if got != s {
		t.Error("Get returned a different session instance")
	}

	if err := m.Close(ctx, s.ID); err != nil {
		t.Fatalf("Close(%q): %v", s.ID, err)
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", m.Len())
	}
	if _, err := m.Get(s.ID); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Get after Close: err = %v, want ErrNotFound", err)
	}
}

func TestGetUnknown(t *testing.T) {
	t.Parallel()

	m := session.NewManager()
	if _, err := m.Get("nope"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Get unknown id: err = %v, want ErrNotFound", err)
	}
	if err := m.Close(context.Background(), "nope"); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("Close unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestUniqueIDs(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := session.NewManager()
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := m.Create(ctx)
		if seen[s.ID] {
			t.Fatalf("duplicate session id %q", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestSessionHistory(t *testing.T) {
	t.Parallel()

	m := session.NewManager()
	s := m.Create(context.Background())

	if _, ok := s.Current(); ok {
		t.Error("Current on a fresh session: ok = true, want false")
	}

	s.Push("draft one")
	s.Push("draft two")

	if got, _ := s.Current(); got != "draft two" {
		t.Errorf("Current() = %q, want %q", got, "draft two")
	}
	if got, ok := s.Undo(); !ok || got != "draft one" {
		t.Errorf("Undo() = %q, %v, want %q, true", got, ok, "draft one")
	}
	if got, ok := s.Redo(); !ok || got != "draft two" {
		t.Errorf("Redo() = %q, %v, want %q, true", got, ok, "draft two")
	}
	if _, ok := s.Redo(); ok {
		t.Error("Redo at the newest snapshot: ok = true, want false")
	}
}

func TestHistoryCapOption(t *testing.T) {
	t.Parallel()

	m := session.NewManager(session.WithHistoryCap(2))
	s := m.Create(context.Background())

	s.Push("a")
	s.Push("b")
	s.Push("c")

	// "a" was evicted, so only one undo step remains.
	if got, ok := s.Undo(); !ok || got != "b" {
		t.Errorf("Undo() = %q, %v, want %q, true", got, ok, "b")
	}
	if _, ok := s.Undo(); ok {
		t.Error("Undo past the retained window: ok = true, want false")
	}
}

func TestConcurrentPush(t *testing.T) {
	t.Parallel()

	m := session.NewManager()
	s := m.Create(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Push("text")
		}()
	}
	wg.Wait()

	if got, ok := s.Current(); !ok || got != "text" {
		t.Errorf("Current() = %q, %v, want %q, true", got, ok, "text")
	}
}

func TestEvictIdle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := session.NewManager(session.WithIdleTTL(10 * time.Millisecond))

	idle := m.Create(ctx)
	fresh := m.Create(ctx)

	time.Sleep(20 * time.Millisecond)
	fresh.Push("still here")

	if got := m.EvictIdleOnce(ctx); got != 1 {
		t.Fatalf("EvictIdleOnce() = %d, want 1", got)
	}
	if _, err := m.Get(idle.ID); !errors.Is(err, session.ErrNotFound) {
		t.Errorf("idle session survived eviction: err = %v, want ErrNotFound", err)
	}
	if _, err := m.Get(fresh.ID); err != nil {
		t.Errorf("active session was evicted: %v", err)
	}
}

func TestEvictIdle_NoneIdle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m := session.NewManager()
	m.Create(ctx)

	if got := m.EvictIdleOnce(ctx); got != 0 {
		t.Errorf("EvictIdleOnce() = %d, want 0", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}
