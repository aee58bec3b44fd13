package liststate

import (
	"context"
	"errors"
	"testing"

	"github.com/lapin-reform/siteops/internal/sheet"
)

type row struct {
	ID   string
	Name string
}

func keyOf(r row) string { return r.ID }

func fetchOf(rows []row, err error) FetchFunc[row] {
	return func(context.Context) ([]row, error) { return rows, err }
}

func TestList_AppendPrepends(t *testing.T) {
	l := New(keyOf)
	l.Append(row{ID: "a"})
	l.Append(row{ID: "b"})
	l.Append(row{ID: "c"})

	got := l.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" || got[2].ID != "a" {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestList_LoadReplacesEntries(t *testing.T) {
	l := New(keyOf)
	l.Append(row{ID: "local"})

	if err := l.Load(context.Background(), fetchOf([]row{{ID: "s1"}, {ID: "s2"}}, nil)); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	got := l.Snapshot()
	// "local" survives as pending since the server never echoed it.
	if len(got) != 3 || got[0].ID != "local" || got[1].ID != "s1" {
		t.Fatalf("unexpected entries: %+v", got)
	}
	if !l.Loaded() {
		t.Fatalf("expected loaded")
	}
}

func TestList_LoadEmptyIsValid(t *testing.T) {
	l := New(keyOf)
	if err := l.Load(context.Background(), fetchOf(nil, nil)); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if l.Len() != 0 || !l.Loaded() {
		t.Fatalf("expected empty loaded collection, len=%d loaded=%v", l.Len(), l.Loaded())
	}
}

func TestList_NotConfiguredKeepsEntries(t *testing.T) {
	l := New(keyOf)
	l.Append(row{ID: "mock_1"})

	if err := l.Load(context.Background(), fetchOf(nil, sheet.ErrNotConfigured)); err != nil {
		t.Fatalf("unconfigured load must not error: %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("entries lost on unconfigured load: %d", l.Len())
	}
	if !l.Loaded() {
		t.Fatalf("unconfigured load must still mark loaded")
	}
}

func TestList_LoadErrorKeepsEntries(t *testing.T) {
	l := New(keyOf)
	l.Append(row{ID: "x"})

	wantErr := errors.New("boom")
	if err := l.Load(context.Background(), fetchOf(nil, wantErr)); !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	if l.Len() != 1 {
		t.Fatalf("failed load must not clear entries: %d", l.Len())
	}
}

func TestList_PendingDeduplicatedAgainstFetch(t *testing.T) {
	l := New(keyOf)
	l.Append(row{ID: "srv_9"}) // optimistic entry the server later echoes

	if err := l.Load(context.Background(), fetchOf([]row{{ID: "srv_9"}, {ID: "srv_8"}}, nil)); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	got := l.Snapshot()
	if len(got) != 2 {
		t.Fatalf("expected deduplicated collection, got %+v", got)
	}
	if got[0].ID != "srv_9" || got[1].ID != "srv_8" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestList_PendingSurvivesRepeatedEmptyLoads(t *testing.T) {
	l := New(keyOf)
	l.Append(row{ID: "local_1"})

	for i := 0; i < 3; i++ {
		if err := l.Load(context.Background(), fetchOf(nil, nil)); err != nil {
			t.Fatalf("load %d failed: %v", i, err)
		}
	}
	if l.Len() != 1 {
		t.Fatalf("pending entry must survive empty loads, len=%d", l.Len())
	}
}

func TestList_StaleLoadDiscarded(t *testing.T) {
	l := New(keyOf)

	started := make(chan struct{})
	release := make(chan struct{})
	slow := func(context.Context) ([]row, error) {
		close(started)
		<-release
		return []row{{ID: "old"}}, nil
	}

	done := make(chan error)
	go func() { done <- l.Load(context.Background(), slow) }()
	<-started

	// A second load supersedes the one still in flight.
	if err := l.Load(context.Background(), fetchOf([]row{{ID: "new"}}, nil)); err != nil {
		t.Fatalf("fresh load failed: %v", err)
	}
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("stale load errored: %v", err)
	}

	got := l.Snapshot()
	if len(got) != 1 || got[0].ID != "new" {
		t.Fatalf("stale load overwrote the fresh one: %+v", got)
	}
}

func TestList_ResetClearsEverything(t *testing.T) {
	l := New(keyOf)
	l.Append(row{ID: "a"})
	_ = l.Load(context.Background(), fetchOf([]row{{ID: "b"}}, nil))

	l.Reset()
	if l.Len() != 0 || l.Loaded() {
		t.Fatalf("reset did not clear state: len=%d loaded=%v", l.Len(), l.Loaded())
	}
}
