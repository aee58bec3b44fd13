// Package liststate holds the per-kind in-memory collections that back the
// client's list views. A collection is refreshed wholesale from the endpoint
// and optimistically prepended on successful submission, without waiting for
// a full reload.
package liststate

import (
	"context"
	"errors"
	"sync"

	"github.com/lapin-reform/siteops/internal/sheet"
)

// FetchFunc retrieves the authoritative collection for the current filter.
type FetchFunc[T any] func(ctx context.Context) ([]T, error)

// List is an ordered collection with newest-first display order. Optimistic
// appends are tracked in a pending buffer and reconciled against the next
// successful load, so a refresh never duplicates an entry the server has
// since echoed back.
type List[T any] struct {
	mu      sync.Mutex
	entries []T
	pending []T
	keyOf   func(T) string
	loaded  bool
	version uint64
}

// New creates a List. keyOf identifies an entry for pending-buffer
// deduplication; entries with an empty key are never deduplicated.
func New[T any](keyOf func(T) string) *List[T] {
	return &List[T]{keyOf: keyOf}
}

// Load replaces the collection with the fetched set. Zero results are a
// valid empty collection. When the endpoint is unconfigured the collection
// is left as-is and simply marked loaded. A load that was superseded by a
// newer one while in flight is discarded on resolution.
func (l *List[T]) Load(ctx context.Context, fetch FetchFunc[T]) error {
	l.mu.Lock()
	l.version++
	started := l.version
	l.mu.Unlock()

	fetched, err := fetch(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.version != started {
		// A newer load or reset won the race; last write wins.
		return nil
	}

	if errors.Is(err, sheet.ErrNotConfigured) {
		l.loaded = true
		return nil
	}
	if err != nil {
		return err
	}

	l.entries = append(l.reconcilePending(fetched), fetched...)
	l.loaded = true
	return nil
}

// Append prepends entry and records it as pending until a load confirms it.
func (l *List[T]) Append(entry T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]T{entry}, l.entries...)
	l.pending = append(l.pending, entry)
}

// Snapshot returns a copy of the current collection, newest first.
func (l *List[T]) Snapshot() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]T, len(l.entries))
	copy(out, l.entries)
	return out
}

// Loaded reports whether at least one load has completed (or been skipped
// because the endpoint is unconfigured).
func (l *List[T]) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loaded
}

// Len returns the current number of entries.
func (l *List[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Reset drops the collection and pending buffer, and invalidates any load
// still in flight.
func (l *List[T]) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.version++
	l.entries = nil
	l.pending = nil
	l.loaded = false
}

// reconcilePending drops pending entries the fetched set already contains
// and returns the survivors, newest first, for re-prepending. Caller holds mu.
func (l *List[T]) reconcilePending(fetched []T) []T {
	if len(l.pending) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(fetched))
	for _, e := range fetched {
		if k := l.keyOf(e); k != "" {
			seen[k] = struct{}{}
		}
	}

	var keep []T
	for _, p := range l.pending {
		k := l.keyOf(p)
		if k == "" {
			keep = append(keep, p)
			continue
		}
		if _, ok := seen[k]; !ok {
			keep = append(keep, p)
		}
	}
	l.pending = keep

	// Newest first: later appends go in front.
	out := make([]T, 0, len(keep))
	for i := len(keep) - 1; i >= 0; i-- {
		out = append(out, keep[i])
	}
	return out
}
