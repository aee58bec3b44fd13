package session

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/sheet"
)

type stubGateway struct {
	res   *sheet.Result
	err   error
	calls int
}

func (g *stubGateway) Call(_ context.Context, _ string, _ map[string]any) (*sheet.Result, error) {
	g.calls++
	return g.res, g.err
}

func (g *stubGateway) Query(context.Context, string, map[string]string) (*sheet.Result, error) {
	return g.res, g.err
}

func TestMemoryStore_SetGetClear(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if tok, _ := s.Get(ctx, "u1"); tok != "" {
		t.Fatalf("expected empty slot, got %q", tok)
	}

	if err := s.Set(ctx, "u1", "tok_1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if tok, _ := s.Get(ctx, "u1"); tok != "tok_1" {
		t.Fatalf("expected tok_1, got %q", tok)
	}

	// Setting the same value twice is idempotent.
	if err := s.Set(ctx, "u1", "tok_1"); err != nil {
		t.Fatalf("idempotent set failed: %v", err)
	}
	if tok, _ := s.Get(ctx, "u1"); tok != "tok_1" {
		t.Fatalf("expected tok_1 after idempotent set, got %q", tok)
	}

	if err := s.Set(ctx, "u1", ""); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if tok, _ := s.Get(ctx, "u1"); tok != "" {
		t.Fatalf("expected cleared slot, got %q", tok)
	}
}

func TestManager_Exchange_PersistsToken(t *testing.T) {
	store := NewMemoryStore()
	gw := &stubGateway{res: &sheet.Result{
		Success: true,
		Data:    map[string]any{"session_token": "sess_new"},
	}}
	m := NewManager(store, gw, zerolog.Nop())

	tok := m.Exchange(context.Background(), "u1", "id_tok")
	if tok != "sess_new" {
		t.Fatalf("expected sess_new, got %q", tok)
	}
	if persisted, _ := store.Get(context.Background(), "u1"); persisted != "sess_new" {
		t.Fatalf("token not persisted, got %q", persisted)
	}
}

func TestManager_Exchange_FailureKeepsOldToken(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set(context.Background(), "u1", "sess_old")

	gw := &stubGateway{err: &sheet.TransportError{Action: sheet.ActionCreateSession}}
	m := NewManager(store, gw, zerolog.Nop())

	if tok := m.Exchange(context.Background(), "u1", "id_tok"); tok != "" {
		t.Fatalf("expected empty token on failure, got %q", tok)
	}
	if persisted, _ := store.Get(context.Background(), "u1"); persisted != "sess_old" {
		t.Fatalf("failed exchange destroyed the previous token: %q", persisted)
	}
}

func TestManager_Exchange_MissingTokenKeepsOldToken(t *testing.T) {
	store := NewMemoryStore()
	_ = store.Set(context.Background(), "u1", "sess_old")

	gw := &stubGateway{res: &sheet.Result{Success: true, Data: map[string]any{}}}
	m := NewManager(store, gw, zerolog.Nop())

	if tok := m.Exchange(context.Background(), "u1", "id_tok"); tok != "" {
		t.Fatalf("expected empty token when server returns none, got %q", tok)
	}
	if persisted, _ := store.Get(context.Background(), "u1"); persisted != "sess_old" {
		t.Fatalf("previous token lost: %q", persisted)
	}
}
