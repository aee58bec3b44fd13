package sheet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestMockFallback_CallResolvesWhenUnconfigured(t *testing.T) {
	inner := NewClient("", nil, zerolog.Nop())
	mock := NewMockFallback(inner, 10*time.Millisecond, zerolog.Nop())

	start := time.Now()
	res, err := mock.Call(context.Background(), ActionCreateExpense, map[string]any{
		"amount":   5000,
		"category": "材料費",
	})
	if err != nil {
		t.Fatalf("mock call failed: %v", err)
	}
	if !res.Success || !res.Mock {
		t.Fatalf("expected successful mock result, got %+v", res)
	}
	if res.Data["amount"] != 5000 || res.Data["category"] != "材料費" {
		t.Fatalf("submitted data not echoed: %+v", res.Data)
	}
	if time.Since(start) < 10*time.Millisecond {
		t.Fatalf("artificial delay not applied")
	}
}

func TestMockFallback_QueryPassesThrough(t *testing.T) {
	inner := NewClient("", nil, zerolog.Nop())
	mock := NewMockFallback(inner, 0, zerolog.Nop())

	// Reads stay unconfigured so list state keeps whatever it holds.
	if _, err := mock.Query(context.Background(), ActionGetExpenses, nil); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured passthrough, got %v", err)
	}
}

func TestMockFallback_CallDelegatesWhenConfigured(t *testing.T) {
	// A gateway that answers is never intercepted.
	inner := &staticGateway{res: &Result{Success: true, Data: map[string]any{"id": "srv_1"}}}
	mock := NewMockFallback(inner, time.Hour, zerolog.Nop())

	res, err := mock.Call(context.Background(), ActionCreateExpense, nil)
	if err != nil {
		t.Fatalf("call failed: %v", err)
	}
	if res.Mock || res.Data["id"] != "srv_1" {
		t.Fatalf("expected delegated result, got %+v", res)
	}
}

func TestMockFallback_CancelledDuringDelay(t *testing.T) {
	inner := NewClient("", nil, zerolog.Nop())
	mock := NewMockFallback(inner, time.Minute, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mock.Call(ctx, ActionCreateExpense, nil)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError on cancellation, got %v", err)
	}
}

type staticGateway struct {
	res *Result
	err error
}

func (g *staticGateway) Call(context.Context, string, map[string]any) (*Result, error) {
	return g.res, g.err
}

func (g *staticGateway) Query(context.Context, string, map[string]string) (*Result, error) {
	return g.res, g.err
}
