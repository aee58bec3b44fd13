package sheet

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
)

// MockFallback wraps a Gateway so that a mutating Call hitting
// ErrNotConfigured resolves as a successful call after an artificial delay,
// echoing the submitted data. This is what keeps the whole application usable
// for local development when no endpoint URL is deployed; it never issues a
// network request of its own. Queries are passed through untouched: list
// loads handle ErrNotConfigured themselves by keeping their current state.
type MockFallback struct {
	next  Gateway
	delay time.Duration
	log   zerolog.Logger
}

// NewMockFallback wraps next. delay <= 0 disables the artificial pause.
func NewMockFallback(next Gateway, delay time.Duration, log zerolog.Logger) *MockFallback {
	return &MockFallback{next: next, delay: delay, log: log}
}

func (m *MockFallback) Call(ctx context.Context, action string, data map[string]any) (*Result, error) {
	res, err := m.next.Call(ctx, action, data)
	if !errors.Is(err, ErrNotConfigured) {
		return res, err
	}
	echo := make(map[string]any, len(data))
	for k, v := range data {
		echo[k] = v
	}
	return m.resolve(ctx, action, echo)
}

func (m *MockFallback) Query(ctx context.Context, action string, params map[string]string) (*Result, error) {
	return m.next.Query(ctx, action, params)
}

func (m *MockFallback) resolve(ctx context.Context, action string, data map[string]any) (*Result, error) {
	m.log.Warn().Str("action", action).Msg("endpoint not configured, resolving in mock mode")
	metrics.MockCallsTotal.WithLabelValues(action).Inc()

	if m.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, &TransportError{Action: action, Err: ctx.Err()}
		case <-time.After(m.delay):
		}
	}
	return &Result{Success: true, Data: data, Mock: true}, nil
}
