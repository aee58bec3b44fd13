package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	mongoinfra "github.com/lapin-reform/siteops/internal/infrastructure/db/mongo"
	"github.com/lapin-reform/siteops/internal/infrastructure/queue"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// stubGateway scripts per-action responses and records what was sent.
type stubGateway struct {
	mu           sync.Mutex
	callResults  map[string]*sheet.Result
	callErrs     map[string]error
	queryResults map[string]*sheet.Result
	queryErrs    map[string]error
	callPayloads map[string][]map[string]any
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		callResults:  make(map[string]*sheet.Result),
		callErrs:     make(map[string]error),
		queryResults: make(map[string]*sheet.Result),
		queryErrs:    make(map[string]error),
		callPayloads: make(map[string][]map[string]any),
	}
}

func (g *stubGateway) Call(_ context.Context, action string, data map[string]any) (*sheet.Result, error) {
	g.mu.Lock()
	g.callPayloads[action] = append(g.callPayloads[action], data)
	res, err := g.callResults[action], g.callErrs[action]
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if res != nil {
		return res, nil
	}
	return &sheet.Result{Success: true, Data: map[string]any{}}, nil
}

func (g *stubGateway) Query(_ context.Context, action string, _ map[string]string) (*sheet.Result, error) {
	g.mu.Lock()
	res, err := g.queryResults[action], g.queryErrs[action]
	g.mu.Unlock()
	if err != nil {
		return nil, err
	}
	if res != nil {
		return res, nil
	}
	return &sheet.Result{Success: true, Data: map[string]any{}}, nil
}

func (g *stubGateway) lastPayload(action string) map[string]any {
	g.mu.Lock()
	defer g.mu.Unlock()
	payloads := g.callPayloads[action]
	if len(payloads) == 0 {
		return nil
	}
	return payloads[len(payloads)-1]
}

func testDispatcher() *queue.JournalDispatcher {
	return queue.NewJournalDispatcher(1, mongoinfra.DiscardJournal{}, zerolog.Nop())
}
