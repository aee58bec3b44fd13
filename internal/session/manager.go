package session

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/api/metrics"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// Manager exchanges platform identity tokens for sheet sessions and persists
// the result. It is the only writer of the session slot.
type Manager struct {
	store   Store
	gateway sheet.Gateway
	log     zerolog.Logger
}

func NewManager(store Store, gateway sheet.Gateway, log zerolog.Logger) *Manager {
	return &Manager{store: store, gateway: gateway, log: log}
}

// Get reads the persisted token for userID, "" when none.
func (m *Manager) Get(ctx context.Context, userID string) (string, error) {
	return m.store.Get(ctx, userID)
}

// Exchange trades a platform identity token for a session token and persists
// it. On any failure it returns "" and leaves the previously persisted token
// untouched: a failed re-exchange must never destroy a still-valid session.
func (m *Manager) Exchange(ctx context.Context, userID, identityToken string) string {
	res, err := m.gateway.Call(ctx, sheet.ActionCreateSession, map[string]any{
		"id_token": identityToken,
	})
	if err != nil {
		m.log.Warn().Err(err).Str("user_id", userID).Msg("session exchange failed")
		return ""
	}

	token, _ := res.Data["session_token"].(string)
	if token == "" {
		m.log.Warn().Str("user_id", userID).Msg("session exchange returned no token")
		return ""
	}

	if err := m.store.Set(ctx, userID, token); err != nil {
		m.log.Error().Err(err).Str("user_id", userID).Msg("failed to persist session token")
		return ""
	}

	metrics.SessionsCreatedTotal.Inc()
	m.log.Info().Str("user_id", userID).Msg("session created")
	return token
}
