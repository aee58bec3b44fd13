// Package identity resolves who the user is at login time. It restores a
// cached upstream session when one is still valid, otherwise runs the
// platform login flow, and falls back to a demo identity so that a missing
// deployment configuration never blocks the UI.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/session"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// State is the terminal outcome of a bootstrap run. Ready and Retired are
// stable for the lifetime of the issued session; there is no re-entry.
type State int

const (
	StateInit State = iota
	StateReady
	StateRetired
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateRetired:
		return "retired"
	default:
		return "init"
	}
}

// ErrSessionInvalid marks a cached session that the endpoint no longer
// accepts. It is always recovered by falling through to platform login and
// never surfaces to the user.
var ErrSessionInvalid = errors.New("identity: cached session invalid")

// Demo identity used when no platform channel is configured.
const (
	demoUserID   = "demo_user"
	demoUserName = "テストユーザー"
)

// Profile is the resolved identity, immutable until the next login.
type Profile struct {
	UserID string
	Name   string
	Role   string
	State  State
}

// Retired reports whether the account is flagged retired; a retired profile
// must not reach any business operation.
func (p *Profile) Retired() bool { return p.State == StateRetired }

// LoginInput carries what the in-app browser obtained from the platform SDK.
type LoginInput struct {
	IDToken     string
	UserID      string
	DisplayName string
}

// Bootstrapper runs the Init → (SessionRestoreAttempt | PlatformLogin) →
// Ready | Retired state machine.
type Bootstrapper struct {
	gateway    sheet.Gateway
	sessions   *session.Manager
	verifier   Verifier // nil when no platform channel is configured
	configured bool     // whether the sheet endpoint is reachable at all
	log        zerolog.Logger
}

func NewBootstrapper(gateway sheet.Gateway, sessions *session.Manager, verifier Verifier, configured bool, log zerolog.Logger) *Bootstrapper {
	return &Bootstrapper{
		gateway:    gateway,
		sessions:   sessions,
		verifier:   verifier,
		configured: configured,
		log:        log,
	}
}

// Bootstrap resolves the user's profile. It never returns an error for the
// routine degradations (missing configuration, stale session, unreachable
// verifier); those all resolve to a usable profile.
func (b *Bootstrapper) Bootstrap(ctx context.Context, in LoginInput) *Profile {
	if p := b.restore(ctx, in.UserID); p != nil {
		return p
	}

	if b.verifier == nil {
		b.log.Info().Msg("no platform channel configured, using demo identity")
		return &Profile{UserID: demoUserID, Name: demoUserName, State: StateReady}
	}

	pid, err := b.verifier.Verify(ctx, in.IDToken)
	if err != nil {
		b.log.Warn().Err(err).Msg("identity token verification failed, using demo identity")
		return &Profile{UserID: demoUserID, Name: demoUserName, State: StateReady}
	}

	if !b.configured {
		return &Profile{UserID: pid.UserID, Name: pid.DisplayName, State: StateReady}
	}

	token := b.sessions.Exchange(ctx, pid.UserID, in.IDToken)
	ctx = sheet.WithToken(ctx, token)

	res, err := b.gateway.Call(ctx, sheet.ActionRegisterUser, map[string]any{
		"lineUserId":  pid.UserID,
		"displayName": pid.DisplayName,
	})
	if err != nil {
		b.log.Warn().Err(err).Str("user_id", pid.UserID).Msg("user registration failed, using demo identity")
		return &Profile{UserID: demoUserID, Name: demoUserName, State: StateReady}
	}

	if truthy(res.Data["is_deleted"]) {
		// Keep the platform-supplied name: a retired account has no server
		// role and the server name is not trusted past retirement.
		b.log.Info().Str("user_id", pid.UserID).Msg("account is retired")
		return &Profile{UserID: pid.UserID, Name: pid.DisplayName, State: StateRetired}
	}

	name := pid.DisplayName
	if server, ok := res.Data["name"].(string); ok && server != "" {
		name = server
	}
	role := stringOf(res.Data["role"])

	b.log.Info().Str("user_id", pid.UserID).Str("role", role).Msg("user registered")
	return &Profile{UserID: pid.UserID, Name: name, Role: role, State: StateReady}
}

// restore attempts to reuse a persisted session token. Any failure falls
// through to platform login; an invalid cached session must never block a
// fresh login.
func (b *Bootstrapper) restore(ctx context.Context, userID string) *Profile {
	if userID == "" || !b.configured {
		return nil
	}
	token, err := b.sessions.Get(ctx, userID)
	if err != nil || token == "" {
		return nil
	}

	ctx = sheet.WithToken(ctx, token)
	res, err := b.gateway.Query(ctx, sheet.ActionGetUserInfo, nil)
	if err != nil || res.Data == nil {
		b.log.Debug().Err(errors.Join(ErrSessionInvalid, err)).Str("user_id", userID).
			Msg("session restore failed, falling through to platform login")
		return nil
	}

	state := StateReady
	if truthy(res.Data["is_deleted"]) {
		state = StateRetired
	}
	return &Profile{
		UserID: stringOf(res.Data["id"]),
		Name:   stringOf(res.Data["name"]),
		Role:   stringOf(res.Data["role"]),
		State:  state,
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "1"
	case float64:
		return t != 0
	default:
		return false
	}
}

func stringOf(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
