package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
	"github.com/lapin-reform/siteops/internal/identity"
)

// AuthService turns platform logins into signed local sessions.
type AuthService struct {
	boot              *identity.Bootstrapper
	jwtSecret         string
	tokenTTL          time.Duration
	adminPasscodeHash string
}

func NewAuthService(boot *identity.Bootstrapper, jwtSecret, adminPasscodeHash string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		boot:              boot,
		jwtSecret:         jwtSecret,
		tokenTTL:          tokenTTL,
		adminPasscodeHash: adminPasscodeHash,
	}
}

// Login runs the identity bootstrap and issues a session token for the
// resolved profile. Retired accounts still receive a token: the client needs
// it to render the locked-out screen, and middleware blocks everything else.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	profile := s.boot.Bootstrap(ctx, identity.LoginInput{
		IDToken:     in.IDToken,
		UserID:      in.UserID,
		DisplayName: in.DisplayName,
	})

	actor := ports.Actor{
		UserID:  profile.UserID,
		Name:    profile.Name,
		Role:    profile.Role,
		Retired: profile.Retired(),
	}

	token, err := s.generateToken(actor)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, Actor: actor}, nil
}

// Elevate re-issues the session with the admin role after checking the
// deployment passcode. Elevation is disabled when no passcode hash is
// configured.
func (s *AuthService) Elevate(ctx context.Context, actor ports.Actor, passcode string) (*ports.LoginResult, error) {
	if actor.Retired {
		return nil, domain.ErrRetiredAccount
	}
	if s.adminPasscodeHash == "" {
		return nil, domain.ErrInvalidPasscode
	}
	if bcrypt.CompareHashAndPassword([]byte(s.adminPasscodeHash), []byte(passcode)) != nil {
		return nil, domain.ErrInvalidPasscode
	}

	actor.Role = domain.RoleAdmin
	token, err := s.generateToken(actor)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, Actor: actor}, nil
}

func (s *AuthService) generateToken(actor ports.Actor) (string, error) {
	claims := jwt.MapClaims{
		"sub":     actor.UserID,
		"name":    actor.Name,
		"role":    actor.Role,
		"retired": actor.Retired,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
