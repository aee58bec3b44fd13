package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 15 * time.Second

// SubmitGuard suppresses accidental duplicate submissions (double taps on a
// slow connection) by fingerprinting recent submits per user.
// Key format: submit:<user_id>:<kind>:<payload_hash>
type SubmitGuard struct {
	client *redis.Client
}

func NewSubmitGuard(client *redis.Client) *SubmitGuard {
	return &SubmitGuard{client: client}
}

// Seen reports whether an identical submission was accepted within the
// guard window.
func (g *SubmitGuard) Seen(ctx context.Context, userID, kind string, payload []byte) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(userID, kind, payload)).Result()
	if err != nil {
		return false, fmt.Errorf("submit guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records an accepted submission (expires after guardTTL).
func (g *SubmitGuard) Mark(ctx context.Context, userID, kind string, payload []byte) error {
	return g.client.Set(ctx, g.key(userID, kind, payload), "1", guardTTL).Err()
}

func (g *SubmitGuard) key(userID, kind string, payload []byte) string {
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("submit:%s:%s:%s", userID, kind, hex.EncodeToString(sum[:8]))
}
