package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// AdminPasscodeHash is the bcrypt hash of the passcode that elevates a
	// logged-in user to the admin role. Empty disables elevation.
	AdminPasscodeHash string `env:"ADMIN_PASSCODE_HASH"`

	Sheet SheetConfig
	Line  LineConfig
	Redis RedisConfig
	Mongo MongoConfig
}

// SheetConfig points at the remote spreadsheet action endpoint. An empty URL
// puts the whole service into demo mode: every mutating call resolves
// successfully after MockDelay without touching the network.
type SheetConfig struct {
	URL       string        `env:"SHEET_URL"`
	MockDelay time.Duration `env:"SHEET_MOCK_DELAY, default=800ms"`
}

// LineConfig identifies the messaging-platform application. An empty
// ChannelID skips identity verification and yields the demo identity.
type LineConfig struct {
	ChannelID string `env:"LINE_CHANNEL_ID"`
	VerifyURL string `env:"LINE_VERIFY_URL, default=https://api.line.me/oauth2/v2.1/verify"`
}

// RedisConfig configures the durable session slot store. An empty Addr falls
// back to the in-memory store (demo mode, tests).
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// MongoConfig configures the submission journal. An empty URI disables it.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=siteops"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
