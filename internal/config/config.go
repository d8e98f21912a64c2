package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all process-wide settings. It is built once in main and
// passed by reference; nothing reads the environment after startup.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DatabaseURL    string `env:"DATABASE_URL"`
	DBName         string `env:"DB_NAME" envDefault:"folio_db"`
	UseMemoryStore bool   `env:"USE_MEMORY_STORE" envDefault:"false"`
	SeedDemoUser   bool   `env:"SEED_DEMO_USER" envDefault:"false"`

	SecretKey       string `env:"SECRET_KEY" envDefault:"CHANGE_THIS_TO_A_SUPER_SECRET_KEY"`
	TokenTTLMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"10080"`
	OTPTTLMinutes   int    `env:"OTP_EXPIRY_MINUTES" envDefault:"10"`
	BcryptCost      int    `env:"BCRYPT_COST" envDefault:"10"`

	SMTPHost     string `env:"SMTP_SERVER" envDefault:"smtp.gmail.com"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPEmail    string `env:"SMTP_EMAIL"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	// Missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// Gmail app passwords are often copied with spaces in them.
	cfg.SMTPPassword = strings.ReplaceAll(cfg.SMTPPassword, " ", "")

	return &cfg, nil
}

// MailConfigured reports whether outbound email can actually be sent.
// Without credentials the mailer degrades to a log-only sink.
func (c *Config) MailConfigured() bool {
	return c.SMTPEmail != "" && c.SMTPPassword != ""
}
