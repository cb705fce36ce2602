package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// EnvPrefix is the prefix of all secret environment variables.
const EnvPrefix = "ALUMNICONNECT_"

// Secrets are values that should not live in the TOML file.
// Non-empty values override the file.
type Secrets struct {
	SessionSecret  string `env:"SESSION_SECRET"`
	DBPassword     string `env:"DB_PASSWORD"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	AdminPassword  string `env:"ADMIN_PASSWORD"`
	DemoAdminToken string `env:"DEMO_ADMIN_TOKEN"`
}

// LoadDotEnv loads a .env file from the given paths, or ./.env if none
// is given. A missing file is not an error.
func LoadDotEnv(paths ...string) error {
	if err := godotenv.Load(paths...); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return fmt.Errorf("load .env file: %w", err)
		}
	}

	return nil
}

func applySecrets(c *Config) error {
	var s Secrets
	if err := env.ParseWithOptions(&s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse secrets from env: %w", err)
	}

	override(&c.Webserver.Session.Secret, s.SessionSecret)
	override(&c.DB.Password, s.DBPassword)
	override(&c.Webserver.Session.Redis.Password, s.RedisPassword)
	override(&c.Seed.AdminPassword, s.AdminPassword)
	override(&c.Auth.DemoAdminToken, s.DemoAdminToken)

	return nil
}

func override(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
