// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Supported session storage engines.
const (
	SessionEngineMemory   = "memory"
	SessionEngineMySQL    = "mysql"
	SessionEnginePostgres = "postgres"
	SessionEngineRedis    = "redis"
)

const (
	// EnvConfigJSON holds a JSON document merged over the TOML config.
	EnvConfigJSON = "ALUMNICONNECT_CONFIG_JSON"

	// DefaultDemoAdminToken is the reserved bearer token of the demo admin.
	DefaultDemoAdminToken = "alumniconnect-universal-admin"

	defaultShutDownTime  = 5
	defaultSessionExpiry = 24 * time.Hour
	defaultCookieName    = "session"
	defaultSessionTable  = "sessions"
	minSecretLen         = 32

	// devSessionSecret is only used in dev mode when no secret is configured.
	devSessionSecret = "dev-mode-session-secret-do-not-use-in-prod"

	maskedValue = "********"
)

// ReadConfig from config file. devMode forces DevMode on before the
// config is validated.
func ReadConfig(path string, devMode bool) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv(EnvConfigJSON)

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	if devMode {
		c.DevMode = true
	}

	if err = applySecrets(&c); err != nil {
		return c, err
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String. Secrets are masked.
func DumpConfig(c *Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(masked(c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// DumpConfigJSON config as JSON String. Secrets are masked.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(masked(c)); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

func masked(c *Config) Config {
	out := *c

	for _, s := range []*string{
		&out.DB.Password,
		&out.Webserver.Session.Secret,
		&out.Webserver.Session.Redis.Password,
		&out.Seed.AdminPassword,
		&out.Auth.DemoAdminToken,
	} {
		if *s != "" {
			*s = maskedValue
		}
	}

	return out
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	switch c.DB.GormEngine {
	case "":
		c.DB.GormEngine = EngineMySQL
	case EngineMySQL, EnginePostgres, EngineSQLite:
	default:
		return errors.Wrap(ErrUnknownGormEngine, invalidErrMessage)
	}

	if err := validateSession(c); err != nil {
		return errors.Wrap(err, invalidErrMessage)
	}

	if c.Auth.DemoAdminToken == "" {
		c.Auth.DemoAdminToken = DefaultDemoAdminToken
	}

	return nil
}

func validateSession(c *Config) error {
	s := &c.Webserver.Session

	if s.ExpiryTime <= 0 {
		s.ExpiryTime = defaultSessionExpiry
	}

	if s.CookieName == "" {
		s.CookieName = defaultCookieName
	}

	if s.Table == "" {
		s.Table = defaultSessionTable
	}

	switch s.Engine {
	case "":
		s.Engine = SessionEngineMemory
	case SessionEngineMemory, SessionEngineMySQL, SessionEnginePostgres, SessionEngineRedis:
	default:
		return ErrUnknownSessionEngine
	}

	if s.Secret == "" && c.DevMode {
		s.Secret = devSessionSecret
	}

	if len(s.Secret) < minSecretLen {
		return ErrSessionSecretTooShort
	}

	return nil
}
