package config

import (
	"errors"
)

var (
	// ErrEmptyURL error if config webserver.URL is empty.
	ErrEmptyURL = errors.New("toml config webserver.url can not be empty")

	// ErrWebServerPortCanNotBeZero error if config webserver listening port is 0.
	ErrWebServerPortCanNotBeZero = errors.New("toml config webserver.port listening port can not be 0")

	// ErrUnknownGormEngine error if config db.gormEngine is not supported.
	ErrUnknownGormEngine = errors.New("toml config db.gormEngine must be one of mysql, postgres, sqlite")

	// ErrUnknownSessionEngine error if config webserver.session.engine is not supported.
	ErrUnknownSessionEngine = errors.New("toml config webserver.session.engine must be one of memory, mysql, postgres, redis")

	// ErrSessionSecretTooShort error if the session signing secret is too short outside dev mode.
	ErrSessionSecretTooShort = errors.New("session secret must be at least 32 bytes")
)
