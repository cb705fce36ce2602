// Package daemon wires configuration, database, session storage and web service.
package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/AlumniConnect/AlumniConnect/internal/config"
	"github.com/AlumniConnect/AlumniConnect/internal/db/database"
	"github.com/AlumniConnect/AlumniConnect/internal/web"
	"github.com/AlumniConnect/AlumniConnect/internal/web/session"
)

// ErrConfigNil is returned when New is called without a config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	webService *web.Service
}

// Start starts the web service and blocks until it is shut down by a signal.
func (d *Daemon) Start() error {
	addr := fmt.Sprintf(":%d", d.cfg.Webserver.Port)

	go d.webService.WaitShutdown()

	log.Info().Str("addr", addr).Msg("starting web service")

	return d.webService.Start(addr)
}

// New creates a new Daemon instance with the provided configuration.
// It opens and migrates the database, seeds the bootstrap admin and
// creates the session storage.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}

	if err = seed(ctx, cfg, db); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	// Initialize fiber session storage
	storage, err := session.New(cfg)
	if err != nil {
		return nil, err
	}

	webService, err := web.New(cfg, db, storage)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		webService: webService,
	}, nil
}
