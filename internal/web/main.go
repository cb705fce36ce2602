// Package web wires the fiber application, its middleware and handlers.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	"github.com/AlumniConnect/AlumniConnect/internal/config"
	fiberlogger "github.com/AlumniConnect/AlumniConnect/internal/logger/adapter/fiber"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
	adminalumni "github.com/AlumniConnect/AlumniConnect/internal/web/handler/admin/alumni"
	adminuser "github.com/AlumniConnect/AlumniConnect/internal/web/handler/admin/user"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/alumni"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/login"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/logout"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/me"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/register"
)

const (
	// CheckAlivePath answers 200 while the service accepts traffic.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"
)

var (
	// ErrConfigNil is returned when no configuration is given.
	ErrConfigNil = errors.New("config cannot be nil")
	// ErrDBNil is returned when no database is given.
	ErrDBNil = errors.New("db cannot be nil")
	// ErrStorageNil is returned when no session storage is given.
	ErrStorageNil = errors.New("session storage cannot be nil")
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	storage      fiber.Storage
}

// Start starts the web service on the given address and blocks until it stops.
func (s *Service) Start(addr string) error {
	if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and shuts the service down gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	s.Shutdown()
}

// Shutdown drains and stops the http server and closes the session storage.
func (s *Service) Shutdown() {
	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	log.Info().Msg("stopping http server ...")

	if err := s.App.Shutdown(); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}

	if err := s.storage.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close session storage")
	}

	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB, storage fiber.Storage) (*Service, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	if db == nil {
		return nil, ErrDBNil
	}

	if storage == nil {
		return nil, ErrStorageNil
	}

	issuer, err := auth.NewSessionIssuer(cfg.Webserver.Session.Secret, cfg.Webserver.Session.ExpiryTime, storage)
	if err != nil {
		return nil, err
	}

	deps := &handler.Deps{
		Cfg:       cfg,
		DB:        db,
		Resolver:  auth.NewResolver(auth.NewGormLookup(db), cfg.Auth),
		Issuer:    issuer,
		Local:     auth.NewLocalProvider(db),
		Validator: handler.NewValidator(),
	}

	appName := cfg.Title
	if appName == "" {
		appName = "AlumniConnect"
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        appName,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   ErrorHandler,
		},
	)

	if !cfg.Webserver.DisableRecover {
		app.Use(recover.New(recover.Config{EnableStackTrace: cfg.DevMode}))
	}

	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: CheckAlivePath,
		UserIDLocal:   auth.LocalsUserID,
	}))

	service := &Service{
		cfg:     cfg,
		App:     app,
		storage: storage,
	}
	service.alive.Store(true)

	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	// init handlers (they register their own routes with their gates)
	handlers := []handler.Service{
		&register.Handler,
		&login.Handler,
		&logout.Handler,
		&me.Handler,
		&alumni.Handler,
		&adminalumni.Handler,
		&adminuser.Handler,
	}

	for _, h := range handlers {
		if err := h.Init(app, deps); err != nil {
			return nil, err
		}
	}

	return service, nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.Alive() {
		return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
	}

	return c.SendString("OK")
}

// ErrorHandler answers every error that reaches fiber with {"error": message}.
// Only fiber errors keep their message; anything else becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := handler.MsgInternalError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		msg = fiberErr.Message
	}

	if gateErr := auth.AsError(err); gateErr != nil {
		code = gateErr.Status
		msg = gateErr.Message
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(code).JSON(fiber.Map{"error": msg})
}
