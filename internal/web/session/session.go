// Package session provides the storage backends of signed sessions.
package session

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	fibersession "github.com/gofiber/fiber/v2/middleware/session"
	sessionmysql "github.com/gofiber/storage/mysql/v2"
	sessionpostgres "github.com/gofiber/storage/postgres/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/AlumniConnect/AlumniConnect/internal/config"
	"github.com/AlumniConnect/AlumniConnect/internal/db/dsn"
)

// ErrConfigNil is returned when no configuration is given.
var ErrConfigNil = errors.New("config is nil")

// New creates the session storage selected by cfg.Webserver.Session.Engine.
// The sql engines share the connection settings of the main database.
func New(cfg *config.Config) (fiber.Storage, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	sessCfg := cfg.Webserver.Session

	switch sessCfg.Engine {
	case config.SessionEngineMemory, "":
		if !cfg.DevMode {
			log.Warn().Msg("memory session storage: sessions are lost on restart and not shared between instances")
		}

		return fibersession.New().Storage, nil
	case config.SessionEngineMySQL:
		return sessionmysql.New(sessionmysql.Config{
			ConnectionURI: dsn.Create(cfg),
			Table:         sessCfg.Table,
		}), nil
	case config.SessionEnginePostgres:
		return sessionpostgres.New(sessionpostgres.Config{
			ConnectionURI: dsn.Postgres(cfg),
			Table:         sessCfg.Table,
		}), nil
	case config.SessionEngineRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     sessCfg.Redis.Addr,
			Password: sessCfg.Redis.Password,
			DB:       sessCfg.Redis.DB,
		})

		return NewRedisStorage(client, sessCfg.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnknownSessionEngine, sessCfg.Engine)
	}
}
