// Package logout revokes the signed session of the caller.
package logout

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/login"
)

// Path is the logout endpoint.
const Path = login.Path + "/logout"

// Service is the logout handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the logout handler.
var Handler = Service{}

// Init initializes the logout handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrDepsNil
	}

	s.deps = deps

	// logout route (outside session protection)
	app.Post(Path, s.Logout)

	return nil
}

// Logout handles user logout by revoking the session and clearing the cookie.
func (s *Service) Logout(c *fiber.Ctx) error {
	cookieName := s.deps.Cfg.Webserver.Session.CookieName

	if token := c.Cookies(cookieName); token != "" {
		if err := s.deps.Issuer.RevokeToken(token); err != nil {
			if gateErr := auth.AsError(err); gateErr == nil || gateErr.Status >= fiber.StatusInternalServerError {
				log.Error().Err(err).Msg("failed to revoke session")
			}
		}
	}

	// Clear the session cookie
	c.Cookie(&fiber.Cookie{
		Name:     cookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   !s.deps.Cfg.DevMode,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	return c.JSON(fiber.Map{"message": "Logged out"})
}
