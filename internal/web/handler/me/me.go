// Package me returns the identity behind a bearer token.
package me

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
)

// Path is the current identity endpoint.
const Path = handler.APIPath + "/me"

// Service is the me handler service.
type Service struct{}

// Handler is the me handler.
var Handler = Service{}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrDepsNil
	}

	app.Get(Path, auth.RequireBearer(deps.Resolver), s.Get)

	return nil
}

// Get returns the resolved identity.
func (s *Service) Get(c *fiber.Ctx) error {
	return c.JSON(auth.IdentityFromContext(c))
}
