package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	"github.com/AlumniConnect/AlumniConnect/internal/config"
)

// ErrDepsNil is returned by Init when app or deps are missing.
var ErrDepsNil = errors.New(ErrNilACDFatalLogMsg)

// Deps bundles everything the handlers share. It is built once per process.
type Deps struct {
	Cfg       *config.Config
	DB        *gorm.DB
	Resolver  *auth.Resolver
	Issuer    *auth.SessionIssuer
	Local     *auth.LocalProvider
	Validator *validator.Validate
}

// Valid reports whether all dependencies are set.
func (d *Deps) Valid() bool {
	return d != nil && d.Cfg != nil && d.DB != nil && d.Resolver != nil &&
		d.Issuer != nil && d.Local != nil && d.Validator != nil
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, deps *Deps) error
}
