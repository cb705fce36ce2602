// Package register provides the self registration of students and alumni.
package register

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	"github.com/AlumniConnect/AlumniConnect/internal/db/controller/user"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/login"
)

const (
	// Path is the registration endpoint.
	Path = login.Path + "/register"

	// MsgEmailExists is returned for a taken email.
	MsgEmailExists = "User with this email already exists"
)

// Service is the registration handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the registration handler.
var Handler = Service{}

// Request is the registration body. ADMIN cannot be self assigned.
type Request struct {
	Email          string  `json:"email" validate:"required,email,max=255"`
	Password       string  `json:"password" validate:"required,min=8,max=128"`
	Name           *string `json:"name" validate:"omitempty,max=255"`
	Role           string  `json:"role" validate:"required,oneof=STUDENT ALUMNI"`
	GraduationYear *int    `json:"graduationYear" validate:"omitempty,min=1900,max=2100"`
	Major          *string `json:"major" validate:"omitempty,max=255"`
	Company        *string `json:"company" validate:"omitempty,max=255"`
	Position       *string `json:"position" validate:"omitempty,max=255"`
	Location       *string `json:"location" validate:"omitempty,max=255"`
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrDepsNil
	}

	s.deps = deps

	app.Post(Path, s.Post)

	return nil
}

// Post creates the account and returns its identity.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.deps.Validator.Struct(req); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ValidationMessage(err))
	}

	role, err := models.ParseRole(req.Role)
	if err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ValidationMessage(err))
	}

	created, err := s.deps.Local.Register(c.UserContext(), auth.Registration{
		Email:          req.Email,
		Password:       req.Password,
		Name:           req.Name,
		Role:           role,
		GraduationYear: req.GraduationYear,
		Major:          req.Major,
		Company:        req.Company,
		Position:       req.Position,
		Location:       req.Location,
	})

	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return handler.Error(c, fiber.StatusConflict, MsgEmailExists)
	case errors.Is(err, auth.ErrRoleNotAllowed), errors.Is(err, auth.ErrInvalidRole):
		return handler.Error(c, fiber.StatusBadRequest, "Invalid role")
	case err != nil:
		return handler.InternalError(c, err, "failed to register user")
	}

	log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	return c.Status(fiber.StatusCreated).JSON(auth.NewIdentity(created))
}
