// Package alumni provides the admin endpoints to review alumni profiles.
package alumni

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	alumnictl "github.com/AlumniConnect/AlumniConnect/internal/db/controller/alumni"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
)

const (
	// Path is the base path for alumni administration.
	Path = handler.APIPath + "/admin/alumni"
	// PendingPath lists unverified profiles.
	PendingPath = Path + "/pending"
	// VerifyPath approves or rejects a profile.
	VerifyPath = Path + "/verify"

	// MsgAlumniNotFound is returned for an unknown alumni id.
	MsgAlumniNotFound = "Alumni not found"
	// MsgInvalidVerifyBody is returned when alumniId or approved is missing or mistyped.
	MsgInvalidVerifyBody = "alumniId (string) and approved (boolean) are required"
)

// Service is the alumni review handler service.
type Service struct {
	db   *gorm.DB
	deps *handler.Deps
}

// Handler is the exported instance.
var Handler = Service{}

// VerifyRequest is the approve/reject body. Approved must be a JSON boolean.
type VerifyRequest struct {
	AlumniID string `json:"alumniId" validate:"required"`
	Approved *bool  `json:"approved" validate:"required"`
}

// UserRef is the user part of an alumni record.
type UserRef struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// Record is an alumni profile with its user.
type Record struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Verified       bool      `json:"verified"`
	GraduationYear *int      `json:"graduationYear"`
	Company        *string   `json:"company"`
	Position       *string   `json:"position"`
	Location       *string   `json:"location"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	User           *UserRef  `json:"user"`
}

// NewRecord converts an alumni profile.
func NewRecord(a *models.Alumni) Record {
	r := Record{
		ID:             a.ID,
		UserID:         a.UserID,
		Verified:       a.Verified,
		GraduationYear: a.GraduationYear,
		Company:        a.Company,
		Position:       a.Position,
		Location:       a.Location,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}

	if a.User != nil {
		r.User = &UserRef{ID: a.User.ID, Email: a.User.Email, Name: a.User.Name}
	}

	return r
}

// Init registers routes. Every route is behind the admin bearer guard.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrDepsNil
	}

	s.db = deps.DB
	s.deps = deps

	guard := auth.RequireAdminBearer(deps.Resolver)

	app.Get(PendingPath, guard, s.Pending)
	app.Post(VerifyPath, guard, s.Verify)

	return nil
}

// Pending lists unverified alumni profiles.
func (s *Service) Pending(c *fiber.Ctx) error {
	profiles, err := alumnictl.ListPending(c.UserContext(), s.db)
	if err != nil {
		return handler.InternalError(c, err, "failed to list pending alumni")
	}

	records := make([]Record, 0, len(profiles))
	for i := range profiles {
		records = append(records, NewRecord(&profiles[i]))
	}

	return c.JSON(records)
}

// Verify approves or rejects an alumni profile.
func (s *Service) Verify(c *fiber.Ctx) error {
	req := new(VerifyRequest)

	if err := c.BodyParser(req); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, MsgInvalidVerifyBody)
	}

	if err := s.deps.Validator.Struct(req); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, MsgInvalidVerifyBody)
	}

	updated, err := alumnictl.SetVerified(c.UserContext(), s.db, req.AlumniID, *req.Approved)
	if err != nil {
		if errors.Is(err, alumnictl.ErrAlumniNotFound) {
			return handler.Error(c, fiber.StatusNotFound, MsgAlumniNotFound)
		}

		return handler.InternalError(c, err, "failed to update alumni")
	}

	action := "rejected"
	if *req.Approved {
		action = "approved"
	}

	admin := auth.IdentityFromContext(c)
	log.Info().Str("admin_id", admin.ID).Str("alumni_id", updated.ID).Str("action", action).Msg("alumni reviewed")

	return c.JSON(fiber.Map{
		"message": "Alumni " + action,
		"alumni":  NewRecord(updated),
	})
}
