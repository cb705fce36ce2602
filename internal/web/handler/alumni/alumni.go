// Package alumni provides the public listing of recently verified alumni.
package alumni

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	alumnictl "github.com/AlumniConnect/AlumniConnect/internal/db/controller/alumni"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
)

const (
	// Path is the base path of the public alumni endpoints.
	Path = handler.APIPath + "/alumni"
	// RecentPath lists the most recent verified alumni.
	RecentPath = Path + "/recent"

	// Fallbacks for unset profile fields.
	FallbackName     = "Unknown"
	FallbackCompany  = "Company not specified"
	FallbackPosition = "Position not specified"
	FallbackLocation = "Location not specified"
)

// Service is the alumni listing handler service.
type Service struct {
	db *gorm.DB
}

// Handler is the alumni listing handler.
var Handler = Service{}

// Profile is the public part of an alumni profile.
type Profile struct {
	ID       string `json:"id"`
	Verified bool   `json:"verified"`
	Company  string `json:"company"`
	Position string `json:"position"`
	Location string `json:"location"`
}

// Record is one entry of the recent alumni listing.
type Record struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	GraduationYear *int      `json:"graduationYear"`
	Major          *string   `json:"major"`
	CreatedAt      time.Time `json:"createdAt"`
	Alumni         Profile   `json:"alumni"`
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrDepsNil
	}

	s.db = deps.DB

	app.Get(RecentPath, s.Recent)

	return nil
}

// Recent returns up to alumnictl.RecentLimit verified alumni, newest first.
func (s *Service) Recent(c *fiber.Ctx) error {
	users, err := alumnictl.ListRecentVerified(c.UserContext(), s.db, alumnictl.RecentLimit)
	if err != nil {
		return handler.InternalError(c, err, "failed to list recent alumni")
	}

	records := make([]Record, 0, len(users))
	for i := range users {
		records = append(records, NewRecord(&users[i]))
	}

	return c.JSON(records)
}

// NewRecord converts a user with its alumni profile, applying the fallbacks.
func NewRecord(u *models.User) Record {
	r := Record{
		ID:             u.ID,
		Name:           orDefault(u.Name, FallbackName),
		Email:          u.Email,
		GraduationYear: u.GraduationYear,
		Major:          u.Major,
		CreatedAt:      u.CreatedAt,
		Alumni: Profile{
			Company:  FallbackCompany,
			Position: FallbackPosition,
			Location: FallbackLocation,
		},
	}

	if p := u.Alumni; p != nil {
		r.Alumni = Profile{
			ID:       p.ID,
			Verified: p.Verified,
			Company:  orDefault(p.Company, FallbackCompany),
			Position: orDefault(p.Position, FallbackPosition),
			Location: orDefault(p.Location, FallbackLocation),
		}

		if p.GraduationYear != nil {
			r.GraduationYear = p.GraduationYear
		}
	}

	return r
}

func orDefault(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}

	return *v
}
