// Package user provides the admin listing of user accounts.
package user

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	userctl "github.com/AlumniConnect/AlumniConnect/internal/db/controller/user"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
)

const (
	// Path is the base path for user management.
	Path = handler.APIPath + "/admin/users"

	// DefaultPageSize for pagination.
	DefaultPageSize = userctl.DefaultPageSize
)

// Service lists users for admins.
type Service struct {
	db *gorm.DB
}

// Handler is the exported instance.
var Handler = Service{}

// Record is a user as seen by an admin. The password is never included.
type Record struct {
	ID             string      `json:"id"`
	Email          string      `json:"email"`
	Name           *string     `json:"name"`
	Role           models.Role `json:"role"`
	Verified       bool        `json:"verified"`
	GraduationYear *int        `json:"graduationYear"`
	Major          *string     `json:"major"`
	HasPassword    bool        `json:"hasPassword"`
	CreatedAt      time.Time   `json:"createdAt"`
}

// ListResponse is a page of users.
type ListResponse struct {
	Users      []Record `json:"users"`
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"pageSize"`
	TotalPages int      `json:"totalPages"`
}

// Init registers routes.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrDepsNil
	}

	s.db = deps.DB

	// Routes
	app.Get(Path,
		auth.RequireAdminBearer(deps.Resolver),
		s.List,
	)

	return nil
}

// List shows users with simple pagination and search.
func (s *Service) List(c *fiber.Ctx) error {
	opts := userctl.ListOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", DefaultPageSize),
		Search:   c.Query("search", ""),
	}

	if role := c.Query("role", ""); role != "" {
		parsed, err := models.ParseRole(role)
		if err != nil {
			return handler.Error(c, fiber.StatusBadRequest, "Invalid role")
		}

		opts.Role = parsed
	}

	res, err := userctl.List(c.UserContext(), s.db, opts)
	if err != nil {
		return handler.InternalError(c, err, "failed to list users")
	}

	records := make([]Record, 0, len(res.Users))
	for i := range res.Users {
		u := &res.Users[i]
		records = append(records, Record{
			ID:             u.ID,
			Email:          u.Email,
			Name:           u.Name,
			Role:           u.Role,
			Verified:       u.Verified,
			GraduationYear: u.GraduationYear,
			Major:          u.Major,
			HasPassword:    u.HasPassword(),
			CreatedAt:      u.CreatedAt,
		})
	}

	return c.JSON(ListResponse{
		Users:      records,
		Total:      res.Total,
		Page:       res.Page,
		PageSize:   res.PageSize,
		TotalPages: res.TotalPages,
	})
}
