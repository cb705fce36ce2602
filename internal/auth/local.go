package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/db/controller/user"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

// dummyPassword is hashed once and compared against on failed lookups so
// every failed login costs one Argon2id comparison.
const dummyPassword = "alumniconnect-login-dummy-password"

var dummyHash = sync.OnceValue(func() string {
	h, err := models.HashPassword(dummyPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to create dummy password hash")
	}

	return h
})

// LocalProvider handles email/password authentication against the user table.
type LocalProvider struct {
	db      *gorm.DB
	compare func(password, hash string) (bool, error)
}

// NewLocalProvider creates a new local authentication provider.
func NewLocalProvider(db *gorm.DB) *LocalProvider {
	return &LocalProvider{
		db:      db,
		compare: argon2id.ComparePasswordAndHash,
	}
}

// Authenticate returns the user matching email and password, or nil.
// An unknown email, a user without a password and a wrong password all
// look the same to the caller, in result and in cost.
// Lookup failures are logged and also yield nil.
func (p *LocalProvider) Authenticate(ctx context.Context, email, password string) *models.User {
	u, err := user.GetByEmail(ctx, p.db, email)
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) && !errors.Is(err, user.ErrEmailEmpty) {
			log.Error().Err(err).Msg("failed to look up user for login")
		}

		p.compareDummy(password)

		return nil
	}

	if !u.HasPassword() {
		p.compareDummy(password)
		return nil
	}

	match, err := p.compare(password, *u.Password)
	if err != nil {
		log.Error().Err(err).Str("user_id", u.ID).Msg("failed to verify password")
		return nil
	}

	if !match {
		return nil
	}

	if !u.Role.Valid() {
		log.Error().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("user has an invalid role")
		return nil
	}

	return u
}

func (p *LocalProvider) compareDummy(password string) {
	_, _ = p.compare(password, dummyHash())
}

// Registration holds the data of a self registration.
type Registration struct {
	Email          string
	Password       string
	Name           *string
	Role           models.Role
	GraduationYear *int
	Major          *string
	Company        *string
	Position       *string
	Location       *string
}

// Register creates a STUDENT or ALUMNI account. ALUMNI accounts get an
// unverified alumni profile in the same transaction.
func (p *LocalProvider) Register(ctx context.Context, reg Registration) (*models.User, error) {
	switch reg.Role {
	case models.RoleStudent, models.RoleAlumni:
	case models.RoleAdmin:
		return nil, ErrRoleNotAllowed
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, reg.Role)
	}

	hash, err := models.HashPassword(reg.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:             uuid.NewString(),
		Email:          reg.Email,
		Name:           reg.Name,
		Role:           reg.Role,
		Password:       &hash,
		GraduationYear: reg.GraduationYear,
		Major:          reg.Major,
	}

	var profile *models.Alumni
	if reg.Role == models.RoleAlumni {
		profile = &models.Alumni{
			ID:             uuid.NewString(),
			GraduationYear: reg.GraduationYear,
			Company:        reg.Company,
			Position:       reg.Position,
			Location:       reg.Location,
		}
	}

	if err := user.Create(ctx, p.db, u, profile); err != nil {
		return nil, err
	}

	return u, nil
}
