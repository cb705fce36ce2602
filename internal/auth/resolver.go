package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/config"
	"github.com/AlumniConnect/AlumniConnect/internal/db/controller/user"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

const (
	// BearerPrefix is the literal, case-sensitive prefix of a bearer header.
	BearerPrefix = "Bearer "

	// DemoAdminID is the id of the synthetic demo admin.
	DemoAdminID = "demo-admin"
	// DefaultDemoAdminEmail is used when no demo admin email is configured.
	DefaultDemoAdminEmail = "demo-admin@alumniconnect.local"
	// DefaultDemoAdminName is used when no demo admin name is configured.
	DefaultDemoAdminName = "Demo Admin"
)

// demoAdminCreatedAt is fixed so the demo identity never changes between requests.
var demoAdminCreatedAt = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// UserLookup finds a user by id.
// Implementations return user.ErrUserNotFound when no row matches.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// GormLookup is the UserLookup backed by the user table.
type GormLookup struct {
	db *gorm.DB
}

// NewGormLookup creates a new lookup on db.
func NewGormLookup(db *gorm.DB) *GormLookup {
	return &GormLookup{db: db}
}

// GetUserByID implements UserLookup.
func (l *GormLookup) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return user.GetByID(ctx, l.db, id)
}

// Resolver turns an authorization header into an Identity.
type Resolver struct {
	lookup    UserLookup
	demoToken string
	demo      Identity
}

// NewResolver creates a resolver. The demo admin token is only honored when
// it is configured and not disabled.
func NewResolver(lookup UserLookup, cfg config.Auth) *Resolver {
	r := &Resolver{
		lookup: lookup,
		demo: Identity{
			ID:        DemoAdminID,
			Email:     DefaultDemoAdminEmail,
			Role:      models.RoleAdmin,
			Verified:  true,
			CreatedAt: demoAdminCreatedAt,
		},
	}

	if !cfg.DisableDemoAdmin {
		r.demoToken = cfg.DemoAdminToken
	}

	if cfg.DemoAdminEmail != "" {
		r.demo.Email = cfg.DemoAdminEmail
	}

	name := DefaultDemoAdminName
	if cfg.DemoAdminName != "" {
		name = cfg.DemoAdminName
	}

	r.demo.Name = &name

	return r
}

// Resolve authenticates a bearer header.
// It never touches the store for malformed headers or the demo admin token.
// Failures are always *Error values.
func (r *Resolver) Resolve(ctx context.Context, header string) (*Identity, error) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return nil, ErrMissingAuthHeader
	}

	token := header[len(BearerPrefix):]
	if token == "" {
		return nil, ErrInvalidToken
	}

	if r.isDemoToken(token) {
		demo := r.demo
		return &demo, nil
	}

	u, err := r.lookup.GetUserByID(ctx, token)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}

		log.Error().Err(err).Msg("failed to look up bearer user")

		return nil, internalError(err)
	}

	if !u.Role.Valid() {
		log.Error().Str("user_id", u.ID).Str("role", string(u.Role)).Msg("user has an invalid role")

		return nil, internalError(fmt.Errorf("%w: %q", ErrInvalidRole, u.Role))
	}

	return NewIdentity(u), nil
}

// RequireAdmin resolves the header and admits only ADMIN identities.
// Resolver failures are returned unchanged.
func (r *Resolver) RequireAdmin(ctx context.Context, header string) (*Identity, error) {
	identity, err := r.Resolve(ctx, header)
	if err != nil {
		return nil, err
	}

	if !identity.IsAdmin() {
		return nil, ErrAdminRequired
	}

	return identity, nil
}

func (r *Resolver) isDemoToken(token string) bool {
	if r.demoToken == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(token), []byte(r.demoToken)) == 1
}
