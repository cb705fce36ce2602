package daemon

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/config"
	"github.com/AlumniConnect/AlumniConnect/internal/db/controller/user"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

// ErrSeedPasswordEmpty is returned when seeding is enabled without an admin password.
var ErrSeedPasswordEmpty = errors.New("seed admin password is empty")

// seed creates the bootstrap admin if the user table is empty.
func seed(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	count, err := user.Count(ctx, db)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	if cfg.Seed.AdminPassword == "" {
		return ErrSeedPasswordEmpty
	}

	hash, err := models.HashPassword(cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:       uuid.NewString(),
		Email:    cfg.Seed.AdminEmail,
		Role:     models.RoleAdmin,
		Verified: true,
		Password: &hash,
	}

	if cfg.Seed.AdminName != "" {
		admin.Name = &cfg.Seed.AdminName
	}

	if err = user.Create(ctx, db, admin, nil); err != nil {
		return err
	}

	log.Warn().Str("email", admin.Email).Str("user_id", admin.ID).
		Msg("created bootstrap admin, change its password")

	return nil
}
