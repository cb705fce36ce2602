// Package alumni provides database operations for alumni profiles.
package alumni

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

// RecentLimit is the maximum number of records returned by ListRecentVerified.
const RecentLimit = 8

var (
	// ErrAlumniNotFound is returned when an alumni profile is not found.
	ErrAlumniNotFound = errors.New("alumni not found")
	// ErrIDEmpty is returned when an empty id is given.
	ErrIDEmpty = errors.New("alumni id cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetByID retrieves an alumni profile with its user.
func GetByID(ctx context.Context, db *gorm.DB, id string) (*models.Alumni, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrIDEmpty
	}

	var profile models.Alumni

	result := db.WithContext(ctx).Preload("User").Where("id = ?", id).Take(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAlumniNotFound
		}

		return nil, result.Error
	}

	return &profile, nil
}

// ListPending returns all unverified alumni profiles, newest first.
func ListPending(ctx context.Context, db *gorm.DB) ([]models.Alumni, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	profiles := make([]models.Alumni, 0)

	err := db.WithContext(ctx).
		Preload("User").
		Where("verified = ?", false).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query pending alumni: %w", err)
	}

	return profiles, nil
}

// ListRecentVerified returns alumni users whose profile is verified,
// newest user first, capped at limit (RecentLimit when limit is out of range).
func ListRecentVerified(ctx context.Context, db *gorm.DB, limit int) ([]models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if limit < 1 || limit > RecentLimit {
		limit = RecentLimit
	}

	users := make([]models.User, 0, limit)

	err := db.WithContext(ctx).
		Preload("Alumni").
		Joins("JOIN alumni ON alumni.user_id = users.id").
		Where("users.role = ? AND alumni.verified = ?", models.RoleAlumni, true).
		Order("users.created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query recent alumni: %w", err)
	}

	return users, nil
}

// SetVerified sets the verified flag of a profile in a single update keyed
// by id and returns the updated profile with its user.
// Concurrent calls for the same id are last-write-wins.
func SetVerified(ctx context.Context, db *gorm.DB, id string, verified bool) (*models.Alumni, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrIDEmpty
	}

	result := db.WithContext(ctx).
		Model(&models.Alumni{}).
		Where("id = ?", id).
		Update("verified", verified)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update alumni: %w", result.Error)
	}

	// RowsAffected can be 0 for an unchanged row on some drivers;
	// the reload below tells a missing row apart.
	return GetByID(ctx, db, id)
}
