// Package dbtest provides an in-memory database and fixtures for tests.
package dbtest

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/AlumniConnect/AlumniConnect/internal/db/database"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

// New creates a migrated in-memory SQLite database.
// The pool is limited to one connection so every query sees the same database.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err, "failed to create test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db), "failed to migrate test database")

	return db
}

// UserOption customizes a fixture user.
type UserOption func(*models.User)

// WithPassword stores the Argon2id hash of password.
func WithPassword(password string) UserOption {
	return func(u *models.User) {
		hash, err := models.HashPassword(password)
		if err != nil {
			panic(err)
		}

		u.Password = &hash
	}
}

// WithName sets the display name.
func WithName(name string) UserOption {
	return func(u *models.User) { u.Name = &name }
}

// WithCreatedAt sets the creation time.
func WithCreatedAt(ts time.Time) UserOption {
	return func(u *models.User) { u.CreatedAt = ts }
}

// WithVerified sets the user verified flag.
func WithVerified(v bool) UserOption {
	return func(u *models.User) { u.Verified = v }
}

// WithMajor sets major and graduation year.
func WithMajor(major string, year int) UserOption {
	return func(u *models.User) {
		u.Major = &major
		u.GraduationYear = &year
	}
}

// CreateUser inserts a user with a random id.
func CreateUser(t *testing.T, db *gorm.DB, email string, role models.Role, opts ...UserOption) *models.User {
	t.Helper()

	u := &models.User{
		ID:    uuid.NewString(),
		Email: email,
		Role:  role,
	}

	for _, opt := range opts {
		opt(u)
	}

	require.NoError(t, db.Omit("Alumni").Create(u).Error, "failed to seed user")

	return u
}

// CreateAlumni inserts an alumni profile for user.
func CreateAlumni(t *testing.T, db *gorm.DB, user *models.User, verified bool) *models.Alumni {
	t.Helper()

	a := &models.Alumni{
		ID:       uuid.NewString(),
		UserID:   user.ID,
		Verified: verified,
	}

	require.NoError(t, db.Omit("User").Create(a).Error, "failed to seed alumni")

	// gorm skips zero values with a default tag on insert
	require.NoError(t, db.Model(a).Update("verified", verified).Error)

	return a
}
