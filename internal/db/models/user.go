// Package models contains database model definitions.
package models

import (
	"time"

	"github.com/alexedwards/argon2id"
)

// User represents an account in the system.
// Students, alumni and admins share this table; Role tells them apart.
type User struct {
	// ID is the unique, stable identifier. It doubles as the bearer token.
	ID string `gorm:"primaryKey;size:36"`
	// Email is the unique login name.
	Email string `gorm:"uniqueIndex;size:255;not null"`
	// Name is the optional display name.
	Name *string `gorm:"size:255"`
	// Role is one of STUDENT, ALUMNI or ADMIN.
	Role Role `gorm:"type:varchar(20);not null;index"`
	// Verified is set once an admin has verified the account.
	Verified bool `gorm:"not null;default:false"`
	// Password is the Argon2id hash. Nil means password login is not possible.
	Password *string `gorm:"size:255"`
	// GraduationYear is the (expected) graduation year.
	GraduationYear *int
	// Major is the field of study.
	Major *string `gorm:"size:255"`
	// Alumni is the profile extension for ALUMNI users.
	Alumni *Alumni `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time `gorm:"index"`
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time
}

// TableName specifies the database table name for the User model.
func (User) TableName() string {
	return "users"
}

// HasPassword reports whether a password hash is stored.
func (u *User) HasPassword() bool {
	return u.Password != nil && *u.Password != ""
}

// DisplayName returns the name or an empty string.
func (u *User) DisplayName() string {
	if u.Name == nil {
		return ""
	}

	return *u.Name
}

// HashPassword hashes a plaintext password using the Argon2id algorithm
// with the default parameters. Salt is generated per call.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}
