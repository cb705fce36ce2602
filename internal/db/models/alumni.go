package models

import "time"

// Alumni is the profile extension of a user with role ALUMNI.
// Verified is independent of User.Verified and gates visibility in
// public alumni listings.
type Alumni struct {
	// ID is the unique identifier of the profile.
	ID string `gorm:"primaryKey;size:36"`
	// UserID references the owning user (one-to-one).
	UserID string `gorm:"size:36;not null;uniqueIndex"`
	// User is the owning user.
	User *User `gorm:"foreignKey:UserID;references:ID"`
	// Verified is set by an admin approving the profile.
	Verified bool `gorm:"not null;default:false;index"`
	// GraduationYear of the alumnus.
	GraduationYear *int
	// Company is the current employer.
	Company *string `gorm:"size:255"`
	// Position is the current job title.
	Position *string `gorm:"size:255"`
	// Location is a free-form location.
	Location *string `gorm:"size:255"`
	// CreatedAt is managed by GORM.
	CreatedAt time.Time
	// UpdatedAt is managed by GORM.
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Alumni model.
func (Alumni) TableName() string {
	return "alumni"
}
