// Package user provides database operations for user accounts.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

const (
	emailQueryPattern = "email = ?"

	// DefaultPageSize for List.
	DefaultPageSize = 25
	// MaxPageSize caps List page sizes.
	MaxPageSize = 100
	// MaxPage caps List page numbers so the row offset cannot overflow.
	MaxPage = 1_000_000
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrIDEmpty is returned when an empty id is given.
	ErrIDEmpty = errors.New("user id cannot be empty")
	// ErrEmailEmpty is returned when an empty email is given.
	ErrEmailEmpty = errors.New("user email cannot be empty")
	// ErrEmailAlreadyExists is returned when creating a user with a taken email.
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetByID retrieves a user by id.
func GetByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if id == "" {
		return nil, ErrIDEmpty
	}

	var user models.User

	result := db.WithContext(ctx).Where("id = ?", id).Take(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

// GetByEmail retrieves a user by email. The email is normalized first.
func GetByEmail(ctx context.Context, db *gorm.DB, email string) (*models.User, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailEmpty
	}

	var user models.User

	result := db.WithContext(ctx).Where(emailQueryPattern, email).Take(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}

		return nil, result.Error
	}

	return &user, nil
}

// Count returns the number of users.
func Count(ctx context.Context, db *gorm.DB) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// Create stores a new user. When profile is not nil it is stored in the
// same transaction and linked to the user.
func Create(ctx context.Context, db *gorm.DB, user *models.User, profile *models.Alumni) error {
	if db == nil {
		return ErrDBNil
	}

	user.Email = NormalizeEmail(user.Email)
	if user.Email == "" {
		return ErrEmailEmpty
	}

	if user.ID == "" {
		return ErrIDEmpty
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Where(emailQueryPattern, user.Email).Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check existing user: %w", err)
		}

		if existing > 0 {
			return ErrEmailAlreadyExists
		}

		if err := tx.Omit("Alumni").Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		if profile == nil {
			return nil
		}

		profile.UserID = user.ID
		if err := tx.Omit("User").Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create alumni profile: %w", err)
		}

		user.Alumni = profile

		return nil
	})
}

// ListOptions filter and paginate List.
type ListOptions struct {
	Page     int
	PageSize int
	Search   string      // matched against email and name
	Role     models.Role // empty means all roles
}

// ListResult is a page of users.
type ListResult struct {
	Users      []models.User
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

func (o *ListOptions) normalize() {
	if o.Page < 1 {
		o.Page = 1
	}

	if o.Page > MaxPage {
		o.Page = MaxPage
	}

	if o.PageSize < 1 || o.PageSize > MaxPageSize {
		o.PageSize = DefaultPageSize
	}

	o.Search = strings.TrimSpace(o.Search)
}

// List returns users newest first.
func List(ctx context.Context, db *gorm.DB, opts ListOptions) (*ListResult, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	opts.normalize()

	tx := db.WithContext(ctx).Model(&models.User{})

	if opts.Role != "" {
		tx = tx.Where("role = ?", opts.Role)
	}

	if opts.Search != "" {
		like := "%" + strings.ToLower(opts.Search) + "%"
		tx = tx.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	totalPages := int((total + int64(opts.PageSize) - 1) / int64(opts.PageSize))
	if totalPages == 0 {
		totalPages = 1
	}

	users := make([]models.User, 0, opts.PageSize)

	offset := (opts.Page - 1) * opts.PageSize
	if err := tx.Order("created_at DESC").Order("id").Limit(opts.PageSize).Offset(offset).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}

	return &ListResult{
		Users:      users,
		Total:      total,
		Page:       opts.Page,
		PageSize:   opts.PageSize,
		TotalPages: totalPages,
	}, nil
}
