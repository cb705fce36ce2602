package auth

import (
	"time"

	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

// Identity is who is making a request. It never carries the password or
// other profile fields.
type Identity struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Name      *string     `json:"name"`
	Role      models.Role `json:"role"`
	Verified  bool        `json:"verified"`
	CreatedAt time.Time   `json:"createdAt"`
}

// NewIdentity projects a user onto its public identity.
func NewIdentity(u *models.User) *Identity {
	return &Identity{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
}

// IsAdmin reports whether the identity holds the ADMIN role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role.IsAdmin()
}
