package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a role value is not one of the known roles.
var ErrUnknownRole = errors.New("unknown role")

// Role is the account type of a user.
// Only the three values below are valid; anything else is rejected on read.
type Role string

const (
	// RoleStudent is a currently enrolled student.
	RoleStudent Role = "STUDENT"
	// RoleAlumni is a graduate with an alumni profile.
	RoleAlumni Role = "ALUMNI"
	// RoleAdmin can verify alumni and list users.
	RoleAdmin Role = "ADMIN"
)

// ParseRole converts s into a Role. Matching is exact.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleStudent, RoleAlumni, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// IsAdmin reports whether r grants admin access.
// Unknown roles never do.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleStudent, RoleAlumni:
		return false
	default:
		return false
	}
}

// Value implements driver.Valuer so invalid roles are never written.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, string(r))
	}

	return string(r), nil
}

// Scan implements sql.Scanner. Unknown stored values are kept as-is so the
// caller can decide to fail closed; Valid and IsAdmin reject them.
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	case nil:
		*r = ""
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrUnknownRole, src)
	}

	return nil
}
