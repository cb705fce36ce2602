package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

const (
	// MinSecretLength is the minimum length of the session signing secret.
	MinSecretLength = 32

	sessionKeyPrefix = "session:"
)

// Claims is the signed session content. It is a snapshot taken at login
// and is not refreshed from the user table.
type Claims struct {
	Role           models.Role `json:"role"`
	Verified       bool        `json:"verified"`
	GraduationYear *int        `json:"graduationYear"`
	Major          *string     `json:"major"`
	jwt.RegisteredClaims
}

// UserID returns the subject of the claims.
func (c *Claims) UserID() string {
	return c.Subject
}

// SessionIssuer signs session claims and tracks their ids in a storage so
// a session can be revoked before it expires.
type SessionIssuer struct {
	secret  []byte
	ttl     time.Duration
	storage fiber.Storage
	now     func() time.Time
}

// NewSessionIssuer creates a new issuer. The storage holds one key per
// active session.
func NewSessionIssuer(secret string, ttl time.Duration, storage fiber.Storage) (*SessionIssuer, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrSecretTooShort, MinSecretLength)
	}

	if storage == nil {
		return nil, ErrStorageNil
	}

	return &SessionIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		storage: storage,
		now:     time.Now,
	}, nil
}

// TTL returns the session lifetime.
func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}

// Issue signs a new session for u.
func (s *SessionIssuer) Issue(u *models.User) (string, *Claims, error) {
	if !u.Role.Valid() {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidRole, u.Role)
	}

	now := s.now()
	claims := &Claims{
		Role:           u.Role,
		Verified:       u.Verified,
		GraduationYear: u.GraduationYear,
		Major:          u.Major,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session: %w", err)
	}

	if err := s.storage.Set(sessionKey(claims.ID), []byte(u.ID), s.ttl); err != nil {
		return "", nil, fmt.Errorf("failed to store session: %w", err)
	}

	return token, claims, nil
}

// Parse verifies a signed session and returns its claims.
// Failures are *Error values: 401 for bad, expired or revoked sessions,
// 500 when the storage cannot be read.
func (s *SessionIssuer) Parse(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}

	_, err := jwt.ParseWithClaims(token, claims,
		func(_ *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, invalidSession(err)
	}

	if !claims.Role.Valid() {
		return nil, invalidSession(fmt.Errorf("%w: %q", ErrInvalidRole, claims.Role))
	}

	stored, err := s.storage.Get(sessionKey(claims.ID))
	if err != nil {
		return nil, internalError(fmt.Errorf("failed to read session: %w", err))
	}

	if len(stored) == 0 || string(stored) != claims.Subject {
		return nil, invalidSession(ErrSessionRevoked)
	}

	return claims, nil
}

// Revoke removes the session with the given id.
func (s *SessionIssuer) Revoke(id string) error {
	if id == "" {
		return nil
	}

	return s.storage.Delete(sessionKey(id))
}

// RevokeToken revokes the session of a signed token. Signature and expiry
// are still checked so a forged token cannot revoke another session.
func (s *SessionIssuer) RevokeToken(token string) error {
	claims, err := s.Parse(token)
	if err != nil {
		return err
	}

	return s.Revoke(claims.ID)
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func invalidSession(err error) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: MsgInvalidToken, Err: err}
}
