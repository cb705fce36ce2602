package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const (
	// LocalsIdentity is the fiber.Locals key of the resolved *Identity.
	LocalsIdentity = "identity"
	// LocalsClaims is the fiber.Locals key of the session *Claims.
	LocalsClaims = "claims"
	// LocalsUserID is the fiber.Locals key of the authenticated user id, picked up by the access log.
	LocalsUserID = "user_id"

	// MsgNotAuthenticated is returned when no session cookie is present.
	MsgNotAuthenticated = "Not authenticated"
)

// RequireBearer creates Fiber middleware that resolves the bearer header.
func RequireBearer(r *Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := r.Resolve(c.UserContext(), c.Get(fiber.HeaderAuthorization))

		return admit(c, gateBearer, identity, err)
	}
}

// RequireAdminBearer creates Fiber middleware that only admits admin bearer tokens.
func RequireAdminBearer(r *Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := r.RequireAdmin(c.UserContext(), c.Get(fiber.HeaderAuthorization))

		return admit(c, gateAdmin, identity, err)
	}
}

// RequireSession creates Fiber middleware that verifies the signed session cookie.
func RequireSession(issuer *SessionIssuer, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cookieName)
		if token == "" {
			gateErr := &Error{Status: http.StatusUnauthorized, Message: MsgNotAuthenticated}
			observe(gateSession, gateErr)

			return Respond(c, gateErr)
		}

		claims, err := issuer.Parse(token)
		if err != nil {
			gateErr := toError(err)
			observe(gateSession, gateErr)
			logDenied(c, gateSession, gateErr)

			return Respond(c, gateErr)
		}

		observe(gateSession, nil)
		c.Locals(LocalsClaims, claims)
		c.Locals(LocalsUserID, claims.UserID())

		return c.Next()
	}
}

// IdentityFromContext returns the identity stored by RequireBearer or RequireAdminBearer.
func IdentityFromContext(c *fiber.Ctx) *Identity {
	identity, _ := c.Locals(LocalsIdentity).(*Identity)
	return identity
}

// ClaimsFromContext returns the claims stored by RequireSession.
func ClaimsFromContext(c *fiber.Ctx) *Claims {
	claims, _ := c.Locals(LocalsClaims).(*Claims)
	return claims
}

// Respond writes a gate error as {"error": message}.
func Respond(c *fiber.Ctx, err *Error) error {
	return c.Status(err.Status).JSON(fiber.Map{"error": err.Message})
}

func admit(c *fiber.Ctx, gate string, identity *Identity, err error) error {
	if err != nil {
		gateErr := toError(err)
		observe(gate, gateErr)
		logDenied(c, gate, gateErr)

		return Respond(c, gateErr)
	}

	observe(gate, nil)
	c.Locals(LocalsIdentity, identity)
	c.Locals(LocalsUserID, identity.ID)

	return c.Next()
}

// toError maps any error to a gate error. Unknown errors become 500.
func toError(err error) *Error {
	if gateErr := AsError(err); gateErr != nil {
		return gateErr
	}

	return internalError(err)
}

func logDenied(c *fiber.Ctx, gate string, err *Error) {
	if err.Status >= http.StatusInternalServerError {
		log.Error().Err(err.Err).Str("gate", gate).Str("path", c.Path()).Msg("authentication failed")
		return
	}

	log.Warn().Str("gate", gate).Str("path", c.Path()).Int("status", err.Status).Msg(err.Message)
}
