// Package login provides the credentials login and the signed session view.
package login

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
)

const (
	// Path is the base path of the auth endpoints.
	Path = handler.APIPath + "/auth"

	// LoginPath is the credentials login endpoint.
	LoginPath = Path + "/login"
	// SessionPath returns the signed session of the caller.
	SessionPath = Path + "/session"
)

// Service is the login handler service.
type Service struct {
	deps *handler.Deps
}

// Handler is the login handler.
var Handler = Service{}

// Request is the login body.
type Request struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionUser is the user part of a session as seen by the client.
type SessionUser struct {
	ID             string  `json:"id"`
	Role           string  `json:"role"`
	Verified       bool    `json:"verified"`
	GraduationYear *int    `json:"graduationYear"`
	Major          *string `json:"major"`
}

// SessionResponse is the body of the login and session endpoints.
type SessionResponse struct {
	User      SessionUser    `json:"user"`
	Identity  *auth.Identity `json:"identity,omitempty"`
	ExpiresAt time.Time      `json:"expiresAt"`
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, deps *handler.Deps) error {
	if app == nil || !deps.Valid() {
		return handler.ErrDepsNil
	}

	s.deps = deps

	// register routes
	app.Post(LoginPath, s.Post)
	app.Get(SessionPath, auth.RequireSession(deps.Issuer, deps.Cfg.Webserver.Session.CookieName), s.Session)

	return nil
}

// Post handles the login body, sets the session cookie and returns the session.
func (s *Service) Post(c *fiber.Ctx) error {
	req := new(Request)

	if err := c.BodyParser(req); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.MsgInvalidBody)
	}

	if err := s.deps.Validator.Struct(req); err != nil {
		return handler.Error(c, fiber.StatusBadRequest, handler.ValidationMessage(err))
	}

	user := s.deps.Local.Authenticate(c.UserContext(), req.Email, req.Password)
	if user == nil {
		log.Warn().Str("path", c.Path()).Msg("login failed")
		return auth.Respond(c, auth.ErrInvalidCredentials)
	}

	token, claims, err := s.deps.Issuer.Issue(user)
	if err != nil {
		return handler.InternalError(c, err, "failed to issue session")
	}

	// set login cookie
	cookieSettings := &fiber.Cookie{
		Name:     s.deps.Cfg.Webserver.Session.CookieName,
		Value:    token,
		Expires:  claims.ExpiresAt.Time,
		MaxAge:   int(s.deps.Issuer.TTL().Seconds()),
		Secure:   true,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}

	if s.deps.Cfg.DevMode {
		cookieSettings.Secure = false
	}

	c.Cookie(cookieSettings)
	c.Locals(auth.LocalsUserID, user.ID)

	resp := sessionResponse(claims)
	resp.Identity = auth.NewIdentity(user)

	return c.JSON(resp)
}

// Session returns the signed claims of the caller without reading the user table.
func (s *Service) Session(c *fiber.Ctx) error {
	claims := auth.ClaimsFromContext(c)
	if claims == nil {
		return auth.Respond(c, auth.ErrInvalidToken)
	}

	return c.JSON(sessionResponse(claims))
}

func sessionResponse(claims *auth.Claims) SessionResponse {
	return SessionResponse{
		User: SessionUser{
			ID:             claims.UserID(),
			Role:           string(claims.Role),
			Verified:       claims.Verified,
			GraduationYear: claims.GraduationYear,
			Major:          claims.Major,
		},
		ExpiresAt: claims.ExpiresAt.Time,
	}
}
