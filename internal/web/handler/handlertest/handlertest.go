// Package handlertest builds fiber apps with in-memory dependencies for handler tests.
package handlertest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	"github.com/AlumniConnect/AlumniConnect/internal/config"
	"github.com/AlumniConnect/AlumniConnect/internal/db/dbtest"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler"
)

const (
	// DemoToken is the demo admin bearer token of test apps.
	DemoToken = "test-demo-admin-token"
	// CookieName is the session cookie name of test apps.
	CookieName = "session"

	secret = "test-secret-test-secret-test-secret"
)

// Config returns the configuration used by New.
func Config() *config.Config {
	return &config.Config{
		DevMode: true,
		Webserver: config.Webserver{
			URL:  "http://localhost",
			Port: 3000,
			Session: config.Session{
				ExpiryTime: time.Hour,
				Secret:     secret,
				CookieName: CookieName,
				Engine:     config.SessionEngineMemory,
			},
		},
		Auth: config.Auth{DemoAdminToken: DemoToken},
	}
}

// New builds a fiber app with the given handlers on a fresh in-memory database.
func New(t *testing.T, services ...handler.Service) (*fiber.App, *handler.Deps) {
	t.Helper()

	cfg := Config()
	db := dbtest.New(t)

	issuer, err := auth.NewSessionIssuer(cfg.Webserver.Session.Secret, cfg.Webserver.Session.ExpiryTime, session.New().Storage)
	require.NoError(t, err)

	deps := &handler.Deps{
		Cfg:       cfg,
		DB:        db,
		Resolver:  auth.NewResolver(auth.NewGormLookup(db), cfg.Auth),
		Issuer:    issuer,
		Local:     auth.NewLocalProvider(db),
		Validator: handler.NewValidator(),
	}

	app := fiber.New()

	for _, s := range services {
		require.NoError(t, s.Init(app, deps))
	}

	return app, deps
}

// Request builds a request with an optional JSON body and bearer token.
func Request(method, target, body, bearer string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, auth.BearerPrefix+bearer)
	}

	return req
}

// Do runs req against app and decodes the JSON body into out, when out is not nil.
func Do(t *testing.T, app *fiber.App, req *http.Request, out any) *http.Response {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}

	return resp
}

// ErrorBody is the JSON error shape.
type ErrorBody struct {
	Error string `json:"error"`
}
