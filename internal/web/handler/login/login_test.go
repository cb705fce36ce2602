package login_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	"github.com/AlumniConnect/AlumniConnect/internal/db/dbtest"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/handlertest"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/login"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/logout"
)

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()

	for _, c := range resp.Cookies() {
		if c.Name == handlertest.CookieName {
			return c
		}
	}

	t.Fatal("no session cookie in response")

	return nil
}

func TestLoginFlow(t *testing.T) {
	app, deps := handlertest.New(t, &login.Handler, &logout.Handler)

	u := dbtest.CreateUser(t, deps.DB, "ada@example.com", models.RoleAlumni,
		dbtest.WithPassword("correct horse"),
		dbtest.WithMajor("Mathematics", 2015),
		dbtest.WithVerified(true),
	)

	var loggedIn login.SessionResponse

	resp := handlertest.Do(t, app, handlertest.Request(http.MethodPost, login.LoginPath,
		`{"email":"ada@example.com","password":"correct horse"}`, ""), &loggedIn)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	assert.Equal(t, u.ID, loggedIn.User.ID)
	assert.Equal(t, string(models.RoleAlumni), loggedIn.User.Role)
	assert.True(t, loggedIn.User.Verified)
	assert.Equal(t, 2015, *loggedIn.User.GraduationYear)
	assert.Equal(t, "Mathematics", *loggedIn.User.Major)
	require.NotNil(t, loggedIn.Identity)
	assert.Equal(t, "ada@example.com", loggedIn.Identity.Email)

	// the session reflects the claims of the login, even after a role change
	require.NoError(t, deps.DB.Model(&models.User{}).Where("id = ?", u.ID).Update("role", models.RoleAdmin).Error)

	req := handlertest.Request(http.MethodGet, login.SessionPath, "", "")
	req.AddCookie(cookie)

	var session login.SessionResponse

	resp = handlertest.Do(t, app, req, &session)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, u.ID, session.User.ID)
	assert.Equal(t, string(models.RoleAlumni), session.User.Role)
	assert.Nil(t, session.Identity)

	// logout revokes the session
	req = handlertest.Request(http.MethodPost, logout.Path, "", "")
	req.AddCookie(cookie)

	resp = handlertest.Do(t, app, req, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, sessionCookie(t, resp).Value)

	req = handlertest.Request(http.MethodGet, login.SessionPath, "", "")
	req.AddCookie(cookie)

	var body handlertest.ErrorBody

	resp = handlertest.Do(t, app, req, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, auth.MsgInvalidToken, body.Error)
}

func TestLoginFailures(t *testing.T) {
	app, deps := handlertest.New(t, &login.Handler)

	dbtest.CreateUser(t, deps.DB, "ada@example.com", models.RoleStudent, dbtest.WithPassword("correct horse"))
	dbtest.CreateUser(t, deps.DB, "nopass@example.com", models.RoleStudent)

	testCases := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "wrong password",
			body:       `{"email":"ada@example.com","password":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  auth.MsgInvalidCredentials,
		},
		{
			name:       "unknown email",
			body:       `{"email":"nobody@example.com","password":"correct horse"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  auth.MsgInvalidCredentials,
		},
		{
			name:       "account without password",
			body:       `{"email":"nopass@example.com","password":"anything"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  auth.MsgInvalidCredentials,
		},
		{
			name:       "missing password",
			body:       `{"email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid email",
			body:       `{"email":"ada","password":"correct horse"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var body handlertest.ErrorBody

			resp := handlertest.Do(t, app, handlertest.Request(http.MethodPost, login.LoginPath, tc.body, ""), &body)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.NotEmpty(t, body.Error)
			assert.Empty(t, resp.Cookies())

			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, body.Error)
			}
		})
	}
}

func TestSessionWithoutCookie(t *testing.T) {
	app, _ := handlertest.New(t, &login.Handler)

	var body handlertest.ErrorBody

	resp := handlertest.Do(t, app, handlertest.Request(http.MethodGet, login.SessionPath, "", ""), &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, auth.MsgNotAuthenticated, body.Error)
}
