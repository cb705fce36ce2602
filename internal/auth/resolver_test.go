package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlumniConnect/AlumniConnect/internal/config"
	"github.com/AlumniConnect/AlumniConnect/internal/db/controller/user"
	"github.com/AlumniConnect/AlumniConnect/internal/db/dbtest"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

const testDemoToken = "demo-token"

// fakeLookup is an in-memory UserLookup counting store calls.
type fakeLookup struct {
	users map[string]*models.User
	err   error
	calls int
}

func (f *fakeLookup) GetUserByID(_ context.Context, id string) (*models.User, error) {
	f.calls++

	if f.err != nil {
		return nil, f.err
	}

	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}

	return u, nil
}

func testAuthConfig() config.Auth {
	return config.Auth{DemoAdminToken: testDemoToken}
}

func TestResolveMalformedHeader(t *testing.T) {
	testCases := []struct {
		name    string
		header  string
		wantErr *Error
	}{
		{name: "absent", header: "", wantErr: ErrMissingAuthHeader},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantErr: ErrMissingAuthHeader},
		{name: "lower case scheme", header: "bearer abc", wantErr: ErrMissingAuthHeader},
		{name: "no space", header: "Bearerabc", wantErr: ErrMissingAuthHeader},
		{name: "scheme only", header: "Bearer", wantErr: ErrMissingAuthHeader},
		{name: "empty token", header: "Bearer ", wantErr: ErrInvalidToken},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lookup := &fakeLookup{}
			r := NewResolver(lookup, testAuthConfig())

			identity, err := r.Resolve(context.Background(), tc.header)
			require.Error(t, err)
			assert.Nil(t, identity)
			assert.Same(t, tc.wantErr, err)
			assert.Equal(t, http.StatusUnauthorized, tc.wantErr.Status)
			assert.Zero(t, lookup.calls, "store must not be touched")
		})
	}
}

func TestResolveDemoAdminOnEmptyStore(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("store must not be called")}
	r := NewResolver(lookup, testAuthConfig())

	identity, err := r.Resolve(context.Background(), BearerPrefix+testDemoToken)
	require.NoError(t, err)
	assert.Zero(t, lookup.calls)

	assert.Equal(t, DemoAdminID, identity.ID)
	assert.Equal(t, models.RoleAdmin, identity.Role)
	assert.True(t, identity.Verified)
	assert.Equal(t, DefaultDemoAdminEmail, identity.Email)
	require.NotNil(t, identity.Name)
	assert.Equal(t, DefaultDemoAdminName, *identity.Name)

	// the returned identity is a copy
	identity.Role = models.RoleStudent
	again, err := r.Resolve(context.Background(), BearerPrefix+testDemoToken)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, again.Role)
}

func TestResolveDemoAdminConfigured(t *testing.T) {
	r := NewResolver(&fakeLookup{}, config.Auth{
		DemoAdminToken: testDemoToken,
		DemoAdminEmail: "demo@example.com",
		DemoAdminName:  "Demo",
	})

	identity, err := r.Resolve(context.Background(), BearerPrefix+testDemoToken)
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", identity.Email)
	assert.Equal(t, "Demo", *identity.Name)
}

func TestResolveDemoAdminDisabled(t *testing.T) {
	lookup := &fakeLookup{}
	r := NewResolver(lookup, config.Auth{DemoAdminToken: testDemoToken, DisableDemoAdmin: true})

	_, err := r.Resolve(context.Background(), BearerPrefix+testDemoToken)
	assert.Same(t, ErrUserNotFound, err)
	assert.Equal(t, 1, lookup.calls)
}

func TestResolveUser(t *testing.T) {
	db := dbtest.New(t)
	seeded := dbtest.CreateUser(t, db, "ada@example.com", models.RoleAlumni,
		dbtest.WithName("Ada"),
		dbtest.WithPassword("secret-password"),
		dbtest.WithMajor("CS", 2020),
		dbtest.WithVerified(true),
	)

	r := NewResolver(NewGormLookup(db), testAuthConfig())

	identity, err := r.Resolve(context.Background(), BearerPrefix+seeded.ID)
	require.NoError(t, err)

	assert.Equal(t, seeded.ID, identity.ID)
	assert.Equal(t, "ada@example.com", identity.Email)
	assert.Equal(t, "Ada", *identity.Name)
	assert.Equal(t, models.RoleAlumni, identity.Role)
	assert.True(t, identity.Verified)
	assert.False(t, identity.CreatedAt.IsZero())

	// the public projection carries exactly these fields
	raw, err := json.Marshal(identity)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	assert.ElementsMatch(t, []string{"id", "email", "name", "role", "verified", "createdAt"}, keys)
	assert.NotContains(t, string(raw), "argon2id")
}

func TestResolveUnknownToken(t *testing.T) {
	db := dbtest.New(t)
	dbtest.CreateUser(t, db, "ada@example.com", models.RoleStudent)

	r := NewResolver(NewGormLookup(db), testAuthConfig())

	for _, token := range []string{"missing", "demo-token-2", " " + testDemoToken, "00000000-0000-0000-0000-000000000000"} {
		identity, err := r.Resolve(context.Background(), BearerPrefix+token)
		assert.Nil(t, identity)
		assert.Same(t, ErrUserNotFound, err, token)
	}
}

func TestResolveLookupFailure(t *testing.T) {
	cause := errors.New("connection refused to 10.0.0.1:3306")
	r := NewResolver(&fakeLookup{err: cause}, testAuthConfig())

	_, err := r.Resolve(context.Background(), BearerPrefix+"some-id")
	require.Error(t, err)

	gateErr := AsError(err)
	require.NotNil(t, gateErr)
	assert.Equal(t, http.StatusInternalServerError, gateErr.Status)
	assert.Equal(t, MsgAuthFailed, gateErr.Message)
	assert.NotContains(t, gateErr.Message, "10.0.0.1")
	assert.ErrorIs(t, err, cause)
}

func TestResolveInvalidStoredRole(t *testing.T) {
	lookup := &fakeLookup{users: map[string]*models.User{
		"u1": {ID: "u1", Email: "root@example.com", Role: models.Role("SUPERUSER")},
	}}
	r := NewResolver(lookup, testAuthConfig())

	_, err := r.Resolve(context.Background(), BearerPrefix+"u1")
	require.Error(t, err)

	gateErr := AsError(err)
	require.NotNil(t, gateErr)
	assert.Equal(t, http.StatusInternalServerError, gateErr.Status)
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = r.RequireAdmin(context.Background(), BearerPrefix+"u1")
	require.Error(t, err)
}

func TestResolveIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	seeded := dbtest.CreateUser(t, db, "ada@example.com", models.RoleStudent)
	r := NewResolver(NewGormLookup(db), testAuthConfig())

	for _, header := range []string{"", "Bearer ", BearerPrefix + "missing", BearerPrefix + seeded.ID, BearerPrefix + testDemoToken} {
		first, firstErr := r.Resolve(context.Background(), header)
		second, secondErr := r.Resolve(context.Background(), header)

		assert.Equal(t, first, second, header)
		assert.Equal(t, firstErr, secondErr, header)
	}
}

func TestRequireAdmin(t *testing.T) {
	db := dbtest.New(t)
	admin := dbtest.CreateUser(t, db, "admin@example.com", models.RoleAdmin)
	student := dbtest.CreateUser(t, db, "student@example.com", models.RoleStudent)
	alumnus := dbtest.CreateUser(t, db, "alumnus@example.com", models.RoleAlumni)

	r := NewResolver(NewGormLookup(db), testAuthConfig())
	ctx := context.Background()

	t.Run("admin passes unchanged", func(t *testing.T) {
		resolved, err := r.Resolve(ctx, BearerPrefix+admin.ID)
		require.NoError(t, err)

		guarded, err := r.RequireAdmin(ctx, BearerPrefix+admin.ID)
		require.NoError(t, err)
		assert.Equal(t, resolved, guarded)
	})

	t.Run("demo admin passes", func(t *testing.T) {
		guarded, err := r.RequireAdmin(ctx, BearerPrefix+testDemoToken)
		require.NoError(t, err)
		assert.Equal(t, DemoAdminID, guarded.ID)
	})

	for _, u := range []*models.User{student, alumnus} {
		t.Run(string(u.Role)+" is forbidden", func(t *testing.T) {
			identity, err := r.RequireAdmin(ctx, BearerPrefix+u.ID)
			assert.Nil(t, identity)
			assert.Same(t, ErrAdminRequired, err)
			assert.Equal(t, http.StatusForbidden, ErrAdminRequired.Status)
		})
	}

	t.Run("resolver failures propagate", func(t *testing.T) {
		for _, header := range []string{"", "Bearer ", BearerPrefix + "missing"} {
			_, resolveErr := r.Resolve(ctx, header)
			_, guardErr := r.RequireAdmin(ctx, header)

			require.Error(t, guardErr)
			assert.Same(t, resolveErr, guardErr, header)
		}

		failing := NewResolver(&fakeLookup{err: errors.New("boom")}, testAuthConfig())
		_, guardErr := failing.RequireAdmin(ctx, BearerPrefix+"x")
		assert.Equal(t, http.StatusInternalServerError, AsError(guardErr).Status)
	})
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, MsgUserNotFound, ErrUserNotFound.Error())

	wrapped := internalError(errors.New("boom"))
	assert.Equal(t, MsgAuthFailed+": boom", wrapped.Error())
	assert.Nil(t, AsError(errors.New("plain")))
}
