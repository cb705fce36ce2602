package user

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlumniConnect/AlumniConnect/internal/auth"
	userctl "github.com/AlumniConnect/AlumniConnect/internal/db/controller/user"
	"github.com/AlumniConnect/AlumniConnect/internal/db/dbtest"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
	"github.com/AlumniConnect/AlumniConnect/internal/web/handler/handlertest"
)

func TestList(t *testing.T) {
	app, deps := handlertest.New(t, &Handler)

	admin := dbtest.CreateUser(t, deps.DB, "admin@example.com", models.RoleAdmin, dbtest.WithPassword("admin-pass"))
	for i := range 4 {
		dbtest.CreateUser(t, deps.DB, fmt.Sprintf("student%d@example.com", i), models.RoleStudent)
	}

	t.Run("all users", func(t *testing.T) {
		var body ListResponse

		resp := handlertest.Do(t, app, handlertest.Request(http.MethodGet, Path, "", admin.ID), &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int64(5), body.Total)
		assert.Len(t, body.Users, 5)
		assert.Equal(t, 1, body.Page)
		assert.Equal(t, DefaultPageSize, body.PageSize)
	})

	t.Run("filtered and paged", func(t *testing.T) {
		var body ListResponse

		resp := handlertest.Do(t, app, handlertest.Request(http.MethodGet, Path+"?role=STUDENT&pageSize=3&page=2", "", handlertest.DemoToken), &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, int64(4), body.Total)
		assert.Len(t, body.Users, 1)
		assert.Equal(t, 2, body.TotalPages)
	})

	t.Run("password is never exposed", func(t *testing.T) {
		var body map[string]any

		resp := handlertest.Do(t, app, handlertest.Request(http.MethodGet, Path+"?search=admin", "", admin.ID), &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		users, ok := body["users"].([]any)
		require.True(t, ok)
		require.Len(t, users, 1)

		record, ok := users[0].(map[string]any)
		require.True(t, ok)
		assert.NotContains(t, record, "password")
		assert.Equal(t, true, record["hasPassword"])
	})

	t.Run("huge page number", func(t *testing.T) {
		var body ListResponse

		resp := handlertest.Do(t, app, handlertest.Request(http.MethodGet, Path+"?page=9223372036854775807", "", admin.ID), &body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, body.Users)
		assert.Equal(t, int64(5), body.Total)
		assert.Equal(t, userctl.MaxPage, body.Page)
	})

	t.Run("invalid role", func(t *testing.T) {
		resp := handlertest.Do(t, app, handlertest.Request(http.MethodGet, Path+"?role=ROOT", "", admin.ID), nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("student is forbidden", func(t *testing.T) {
		var students ListResponse

		handlertest.Do(t, app, handlertest.Request(http.MethodGet, Path+"?role=STUDENT", "", admin.ID), &students)
		require.NotEmpty(t, students.Users)

		var body handlertest.ErrorBody

		resp := handlertest.Do(t, app, handlertest.Request(http.MethodGet, Path, "", students.Users[0].ID), &body)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		assert.Equal(t, auth.MsgAdminRequired, body.Error)
	})
}
