package user

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlumniConnect/AlumniConnect/internal/db/dbtest"
	"github.com/AlumniConnect/AlumniConnect/internal/db/models"
)

func TestGetByID(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	seeded := dbtest.CreateUser(t, db, "ada@example.com", models.RoleStudent, dbtest.WithName("Ada"))

	testCases := []struct {
		name          string
		id            string
		nilDB         bool
		expectedError error
	}{
		{name: "nil database", id: seeded.ID, nilDB: true, expectedError: ErrDBNil},
		{name: "empty id", id: "", expectedError: ErrIDEmpty},
		{name: "user not found", id: "missing", expectedError: ErrUserNotFound},
		{name: "successful get", id: seeded.ID},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dbParam := db
			if tc.nilDB {
				dbParam = nil
			}

			u, err := GetByID(ctx, dbParam, tc.id)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, u)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, seeded.ID, u.ID)
			assert.Equal(t, "ada@example.com", u.Email)
			assert.Equal(t, "Ada", u.DisplayName())
			assert.Equal(t, models.RoleStudent, u.Role)
		})
	}
}

func TestGetByEmail(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	dbtest.CreateUser(t, db, "grace@example.com", models.RoleAlumni)

	u, err := GetByEmail(ctx, db, "  Grace@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "grace@example.com", u.Email)

	_, err = GetByEmail(ctx, db, "nobody@example.com")
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = GetByEmail(ctx, db, "   ")
	require.ErrorIs(t, err, ErrEmailEmpty)

	_, err = GetByEmail(ctx, nil, "grace@example.com")
	require.ErrorIs(t, err, ErrDBNil)
}

func TestGetByIDCanceledContext(t *testing.T) {
	db := dbtest.New(t)
	seeded := dbtest.CreateUser(t, db, "ada@example.com", models.RoleStudent)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := GetByID(ctx, db, seeded.ID)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
}

func TestCreate(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	student := &models.User{ID: uuid.NewString(), Email: "Student@Example.com", Role: models.RoleStudent}
	require.NoError(t, Create(ctx, db, student, nil))
	assert.Equal(t, "student@example.com", student.Email)

	duplicate := &models.User{ID: uuid.NewString(), Email: "student@example.com", Role: models.RoleStudent}
	require.ErrorIs(t, Create(ctx, db, duplicate, nil), ErrEmailAlreadyExists)

	company := "ACME"
	alumnus := &models.User{ID: uuid.NewString(), Email: "alum@example.com", Role: models.RoleAlumni}
	profile := &models.Alumni{ID: uuid.NewString(), Company: &company}
	require.NoError(t, Create(ctx, db, alumnus, profile))

	var stored models.Alumni
	require.NoError(t, db.Where("user_id = ?", alumnus.ID).Take(&stored).Error)
	assert.Equal(t, profile.ID, stored.ID)
	assert.False(t, stored.Verified)
	assert.Equal(t, "ACME", *stored.Company)

	require.ErrorIs(t, Create(ctx, db, &models.User{ID: uuid.NewString()}, nil), ErrEmailEmpty)
	require.ErrorIs(t, Create(ctx, db, &models.User{Email: "x@example.com"}, nil), ErrIDEmpty)
	require.ErrorIs(t, Create(ctx, nil, student, nil), ErrDBNil)
}

func TestCount(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()

	n, err := Count(ctx, db)
	require.NoError(t, err)
	assert.Zero(t, n)

	dbtest.CreateUser(t, db, "a@example.com", models.RoleStudent)
	dbtest.CreateUser(t, db, "b@example.com", models.RoleAdmin)

	n, err = Count(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestList(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := range 30 {
		role := models.RoleStudent
		if i%3 == 0 {
			role = models.RoleAlumni
		}

		dbtest.CreateUser(t, db, fmt.Sprintf("user%02d@example.com", i), role,
			dbtest.WithName(fmt.Sprintf("User %02d", i)),
			dbtest.WithCreatedAt(base.Add(time.Duration(i)*time.Hour)),
		)
	}

	testCases := []struct {
		name           string
		opts           ListOptions
		wantLen        int
		wantTotal      int64
		wantPage       int
		wantPageSize   int
		wantTotalPages int
		wantFirstEmail string
	}{
		{
			name:           "defaults",
			opts:           ListOptions{},
			wantLen:        25,
			wantTotal:      30,
			wantPage:       1,
			wantPageSize:   DefaultPageSize,
			wantTotalPages: 2,
			wantFirstEmail: "user29@example.com",
		},
		{
			name:           "second page",
			opts:           ListOptions{Page: 2, PageSize: 25},
			wantLen:        5,
			wantTotal:      30,
			wantPage:       2,
			wantPageSize:   25,
			wantTotalPages: 2,
			wantFirstEmail: "user04@example.com",
		},
		{
			name:           "page size out of range",
			opts:           ListOptions{PageSize: 1000},
			wantLen:        25,
			wantTotal:      30,
			wantPage:       1,
			wantPageSize:   DefaultPageSize,
			wantTotalPages: 2,
			wantFirstEmail: "user29@example.com",
		},
		{
			name:           "role filter",
			opts:           ListOptions{Role: models.RoleAlumni, PageSize: 50},
			wantLen:        10,
			wantTotal:      10,
			wantPage:       1,
			wantPageSize:   50,
			wantTotalPages: 1,
			wantFirstEmail: "user27@example.com",
		},
		{
			name:           "search by name",
			opts:           ListOptions{Search: "user 1"},
			wantLen:        10,
			wantTotal:      10,
			wantPage:       1,
			wantPageSize:   DefaultPageSize,
			wantTotalPages: 1,
			wantFirstEmail: "user19@example.com",
		},
		{
			name:           "huge page is clamped",
			opts:           ListOptions{Page: math.MaxInt, PageSize: MaxPageSize},
			wantLen:        0,
			wantTotal:      30,
			wantPage:       MaxPage,
			wantPageSize:   MaxPageSize,
			wantTotalPages: 1,
		},
		{
			name:           "no match",
			opts:           ListOptions{Search: "nobody"},
			wantLen:        0,
			wantTotal:      0,
			wantPage:       1,
			wantPageSize:   DefaultPageSize,
			wantTotalPages: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := List(ctx, db, tc.opts)
			require.NoError(t, err)

			assert.Len(t, res.Users, tc.wantLen)
			assert.Equal(t, tc.wantTotal, res.Total)
			assert.Equal(t, tc.wantPage, res.Page)
			assert.Equal(t, tc.wantPageSize, res.PageSize)
			assert.Equal(t, tc.wantTotalPages, res.TotalPages)

			if tc.wantFirstEmail != "" {
				assert.Equal(t, tc.wantFirstEmail, res.Users[0].Email)
			}
		})
	}
}
