//go:build integration

package mongodb_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/platform/mongodb"
	"github.com/phrazzld/coursehub-api/internal/store"
	"github.com/phrazzld/coursehub-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const opTimeout = 5 * time.Second

func newStores(t *testing.T) (*mongodb.UserStore, *mongodb.CourseStore) {
	t.Helper()
	db := testdb.GetTestDatabaseWithT(t)
	users := mongodb.NewUserStore(db, opTimeout, slog.Default())
	require.NoError(t, users.EnsureIndexes(context.Background()))
	return users, mongodb.NewCourseStore(db, opTimeout, slog.Default())
}

func createUser(t *testing.T, users *mongodb.UserStore, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, "$2a$04$hash", domain.RoleUser, nil)
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserStoreIntegration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users, _ := newStores(t)

	alice := createUser(t, users, "alice")
	assert.False(t, alice.ID.IsZero())

	dup, err := domain.NewUser("alice", "$2a$04$other", domain.RoleUser, nil)
	require.NoError(t, err)
	assert.ErrorIs(t, users.Create(ctx, dup), store.ErrUsernameExists)

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "$2a$04$hash", got.HashedPassword)

	_, err = users.GetByID(ctx, primitive.NewObjectID())
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestEnrollmentIntegration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users, courses := newStores(t)

	course, err := domain.NewCourse(map[string]interface{}{"title": "Intro", "level": "beginner"})
	require.NoError(t, err)
	require.NoError(t, courses.Create(ctx, course))

	bob := createUser(t, users, "bob")

	t.Run("concurrent enrollments add the course once", func(t *testing.T) {
		const attempts = 8
		var (
			wg         sync.WaitGroup
			mu         sync.Mutex
			ok, dupErr int
		)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := users.AddEnrollment(ctx, bob.ID, course.ID)
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					ok++
				case assert.ErrorIs(t, err, store.ErrAlreadyEnrolled):
					dupErr++
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, ok)
		assert.Equal(t, attempts-1, dupErr)

		got, err := users.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{course.ID}, got.EnrolledCourses)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := users.AddEnrollment(ctx, primitive.NewObjectID(), course.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("delete cascades when requested", func(t *testing.T) {
		require.NoError(t, courses.Delete(ctx, course.ID))
		n, err := users.RemoveCourseFromAll(ctx, course.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, n)

		got, err := users.GetByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Empty(t, got.EnrolledCourses)

		assert.ErrorIs(t, courses.Delete(ctx, course.ID), store.ErrCourseNotFound)
	})
}

func TestCourseStoreIntegration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	_, courses := newStores(t)

	first, err := domain.NewCourse(map[string]interface{}{"title": "First", "level": "beginner"})
	require.NoError(t, err)
	require.NoError(t, courses.Create(ctx, first))

	second, err := domain.NewCourse(map[string]interface{}{"title": "Second"})
	require.NoError(t, err)
	require.NoError(t, courses.Create(ctx, second))

	list, err := courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	got, err := courses.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", got.Title)
	assert.Equal(t, "beginner", got.Fields["level"])

	patch, err := domain.NewCoursePatch(map[string]interface{}{"title": "Renamed", "level": "advanced"})
	require.NoError(t, err)
	updated, err := courses.Update(ctx, first.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "advanced", updated.Fields["level"])
	assert.WithinDuration(t, first.CreatedAt, updated.CreatedAt, time.Millisecond)

	_, err = courses.Update(ctx, primitive.NewObjectID(), patch)
	assert.ErrorIs(t, err, store.ErrCourseNotFound)
}
