package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/phrazzld/coursehub-api/internal/config"
	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/mocks"
	"github.com/phrazzld/coursehub-api/internal/platform/logger"
	"github.com/phrazzld/coursehub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seed(t *testing.T) (*mocks.MockCourseStore, *mocks.MockUserStore, *domain.User, *domain.Course) {
	t.Helper()

	courses := mocks.NewMockCourseStore()
	users := mocks.NewMockUserStore()

	user, err := domain.NewUser("alice", "hashed:pw", domain.RoleUser, nil)
	require.NoError(t, err)
	users.Seed(user)

	course := courses.Seed(&domain.Course{Title: "Intro"})
	return courses, users, user, course
}

func TestEnroll(t *testing.T) {
	_, log := logger.SetupTestLogger(t)
	ctx := context.Background()

	t.Run("success then duplicate", func(t *testing.T) {
		courses, users, user, course := seed(t)
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{}, log)

		require.NoError(t, svc.Enroll(ctx, user.ID, course.ID))
		assert.ErrorIs(t, svc.Enroll(ctx, user.ID, course.ID), store.ErrAlreadyEnrolled)

		stored, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, []primitive.ObjectID{course.ID}, stored.EnrolledCourses)
	})

	t.Run("unknown course touches no user", func(t *testing.T) {
		courses, users, user, _ := seed(t)
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{}, log)

		err := svc.Enroll(ctx, user.ID, primitive.NewObjectID())
		assert.ErrorIs(t, err, store.ErrCourseNotFound)
		assert.Zero(t, users.Mutations())
	})

	t.Run("unknown user", func(t *testing.T) {
		courses, users, _, course := seed(t)
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{}, log)

		assert.ErrorIs(t, svc.Enroll(ctx, primitive.NewObjectID(), course.ID), store.ErrUserNotFound)
	})

	t.Run("store failure is wrapped", func(t *testing.T) {
		courses, users, user, course := seed(t)
		cause := errors.New("write concern failed")
		users.AddEnrollmentFn = func(context.Context, primitive.ObjectID, primitive.ObjectID) error { return cause }
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{}, log)

		err := svc.Enroll(ctx, user.ID, course.ID)
		var svcErr *ServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "enroll", svcErr.Operation)
		assert.ErrorIs(t, err, cause)
	})

	t.Run("concurrent enrollments succeed once", func(t *testing.T) {
		courses, users, user, course := seed(t)
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{}, log)

		const attempts = 8
		var wg sync.WaitGroup
		results := make(chan error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- svc.Enroll(ctx, user.ID, course.ID)
			}()
		}
		wg.Wait()
		close(results)

		var ok, dup int
		for err := range results {
			switch {
			case err == nil:
				ok++
			case errors.Is(err, store.ErrAlreadyEnrolled):
				dup++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}
		assert.Equal(t, 1, ok)
		assert.Equal(t, attempts-1, dup)
	})
}

func TestDeleteCourse(t *testing.T) {
	_, log := logger.SetupTestLogger(t)
	ctx := context.Background()

	t.Run("missing course", func(t *testing.T) {
		courses, users, _, _ := seed(t)
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{CascadeEnrollments: true}, log)

		assert.ErrorIs(t, svc.DeleteCourse(ctx, primitive.NewObjectID()), store.ErrCourseNotFound)
		assert.Zero(t, users.Mutations(), "no cascade for a course that did not exist")
	})

	t.Run("without cascade", func(t *testing.T) {
		courses, users, user, course := seed(t)
		require.NoError(t, users.AddEnrollment(ctx, user.ID, course.ID))
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{}, log)

		require.NoError(t, svc.DeleteCourse(ctx, course.ID))

		stored, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, stored.IsEnrolled(course.ID))
	})

	t.Run("with cascade", func(t *testing.T) {
		courses, users, user, course := seed(t)
		require.NoError(t, users.AddEnrollment(ctx, user.ID, course.ID))
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{CascadeEnrollments: true}, log)

		require.NoError(t, svc.DeleteCourse(ctx, course.ID))

		stored, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsEnrolled(course.ID))
	})

	t.Run("cascade failure is not reported", func(t *testing.T) {
		courses, _, _, course := seed(t)
		users := &mocks.TestifyMockUserStore{}
		users.On("RemoveCourseFromAll", mock.Anything, course.ID).Return(int64(0), errors.New("timeout"))
		svc := NewEnrollmentService(courses, users, config.CoursesConfig{CascadeEnrollments: true}, log)

		assert.NoError(t, svc.DeleteCourse(ctx, course.ID))
		users.AssertExpectations(t)

		_, err := courses.GetByID(ctx, course.ID)
		assert.ErrorIs(t, err, store.ErrCourseNotFound)
	})
}
