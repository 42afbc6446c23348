package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/phrazzld/coursehub-api/internal/config"
	"github.com/phrazzld/coursehub-api/internal/platform/logger"
	"github.com/phrazzld/coursehub-api/internal/redact"
	"github.com/phrazzld/coursehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentService coordinates the user and course stores.
type EnrollmentService interface {
	// Enroll adds courseID to the user's enrollment set.
	// Returns store.ErrCourseNotFound, store.ErrUserNotFound or
	// store.ErrAlreadyEnrolled, possibly wrapped.
	Enroll(ctx context.Context, userID, courseID primitive.ObjectID) error

	// DeleteCourse removes a course. Returns store.ErrCourseNotFound when it
	// does not exist.
	DeleteCourse(ctx context.Context, courseID primitive.ObjectID) error
}

type enrollmentService struct {
	courses store.CourseStore
	users   store.UserStore
	cascade bool
	logger  *slog.Logger
}

var _ EnrollmentService = (*enrollmentService)(nil)

// NewEnrollmentService creates an EnrollmentService.
func NewEnrollmentService(
	courses store.CourseStore,
	users store.UserStore,
	cfg config.CoursesConfig,
	logger *slog.Logger,
) EnrollmentService {
	return &enrollmentService{
		courses: courses,
		users:   users,
		cascade: cfg.CascadeEnrollments,
		logger:  logger.With("component", "enrollment_service"),
	}
}

func (s *enrollmentService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// Enroll implements EnrollmentService.
func (s *enrollmentService) Enroll(ctx context.Context, userID, courseID primitive.ObjectID) error {
	log := s.log(ctx)

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return err
		}
		return NewServiceError("enroll", "failed to look up course", err)
	}

	if err := s.users.AddEnrollment(ctx, userID, courseID); err != nil {
		switch {
		case errors.Is(err, store.ErrAlreadyEnrolled), errors.Is(err, store.ErrUserNotFound):
			log.Debug("enrollment rejected",
				"user_id", userID.Hex(),
				"course_id", courseID.Hex(),
				"reason", err.Error())
			return err
		default:
			return NewServiceError("enroll", "failed to add enrollment", err)
		}
	}

	log.Info("user enrolled", "user_id", userID.Hex(), "course_id", courseID.Hex())
	return nil
}

// DeleteCourse implements EnrollmentService. A failed cascade is logged and
// not returned: the course is already gone and leftover IDs are exactly the
// non-cascading state.
func (s *enrollmentService) DeleteCourse(ctx context.Context, courseID primitive.ObjectID) error {
	log := s.log(ctx)

	if err := s.courses.Delete(ctx, courseID); err != nil {
		if errors.Is(err, store.ErrCourseNotFound) {
			return err
		}
		return NewServiceError("delete course", "failed to delete course", err)
	}
	log.Info("course deleted", "course_id", courseID.Hex())

	if !s.cascade {
		return nil
	}

	n, err := s.users.RemoveCourseFromAll(ctx, courseID)
	if err != nil {
		log.Error("failed to remove deleted course from enrollments",
			"course_id", courseID.Hex(),
			"error", redact.Error(err))
		return nil
	}
	log.Info("removed deleted course from enrollments", "course_id", courseID.Hex(), "users", n)
	return nil
}
