package store

import (
	"context"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CourseStore defines the interface for course catalog persistence.
type CourseStore interface {
	// Create saves a new course and sets its store-assigned ID.
	Create(ctx context.Context, course *domain.Course) error

	// List returns every course, oldest first.
	List(ctx context.Context) ([]*domain.Course, error)

	// GetByID retrieves a course by ID.
	// Returns ErrCourseNotFound if the course does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)

	// Update applies patch and returns the course as it is after the update.
	// Returns ErrCourseNotFound if the course does not exist.
	Update(ctx context.Context, id primitive.ObjectID, patch domain.CoursePatch) (*domain.Course, error)

	// Delete removes a course.
	// Returns ErrCourseNotFound if the course does not exist.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
