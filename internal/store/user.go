package store

import (
	"context"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user and sets its store-assigned ID.
	// Returns ErrUsernameExists if the username is already taken.
	// Returns ErrInvalidEntity if the user fails domain validation.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)

	// GetByUsername retrieves a user by username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Update persists mutations to an existing user.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// AddEnrollment atomically adds courseID to the user's enrollment set.
	// Returns ErrAlreadyEnrolled if it is already present and
	// ErrUserNotFound if the user does not exist.
	AddEnrollment(ctx context.Context, userID, courseID primitive.ObjectID) error

	// RemoveCourseFromAll pulls courseID from every user's enrollment set and
	// returns the number of users modified.
	RemoveCourseFromAll(ctx context.Context, courseID primitive.ObjectID) (int64, error)
}
