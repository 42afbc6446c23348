package mongodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserStore implements the store.UserStore interface
// using a MongoDB collection as the storage backend.
type UserStore struct {
	users   *mongo.Collection
	timeout time.Duration
	logger  *slog.Logger
}

// Ensure UserStore implements store.UserStore interface
var _ store.UserStore = (*UserStore)(nil)

// NewUserStore creates a UserStore over the users collection of db.
// Every call is bounded by timeout.
func NewUserStore(db *mongo.Database, timeout time.Duration, logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		users:   db.Collection(UsersCollection),
		timeout: timeout,
		logger:  logger.With("component", "user_store"),
	}
}

// EnsureIndexes creates the unique username index.
func (s *UserStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_1"),
	})
	if err != nil {
		return store.NewStoreError("user", "create index", "failed to create username index", MapError(err))
	}
	return nil
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			return store.ErrUsernameExists
		}
		return store.NewStoreError("user", "create", "failed to insert user", mapped)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	s.logger.Debug("user created", "user_id", user.ID.Hex())
	return nil
}

// GetByID implements store.UserStore.GetByID
func (s *UserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"_id": id}, "get by id")
}

// GetByUsername implements store.UserStore.GetByUsername
func (s *UserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findOne(ctx, bson.M{"username": username}, "get by username")
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M, op string) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var user domain.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, store.NewStoreError("user", op, "failed to fetch user", mapped)
	}
	return &user, nil
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	user.UpdatedAt = time.Now().UTC()
	res, err := s.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrDuplicate) {
			return store.ErrUsernameExists
		}
		return store.NewStoreError("user", "update", "failed to replace user", mapped)
	}
	if res.MatchedCount == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// AddEnrollment implements store.UserStore.AddEnrollment.
// The filter only matches while courseID is absent, so concurrent enrollments
// of the same user cannot both succeed.
func (s *UserStore) AddEnrollment(ctx context.Context, userID, courseID primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{
		"_id":             userID,
		"enrolledCourses": bson.M{"$ne": courseID},
	}
	update := bson.M{
		"$addToSet": bson.M{"enrolledCourses": courseID},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	}

	res, err := s.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return store.NewStoreError("user", "enroll", "failed to add enrollment", MapError(err))
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Nothing matched: either the user is gone or the course is already there.
	n, err := s.users.CountDocuments(ctx, bson.M{"_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return store.NewStoreError("user", "enroll", "failed to check user", MapError(err))
	}
	if n == 0 {
		return store.ErrUserNotFound
	}
	return store.ErrAlreadyEnrolled
}

// RemoveCourseFromAll implements store.UserStore.RemoveCourseFromAll
func (s *UserStore) RemoveCourseFromAll(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.users.UpdateMany(ctx,
		bson.M{"enrolledCourses": courseID},
		bson.M{"$pull": bson.M{"enrolledCourses": courseID}},
	)
	if err != nil {
		return 0, store.NewStoreError("user", "unenroll all", "failed to pull course", MapError(err))
	}
	return res.ModifiedCount, nil
}
