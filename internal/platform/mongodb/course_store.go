package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CourseStore implements the store.CourseStore interface
// using a MongoDB collection as the storage backend.
type CourseStore struct {
	courses *mongo.Collection
	timeout time.Duration
	logger  *slog.Logger
}

// Ensure CourseStore implements store.CourseStore interface
var _ store.CourseStore = (*CourseStore)(nil)

// NewCourseStore creates a CourseStore over the courses collection of db.
func NewCourseStore(db *mongo.Database, timeout time.Duration, logger *slog.Logger) *CourseStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &CourseStore{
		courses: db.Collection(CoursesCollection),
		timeout: timeout,
		logger:  logger.With("component", "course_store"),
	}
}

// Create implements store.CourseStore.Create
func (s *CourseStore) Create(ctx context.Context, course *domain.Course) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.courses.InsertOne(ctx, course)
	if err != nil {
		return store.NewStoreError("course", "create", "failed to insert course", MapError(err))
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		course.ID = id
	}

	s.logger.Debug("course created", "course_id", course.ID.Hex())
	return nil
}

// List implements store.CourseStore.List
func (s *CourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := s.courses.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, store.NewStoreError("course", "list", "failed to query courses", MapError(err))
	}

	var courses []*domain.Course
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, store.NewStoreError("course", "list", "failed to decode courses", MapError(err))
	}
	if courses == nil {
		courses = []*domain.Course{}
	}
	return courses, nil
}

// GetByID implements store.CourseStore.GetByID
func (s *CourseStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var course domain.Course
	if err := s.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		return nil, s.notFoundOr(err, "get", "failed to fetch course")
	}
	return &course, nil
}

// Update implements store.CourseStore.Update
func (s *CourseStore) Update(
	ctx context.Context,
	id primitive.ObjectID,
	patch domain.CoursePatch,
) (*domain.Course, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	set := bson.M{"updatedAt": time.Now().UTC()}
	for key, value := range patch {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var course domain.Course
	err := s.courses.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&course)
	if err != nil {
		return nil, s.notFoundOr(err, "update", "failed to update course")
	}
	return &course, nil
}

// Delete implements store.CourseStore.Delete
func (s *CourseStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.courses.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return store.NewStoreError("course", "delete", "failed to delete course", MapError(err))
	}
	if res.DeletedCount == 0 {
		return store.ErrCourseNotFound
	}
	return nil
}

func (s *CourseStore) notFoundOr(err error, op, message string) error {
	mapped := MapError(err)
	if errors.Is(mapped, store.ErrNotFound) {
		return store.ErrCourseNotFound
	}
	return store.NewStoreError("course", op, message, mapped)
}
