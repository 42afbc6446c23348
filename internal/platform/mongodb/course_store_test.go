package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const coursesNS = "coursehub.courses"

func courseDoc(id primitive.ObjectID, title string, extra ...bson.E) bson.D {
	doc := bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "createdAt", Value: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Key: "updatedAt", Value: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	return append(doc, extra...)
}

func TestCourseStoreCreate(t *testing.T) {
	mt := newMockT(t)

	mt.Run("assigns id", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		course, err := domain.NewCourse(map[string]interface{}{"title": "Intro", "level": "beginner"})
		require.NoError(mt, err)

		require.NoError(mt, s.Create(context.Background(), course))
		assert.False(mt, course.ID.IsZero())
	})
}

func TestCourseStoreList(t *testing.T) {
	mt := newMockT(t)

	mt.Run("decodes all courses with custom fields", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		first, second := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, coursesNS, mtest.FirstBatch,
			courseDoc(first, "Intro", bson.E{Key: "level", Value: "beginner"}),
			courseDoc(second, "Advanced"),
		))

		courses, err := s.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, courses, 2)
		assert.Equal(mt, first, courses[0].ID)
		assert.Equal(mt, "Intro", courses[0].Title)
		assert.Equal(mt, "beginner", courses[0].Fields["level"])
		assert.Equal(mt, "Advanced", courses[1].Title)
	})

	mt.Run("empty catalog is an empty slice", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, coursesNS, mtest.FirstBatch))

		courses, err := s.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, courses)
		assert.Empty(mt, courses)
	})
}

func TestCourseStoreGetByID(t *testing.T) {
	mt := newMockT(t)

	mt.Run("found", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, coursesNS, mtest.FirstBatch, courseDoc(id, "Intro")))

		course, err := s.GetByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, id, course.ID)
	})

	mt.Run("missing", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, coursesNS, mtest.FirstBatch))

		_, err := s.GetByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, store.ErrCourseNotFound)
	})
}

func TestCourseStoreUpdate(t *testing.T) {
	mt := newMockT(t)

	mt.Run("returns document after update", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "value", Value: courseDoc(id, "Renamed")},
		))

		course, err := s.Update(context.Background(), id, domain.CoursePatch{"title": "Renamed"})
		require.NoError(mt, err)
		assert.Equal(mt, "Renamed", course.Title)
	})

	mt.Run("missing", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := s.Update(context.Background(), primitive.NewObjectID(), domain.CoursePatch{"title": "X"})
		assert.ErrorIs(mt, err, store.ErrCourseNotFound)
	})
}

func TestCourseStoreDelete(t *testing.T) {
	mt := newMockT(t)

	mt.Run("deleted", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		assert.NoError(mt, s.Delete(context.Background(), primitive.NewObjectID()))
	})

	mt.Run("missing", func(mt *mtest.T) {
		s := NewCourseStore(mt.DB, time.Second, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := s.Delete(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, store.ErrCourseNotFound)
	})
}
