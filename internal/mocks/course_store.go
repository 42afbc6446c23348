package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockCourseStore is an in-memory store.CourseStore.
type MockCourseStore struct {
	CreateFn  func(ctx context.Context, course *domain.Course) error
	ListFn    func(ctx context.Context) ([]*domain.Course, error)
	GetByIDFn func(ctx context.Context, id primitive.ObjectID) (*domain.Course, error)
	UpdateFn  func(ctx context.Context, id primitive.ObjectID, patch domain.CoursePatch) (*domain.Course, error)
	DeleteFn  func(ctx context.Context, id primitive.ObjectID) error

	mu        sync.Mutex
	courses   map[primitive.ObjectID]*domain.Course
	mutations int
}

var _ store.CourseStore = (*MockCourseStore)(nil)

// NewMockCourseStore creates an empty MockCourseStore.
func NewMockCourseStore() *MockCourseStore {
	return &MockCourseStore{courses: make(map[primitive.ObjectID]*domain.Course)}
}

// Mutations returns how many mutating calls reached the store.
func (m *MockCourseStore) Mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutations
}

// Seed inserts course directly, assigning an ID when it has none.
func (m *MockCourseStore) Seed(course *domain.Course) *domain.Course {
	m.mu.Lock()
	defer m.mu.Unlock()
	if course.ID.IsZero() {
		course.ID = primitive.NewObjectID()
	}
	m.courses[course.ID] = cloneCourse(course)
	return course
}

// Create implements store.CourseStore.
func (m *MockCourseStore) Create(ctx context.Context, course *domain.Course) error {
	m.mu.Lock()
	m.mutations++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, course)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	course.ID = primitive.NewObjectID()
	m.courses[course.ID] = cloneCourse(course)
	return nil
}

// List implements store.CourseStore.
func (m *MockCourseStore) List(ctx context.Context) ([]*domain.Course, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.Course, 0, len(m.courses))
	for _, c := range m.courses {
		out = append(out, cloneCourse(c))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.Hex() < out[j].ID.Hex()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// GetByID implements store.CourseStore.
func (m *MockCourseStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return nil, store.ErrCourseNotFound
	}
	return cloneCourse(c), nil
}

// Update implements store.CourseStore.
func (m *MockCourseStore) Update(
	ctx context.Context,
	id primitive.ObjectID,
	patch domain.CoursePatch,
) (*domain.Course, error) {
	m.mu.Lock()
	m.mutations++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, patch)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return nil, store.ErrCourseNotFound
	}
	for key, value := range patch {
		switch key {
		case "title":
			c.Title = value.(string)
		case "description":
			c.Description = value.(string)
		default:
			if c.Fields == nil {
				c.Fields = map[string]interface{}{}
			}
			c.Fields[key] = value
		}
	}
	c.UpdatedAt = time.Now().UTC()
	return cloneCourse(c), nil
}

// Delete implements store.CourseStore.
func (m *MockCourseStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	m.mutations++
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[id]; !ok {
		return store.ErrCourseNotFound
	}
	delete(m.courses, id)
	return nil
}

func cloneCourse(c *domain.Course) *domain.Course {
	out := *c
	if c.Fields != nil {
		out.Fields = make(map[string]interface{}, len(c.Fields))
		for k, v := range c.Fields {
			out.Fields[k] = v
		}
	}
	return &out
}
