package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/store"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockUserStore is an in-memory store.UserStore.
type MockUserStore struct {
	CreateFn              func(ctx context.Context, user *domain.User) error
	GetByIDFn             func(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByUsernameFn       func(ctx context.Context, username string) (*domain.User, error)
	UpdateFn              func(ctx context.Context, user *domain.User) error
	AddEnrollmentFn       func(ctx context.Context, userID, courseID primitive.ObjectID) error
	RemoveCourseFromAllFn func(ctx context.Context, courseID primitive.ObjectID) (int64, error)

	mu        sync.Mutex
	users     map[primitive.ObjectID]*domain.User
	mutations int
}

var _ store.UserStore = (*MockUserStore)(nil)

// NewMockUserStore creates an empty MockUserStore.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[primitive.ObjectID]*domain.User)}
}

// Mutations returns how many mutating calls reached the store.
func (m *MockUserStore) Mutations() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutations
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// Seed inserts user directly, assigning an ID when it has none.
func (m *MockUserStore) Seed(user *domain.User) *domain.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = cloneUser(user)
	return user
}

// Create implements store.UserStore.
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.mutations++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	if err := user.Validate(); err != nil {
		return store.ErrInvalidEntity
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	user.ID = primitive.NewObjectID()
	m.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID implements store.UserStore.
func (m *MockUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// GetByUsername implements store.UserStore.
func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, store.ErrUserNotFound
}

// Update implements store.UserStore.
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	m.mutations++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	m.users[user.ID] = cloneUser(user)
	return nil
}

// AddEnrollment implements store.UserStore.
func (m *MockUserStore) AddEnrollment(ctx context.Context, userID, courseID primitive.ObjectID) error {
	m.mu.Lock()
	m.mutations++
	m.mu.Unlock()

	if m.AddEnrollmentFn != nil {
		return m.AddEnrollmentFn(ctx, userID, courseID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return store.ErrUserNotFound
	}
	if user.IsEnrolled(courseID) {
		return store.ErrAlreadyEnrolled
	}
	user.EnrolledCourses = append(user.EnrolledCourses, courseID)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

// RemoveCourseFromAll implements store.UserStore.
func (m *MockUserStore) RemoveCourseFromAll(ctx context.Context, courseID primitive.ObjectID) (int64, error) {
	m.mu.Lock()
	m.mutations++
	m.mu.Unlock()

	if m.RemoveCourseFromAllFn != nil {
		return m.RemoveCourseFromAllFn(ctx, courseID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var modified int64
	for _, user := range m.users {
		kept := user.EnrolledCourses[:0]
		for _, id := range user.EnrolledCourses {
			if id != courseID {
				kept = append(kept, id)
			}
		}
		if len(kept) != len(user.EnrolledCourses) {
			modified++
		}
		user.EnrolledCourses = kept
	}
	return modified, nil
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.EnrolledCourses = append([]primitive.ObjectID{}, u.EnrolledCourses...)
	if u.Profile != nil {
		c.Profile = make(map[string]interface{}, len(u.Profile))
		for k, v := range u.Profile {
			c.Profile[k] = v
		}
	}
	return &c
}
