// Package mocks provides shared test doubles for the store and auth interfaces.
//
// MockUserStore and MockCourseStore are in-memory fakes that behave like the
// MongoDB adapters (sentinel errors, atomic enrollment) and count mutating
// calls, so handler tests can assert that a rejected request changed nothing.
// Each method can be overridden through its Fn field.
//
// TestifyMockUserStore is a testify/mock double for tests that need to assert
// exact call expectations.
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
//	    return nil, store.ErrUserNotFound
//	}
package mocks
