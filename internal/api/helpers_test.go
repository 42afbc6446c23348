package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/coursehub-api/internal/api/middleware"
	"github.com/phrazzld/coursehub-api/internal/config"
	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/mocks"
	"github.com/phrazzld/coursehub-api/internal/service"
	"github.com/phrazzld/coursehub-api/internal/service/auth"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-testing"

type testEnv struct {
	users   *mocks.MockUserStore
	courses *mocks.MockCourseStore
	jwt     auth.JWTService
	hasher  *mocks.MockPasswordHasher
	router  http.Handler
}

type envOption func(*config.Config)

func withCascade() envOption {
	return func(c *config.Config) { c.Courses.CascadeEnrollments = true }
}

func withAdmins(names ...string) envOption {
	return func(c *config.Config) { c.Auth.AdminUsernames = names }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Auth: config.AuthConfig{JWTSecret: testSecret, TokenLifetimeMinutes: 60},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	require.NoError(t, err)

	env := &testEnv{
		users:   mocks.NewMockUserStore(),
		courses: mocks.NewMockCourseStore(),
		jwt:     jwtService,
		hasher:  &mocks.MockPasswordHasher{},
	}

	r := chi.NewRouter()
	r.Use(middleware.TraceMiddleware)
	r.Route("/api", Handlers{
		Auth:    NewAuthHandler(env.users, jwtService, env.hasher, cfg.Auth),
		Courses: NewCourseHandler(env.courses, env.users,
			service.NewEnrollmentService(env.courses, env.users, cfg.Courses, slog.Default())),
		Gate:    middleware.NewAuthMiddleware(jwtService, env.users),
	}.Mount)
	env.router = r

	return env
}

// seedUser stores a user directly and returns a token for it.
func (e *testEnv) seedUser(t *testing.T, username string, role domain.Role) (*domain.User, string) {
	t.Helper()

	user, err := domain.NewUser(username, "hashed:pw", role, nil)
	require.NoError(t, err)
	e.users.Seed(user)

	token, err := e.jwt.GenerateToken(context.Background(), user.ID, role)
	require.NoError(t, err)
	return user, token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(strings.NewReader(rr.Body.String())).Decode(&out), rr.Body.String())
	return out
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	msg, _ := decodeBody(t, rr)["error"].(string)
	return msg
}
