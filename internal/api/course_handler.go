package api

import (
	"net/http"

	"github.com/phrazzld/coursehub-api/internal/api/shared"
	"github.com/phrazzld/coursehub-api/internal/domain"
	"github.com/phrazzld/coursehub-api/internal/platform/logger"
	"github.com/phrazzld/coursehub-api/internal/service"
	"github.com/phrazzld/coursehub-api/internal/store"
)

// CourseHandler serves the course catalog, its admin mutations and enrollment.
type CourseHandler struct {
	courseStore store.CourseStore
	userStore   store.UserStore
	enrollment  service.EnrollmentService
}

// NewCourseHandler creates a new CourseHandler with the given dependencies.
func NewCourseHandler(
	courseStore store.CourseStore,
	userStore store.UserStore,
	enrollment service.EnrollmentService,
) *CourseHandler {
	return &CourseHandler{
		courseStore: courseStore,
		userStore:   userStore,
		enrollment:  enrollment,
	}
}

// ListCourses handles GET /api/courses.
func (h *CourseHandler) ListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Error fetching courses")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, courses)
}

// GetCourse handles GET /api/courses/{id}.
func (h *CourseHandler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	course, err := h.courseStore.GetByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// CreateCourse handles POST /api/admin/courses.
func (h *CourseHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	course, err := domain.NewCourse(fields)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.courseStore.Create(r.Context(), course); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	logger.FromContext(r.Context()).Info("course created", "course_id", course.ID.Hex())
	shared.RespondWithJSON(w, r, http.StatusCreated, course)
}

// UpdateCourse handles PUT /api/admin/courses/{id}.
func (h *CourseHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}
	fields, ok := decodeFields(w, r)
	if !ok {
		return
	}

	patch, err := domain.NewCoursePatch(fields)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	course, err := h.courseStore.Update(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, course)
}

// DeleteCourse handles DELETE /api/admin/courses/{id}.
func (h *CourseHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.enrollment.DeleteCourse(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Course deleted successfully")
}

// Enroll handles POST /api/users/enroll/{courseId} for the calling user.
func (h *CourseHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}
	courseID, ok := handlePathID(w, r, "courseId")
	if !ok {
		return
	}

	if err := h.enrollment.Enroll(r.Context(), principal.UserID, courseID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithMessage(w, r, http.StatusOK, "Enrolled successfully")
}

// Me handles GET /api/users/me.
func (h *CourseHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := requirePrincipal(w, r)
	if !ok {
		return
	}

	user, err := h.userStore.GetByID(r.Context(), principal.UserID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

func decodeFields(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var fields map[string]interface{}
	if err := shared.DecodeJSON(r, &fields); err != nil {
		respondDecodeError(w, r, err)
		return nil, false
	}
	return fields, true
}
