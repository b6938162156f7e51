package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/libs/handlers"
	"go.uber.org/zap"
)

// UserLessonService is the interface that wraps methods for the student's catalogue and learning path
type UserLessonService interface {
	// GetCoursesList retrieves a paginated list of active courses with the user's progress
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "filter" holds the complexity level, search query, "mine" flag and pagination.
	//
	// Returns a list of courses and an error if any.
	GetCoursesList(ctx context.Context, userID int, filter models.CourseFilter) ([]models.CourseDetailResponse, error)
	// GetLessonsInCourse retrieves the details of a course and the user's learning path through it
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseSlug" is the slug of the course.
	//
	// Returns the course details, the lessons with their completed/unlocked/locked state, and an error if any.
	GetLessonsInCourse(ctx context.Context, userID int, courseSlug string) (*models.CourseDetailResponse, []models.LessonPathItem, error)
	// GetLesson retrieves the details of a lesson for a user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonSlug" is the slug of the lesson.
	//
	// Returns the lesson details with its state and the user's last result, and an error if any.
	GetLesson(ctx context.Context, userID int, lessonSlug string) (*models.LessonDetailResponse, error)
	// ResetCourseProgress erases the user's progress in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseSlug" is the slug of the course.
	//
	// Returns an error if any.
	ResetCourseProgress(ctx context.Context, userID int, courseSlug string) error
}

// UserLessonHandler handles HTTP requests for the catalogue and learning path
type UserLessonHandler struct {
	handlers.BaseHandler
	service UserLessonService
}

// NewUserLessonHandler creates a new user lesson handler
func NewUserLessonHandler(svc UserLessonService, logger *zap.Logger) *UserLessonHandler {
	return &UserLessonHandler{
		service:     svc,
		BaseHandler: handlers.BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all user lesson handler routes
func (h *UserLessonHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	// Full paths instead of sub-routers: the quiz and rank handlers register routes under the same prefixes.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/courses", h.GetCoursesList)
		r.Get("/courses/{slug}/lessons", h.GetLessonsInCourse)
		r.Delete("/courses/{slug}/progress", h.ResetCourseProgress)
		r.Get("/lessons/{slug}", h.GetLesson)
	})
}

// GetCoursesList handles GET /courses
// @Summary Get list of courses
// @Description Get a paginated list of courses with optional filtering by complexity level, search, and isMine flag
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param complexityLevel query string false "Complexity level (ab, b, i, ui, a) or full name"
// @Param search query string false "Search by course title"
// @Param isMine query bool false "Only courses the user has started"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.CourseDetailResponse "List of courses"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses [get]
func (h *UserLessonHandler) GetCoursesList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	complexityLevel, ok := parseComplexityLevel(r)
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid complexity level")
		return
	}
	page, count := handlers.Pagination(r, 10)

	filter := models.CourseFilter{
		ComplexityLevel: complexityLevel,
		Search:          r.URL.Query().Get("search"),
		IsMine:          r.URL.Query().Get("isMine") == "true",
		Page:            page,
		Count:           count,
	}

	courses, err := h.service.GetCoursesList(r.Context(), userID, filter)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get courses list")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// GetLessonsInCourse handles GET /courses/{slug}/lessons
// @Summary Get learning path of a course
// @Description Get course details with its lessons, each marked completed, unlocked or locked
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 200 {object} map[string]any{} "Course with lessons"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug}/lessons [get]
func (h *UserLessonHandler) GetLessonsInCourse(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	course, lessons, err := h.service.GetLessonsInCourse(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get lessons in course")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"course":  course,
		"lessons": lessons,
	})
}

// ResetCourseProgress handles DELETE /courses/{slug}/progress
// @Summary Reset course progress
// @Description Erase the user's results in a course so the learning path starts over
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 204 "Progress erased"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug}/progress [delete]
func (h *UserLessonHandler) ResetCourseProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	if err := h.service.ResetCourseProgress(r.Context(), userID, chi.URLParam(r, "slug")); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to reset course progress")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetLesson handles GET /lessons/{slug}
// @Summary Get lesson details
// @Description Get lesson details with its state in the learning path and the user's last result
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Lesson slug"
// @Success 200 {object} models.LessonDetailResponse "Lesson details"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{slug} [get]
func (h *UserLessonHandler) GetLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	lesson, err := h.service.GetLesson(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get lesson")
		return
	}

	h.RespondJSON(w, http.StatusOK, lesson)
}

// parseComplexityLevel reads the optional complexityLevel query parameter.
// ok is false when the parameter is set to an unknown level.
func parseComplexityLevel(r *http.Request) (*models.ComplexityLevel, bool) {
	raw := r.URL.Query().Get("complexityLevel")
	if raw == "" {
		return nil, true
	}
	level, ok := models.ParseComplexityLevel(raw)
	if !ok {
		return nil, false
	}
	return &level, true
}
