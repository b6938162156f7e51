package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/learnpath/backend/internal/models"
	authMiddleware "github.com/learnpath/backend/libs/auth/middleware"
	authService "github.com/learnpath/backend/libs/auth/service"
	"github.com/learnpath/backend/libs/handlers"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps methods for tutor and admin course management
type AdminService interface {
	// GetCourses retrieves a list of courses for a tutor
	//
	// "ctx" is the context for the request.
	// "tutorID" is the ID of the tutor (optional, if nil, all courses are being retrieved by an admin).
	// "complexityLevel" is the complexity level of the courses to retrieve.
	// "search" is the search query for the courses.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of courses and an error if any.
	GetCourses(ctx context.Context, tutorID *int, complexityLevel *models.ComplexityLevel, search string, page, count int) ([]models.CourseListItem, error)
	// CreateCourse creates a new course
	//
	// "ctx" is the context for the request.
	// "tutorID" is the ID of the tutor (optional, if nil, the course is being created by an admin for req.AuthorID).
	// "req" is the request to create a course.
	//
	// Returns the ID of the created course and an error if any.
	CreateCourse(ctx context.Context, tutorID *int, req *models.CreateCourseRequest) (int, error)
	// UpdateCourse updates a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "tutorID" is the ID of the tutor (optional, if nil, the course is being updated by an admin).
	// "req" is the request to update a course.
	//
	// Returns an error if any.
	UpdateCourse(ctx context.Context, courseID int, tutorID *int, req *models.UpdateCourseRequest) error
	// DeleteCourse deletes a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "tutorID" is the ID of the tutor (optional, if nil, the course is being deleted by an admin).
	//
	// Returns an error if any.
	DeleteCourse(ctx context.Context, courseID int, tutorID *int) error
	// GetLessonsForCourse retrieves a course with all of its lessons
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "tutorID" is the ID of the tutor (optional, if nil, the lessons are being retrieved by an admin).
	//
	// Returns the course and a list of lessons and an error if any.
	GetLessonsForCourse(ctx context.Context, courseID int, tutorID *int) (*models.Course, []models.Lesson, error)
	// CreateLesson creates a new lesson
	//
	// "ctx" is the context for the request.
	// "tutorID" is the ID of the tutor (optional, if nil, the lesson is being created by an admin).
	// "req" is the request to create a lesson.
	//
	// Returns the ID of the created lesson and an error if any.
	CreateLesson(ctx context.Context, tutorID *int, req *models.CreateLessonRequest) (int, error)
	// UpdateLesson updates a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "tutorID" is the ID of the tutor (optional, if nil, the lesson is being updated by an admin).
	// "req" is the request to update a lesson.
	//
	// Returns an error if any.
	UpdateLesson(ctx context.Context, lessonID int, tutorID *int, req *models.UpdateLessonRequest) error
	// DeleteLesson deletes a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "tutorID" is the ID of the tutor (optional, if nil, the lesson is being deleted by an admin).
	//
	// Returns an error if any.
	DeleteLesson(ctx context.Context, lessonID int, tutorID *int) error
	// GetQuestions retrieves the questions of a lesson including their correct answers
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	// "tutorID" is the ID of the tutor (optional, if nil, the questions are being retrieved by an admin).
	//
	// Returns a list of questions and an error if any.
	GetQuestions(ctx context.Context, lessonID int, tutorID *int) ([]models.Question, error)
	// CreateQuestion creates a question with its options
	//
	// "ctx" is the context for the request.
	// "tutorID" is the ID of the tutor (optional, if nil, the question is being created by an admin).
	// "req" is the request to create a question.
	//
	// Returns the created question and an error if any.
	CreateQuestion(ctx context.Context, tutorID *int, req *models.CreateQuestionRequest) (*models.Question, error)
	// DeleteQuestion deletes a question
	//
	// "ctx" is the context for the request.
	// "questionID" is the ID of the question.
	// "tutorID" is the ID of the tutor (optional, if nil, the question is being deleted by an admin).
	//
	// Returns an error if any.
	DeleteQuestion(ctx context.Context, questionID int, tutorID *int) error
}

// ReconcileEnqueuer schedules a reconciliation run on the worker
type ReconcileEnqueuer interface {
	// EnqueueReconcile enqueues a reconciliation of one user's course completion, or of every user when userID is nil
	EnqueueReconcile(ctx context.Context, userID *int) error
}

// AdminHandler handles HTTP requests for tutor and admin course management
type AdminHandler struct {
	handlers.BaseHandler
	service  AdminService
	enqueuer ReconcileEnqueuer
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(svc AdminService, enqueuer ReconcileEnqueuer, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service:     svc,
		enqueuer:    enqueuer,
		BaseHandler: handlers.BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all admin handler routes.
// tutorMiddleware guards course management; adminMiddleware guards maintenance routes.
func (h *AdminHandler) RegisterRoutes(r chi.Router, tutorMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(tutorMiddleware)
			r.Route("/courses", func(r chi.Router) {
				r.Get("/", h.GetCourses)
				r.Post("/", h.CreateCourse)
				r.Get("/{id}/lessons", h.GetLessonsForCourse)
				r.Patch("/{id}", h.UpdateCourse)
				r.Delete("/{id}", h.DeleteCourse)
			})
			r.Route("/lessons", func(r chi.Router) {
				r.Post("/", h.CreateLesson)
				r.Get("/{id}/questions", h.GetQuestions)
				r.Patch("/{id}", h.UpdateLesson)
				r.Delete("/{id}", h.DeleteLesson)
			})
			r.Route("/questions", func(r chi.Router) {
				r.Post("/", h.CreateQuestion)
				r.Delete("/{id}", h.DeleteQuestion)
			})
		})
		r.With(adminMiddleware).Post("/reconcile", h.Reconcile)
	})
}

// getTutorID returns the caller's ID when they are a tutor, or nil for an admin
func (h *AdminHandler) getTutorID(w http.ResponseWriter, r *http.Request) (*int, bool) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return nil, false
	}
	if role, _ := authMiddleware.GetRole(r.Context()); role >= authService.RoleAdmin {
		return nil, true
	}
	return &userID, true
}

// GetCourses handles GET /admin/courses
// @Summary Get list of managed courses
// @Description Get paginated list of the tutor's courses, or of all courses for an admin
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param complexityLevel query string false "Complexity level (ab, b, i, ui, a) or full name"
// @Param search query string false "Search query"
// @Param page query int false "Page number (default: 1)"
// @Param count query int false "Items per page (default: 10)"
// @Success 200 {array} models.CourseListItem "List of courses"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses [get]
func (h *AdminHandler) GetCourses(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	complexityLevel, ok := parseComplexityLevel(r)
	if !ok {
		h.RespondError(w, http.StatusBadRequest, "invalid complexity level")
		return
	}
	page, count := handlers.Pagination(r, 10)

	courses, err := h.service.GetCourses(r.Context(), tutorID, complexityLevel, r.URL.Query().Get("search"), page, count)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get courses")
		return
	}

	h.RespondJSON(w, http.StatusOK, courses)
}

// CreateCourse handles POST /admin/courses
// @Summary Create a course
// @Description Create a new course. Tutors author their own courses; admins must set authorId.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateCourseRequest true "Course creation request"
// @Success 201 {object} map[string]any "Course created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses [post]
func (h *AdminHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	var req models.CreateCourseRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	courseID, err := h.service.CreateCourse(r.Context(), tutorID, &req)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to create course")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      courseID,
		"message": "course created successfully",
	})
}

// UpdateCourse handles PATCH /admin/courses/{id}
// @Summary Update a course
// @Description Update a course (partial update)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body models.UpdateCourseRequest true "Course update request"
// @Success 204 "Course updated successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{id} [patch]
func (h *AdminHandler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	courseID, err := handlers.IntURLParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateCourseRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateCourse(r.Context(), courseID, tutorID, &req); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to update course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /admin/courses/{id}
// @Summary Delete a course
// @Description Delete a course with its lessons, questions and progress
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "Course deleted successfully"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{id} [delete]
func (h *AdminHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	courseID, err := handlers.IntURLParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteCourse(r.Context(), courseID, tutorID); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetLessonsForCourse handles GET /admin/courses/{id}/lessons
// @Summary Get lessons of a course
// @Description Get a course with all of its lessons, including inactive ones
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} map[string]any{} "Course with lessons"
// @Failure 400 {object} map[string]string "Invalid course ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/courses/{id}/lessons [get]
func (h *AdminHandler) GetLessonsForCourse(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	courseID, err := handlers.IntURLParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	course, lessons, err := h.service.GetLessonsForCourse(r.Context(), courseID, tutorID)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get lessons for course")
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]any{
		"course":  course,
		"lessons": lessons,
	})
}

// CreateLesson handles POST /admin/lessons
// @Summary Create a lesson
// @Description Create a lesson. A lesson already at the order position is moved one position later with every lesson after it.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateLessonRequest true "Lesson creation request"
// @Success 201 {object} map[string]any "Lesson created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/lessons [post]
func (h *AdminHandler) CreateLesson(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	var req models.CreateLessonRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	lessonID, err := h.service.CreateLesson(r.Context(), tutorID, &req)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to create lesson")
		return
	}

	h.RespondJSON(w, http.StatusCreated, map[string]any{
		"id":      lessonID,
		"message": "lesson created successfully",
	})
}

// UpdateLesson handles PATCH /admin/lessons/{id}
// @Summary Update a lesson
// @Description Update a lesson (partial update)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Param request body models.UpdateLessonRequest true "Lesson update request"
// @Success 204 "Lesson updated successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 409 {object} map[string]string "Slug already taken"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/lessons/{id} [patch]
func (h *AdminHandler) UpdateLesson(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	lessonID, err := handlers.IntURLParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req models.UpdateLessonRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.UpdateLesson(r.Context(), lessonID, tutorID, &req); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to update lesson")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteLesson handles DELETE /admin/lessons/{id}
// @Summary Delete a lesson
// @Description Delete a lesson with its questions and responses
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 204 "Lesson deleted successfully"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/lessons/{id} [delete]
func (h *AdminHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	lessonID, err := handlers.IntURLParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteLesson(r.Context(), lessonID, tutorID); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to delete lesson")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetQuestions handles GET /admin/lessons/{id}/questions
// @Summary Get questions of a lesson
// @Description Get the questions of a lesson with their options and correct answers
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lesson ID"
// @Success 200 {array} models.Question "Questions"
// @Failure 400 {object} map[string]string "Invalid lesson ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/lessons/{id}/questions [get]
func (h *AdminHandler) GetQuestions(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	lessonID, err := handlers.IntURLParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	questions, err := h.service.GetQuestions(r.Context(), lessonID, tutorID)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get questions")
		return
	}

	h.RespondJSON(w, http.StatusOK, questions)
}

// CreateQuestion handles POST /admin/questions
// @Summary Create a question
// @Description Create a multiple-choice question with its options and the index of the correct one
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.CreateQuestionRequest true "Question creation request"
// @Success 201 {object} models.Question "Created question"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/questions [post]
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	var req models.CreateQuestionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	question, err := h.service.CreateQuestion(r.Context(), tutorID, &req)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to create question")
		return
	}

	h.RespondJSON(w, http.StatusCreated, question)
}

// DeleteQuestion handles DELETE /admin/questions/{id}
// @Summary Delete a question
// @Description Delete a question with its options
// @Tags admin
// @Security BearerAuth
// @Param id path int true "Question ID"
// @Success 204 "Question deleted successfully"
// @Failure 400 {object} map[string]string "Invalid question ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not the author"
// @Failure 404 {object} map[string]string "Question not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/questions/{id} [delete]
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	tutorID, ok := h.getTutorID(w, r)
	if !ok {
		return
	}

	questionID, err := handlers.IntURLParam(r, "id")
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.DeleteQuestion(r.Context(), questionID, tutorID); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to delete question")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reconcile handles POST /admin/reconcile
// @Summary Reconcile course completion
// @Description Enqueue a background re-derivation of course completion from lesson results
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId query int false "Only reconcile this user"
// @Success 202 {object} map[string]string "Reconciliation enqueued"
// @Failure 400 {object} map[string]string "Invalid user ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient permissions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/reconcile [post]
func (h *AdminHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var userID *int
	if raw := r.URL.Query().Get("userId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			h.RespondError(w, http.StatusBadRequest, "invalid userId")
			return
		}
		userID = &id
	}

	if err := h.enqueuer.EnqueueReconcile(r.Context(), userID); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to enqueue reconciliation")
		return
	}

	h.RespondJSON(w, http.StatusAccepted, map[string]string{"message": "reconciliation enqueued"})
}
