package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/libs/handlers"
	"go.uber.org/zap"
)

// QuizService is the interface that wraps methods for playing through a lesson's questions
type QuizService interface {
	// StartLesson opens a play session on an unlocked lesson
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "lessonSlug" is the slug of the lesson.
	//
	// Returns the session on its first question, models.ErrLessonLocked when earlier lessons are not
	// completed, models.ErrLessonHasNoQuiz when the lesson has no questions.
	StartLesson(ctx context.Context, userID int, lessonSlug string) (*models.SessionView, error)
	// SelectOption records the option the user picked for the current question
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user owning the session.
	// "sessionID" is the ID of the session.
	// "answerID" is the ID of the chosen option.
	//
	// Returns the updated session and an error if any.
	SelectOption(ctx context.Context, userID int, sessionID string, answerID int) (*models.SessionView, error)
	// CheckAnswer reveals whether the selected option is correct
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user owning the session.
	// "sessionID" is the ID of the session.
	//
	// Returns the check result, models.ErrNoSelection when nothing is selected.
	CheckAnswer(ctx context.Context, userID int, sessionID string) (*models.CheckResult, error)
	// Next moves to the following question or finalizes the lesson after the last one
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user owning the session.
	// "sessionID" is the ID of the session.
	//
	// Returns either the session on its next question or the lesson summary, and an error if any.
	Next(ctx context.Context, userID int, sessionID string) (*models.NextResult, error)
	// Abandon drops a session without recording a lesson result
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user owning the session.
	// "sessionID" is the ID of the session.
	//
	// Returns an error if any.
	Abandon(ctx context.Context, userID int, sessionID string) error
}

// QuizHandler handles HTTP requests for lesson play sessions
type QuizHandler struct {
	handlers.BaseHandler
	service QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(svc QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		service:     svc,
		BaseHandler: handlers.BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all quiz handler routes
func (h *QuizHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/lessons/{slug}/sessions", h.StartLesson)
		r.Post("/sessions/{id}/select", h.SelectOption)
		r.Post("/sessions/{id}/check", h.CheckAnswer)
		r.Post("/sessions/{id}/next", h.Next)
		r.Delete("/sessions/{id}", h.Abandon)
	})
}

// selectOptionRequest is the body of POST /sessions/{id}/select
type selectOptionRequest struct {
	AnswerID int `json:"answerId" validate:"required,gt=0"`
}

// StartLesson handles POST /lessons/{slug}/sessions
// @Summary Start a lesson
// @Description Open a play session on an unlocked lesson and return its first question
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Lesson slug"
// @Success 201 {object} models.SessionView "Session on its first question"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 409 {object} map[string]string "Lesson locked or without questions"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{slug}/sessions [post]
func (h *QuizHandler) StartLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	view, err := h.service.StartLesson(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to start lesson")
		return
	}

	h.RespondJSON(w, http.StatusCreated, view)
}

// SelectOption handles POST /sessions/{id}/select
// @Summary Select an option
// @Description Select an option of the current question. Selecting again replaces the selection.
// @Tags quiz
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body selectOptionRequest true "Chosen option"
// @Success 200 {object} models.SessionView "Updated session"
// @Failure 400 {object} map[string]string "Invalid request body or option"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Answer already checked"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sessions/{id}/select [post]
func (h *QuizHandler) SelectOption(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	var req selectOptionRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := h.service.SelectOption(r.Context(), userID, chi.URLParam(r, "id"), req.AnswerID)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to select option")
		return
	}

	h.RespondJSON(w, http.StatusOK, view)
}

// CheckAnswer handles POST /sessions/{id}/check
// @Summary Check the selected answer
// @Description Reveal whether the selected option is correct and record the attempt
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} models.CheckResult "Check result"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Nothing selected or already checked"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sessions/{id}/check [post]
func (h *QuizHandler) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	result, err := h.service.CheckAnswer(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to check answer")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// Next handles POST /sessions/{id}/next
// @Summary Go to the next question
// @Description Move to the next question, or finish the lesson after the last one
// @Tags quiz
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 200 {object} models.NextResult "Next question or lesson summary"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Answer not checked yet"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sessions/{id}/next [post]
func (h *QuizHandler) Next(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	result, err := h.service.Next(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to advance session")
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// Abandon handles DELETE /sessions/{id}
// @Summary Abandon a session
// @Description Drop a play session without recording a lesson result
// @Tags quiz
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Success 204 "Session abandoned"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sessions/{id} [delete]
func (h *QuizHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	if err := h.service.Abandon(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to abandon session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
