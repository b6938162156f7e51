package handlers

import (
	"errors"
	"net/http"

	"github.com/learnpath/backend/internal/models"
	authMiddleware "github.com/learnpath/backend/libs/auth/middleware"
	"github.com/learnpath/backend/libs/handlers"
	"go.uber.org/zap"
)

// errorStatus maps service errors to HTTP status codes
func errorStatus(err error) int {
	var verr *handlers.ValidationError
	switch {
	case errors.As(err, &verr), errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, models.ErrCourseNotFound),
		errors.Is(err, models.ErrLessonNotFound),
		errors.Is(err, models.ErrQuestionNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrLessonLocked),
		errors.Is(err, models.ErrLessonHasNoQuiz),
		errors.Is(err, models.ErrInvalidTransition),
		errors.Is(err, models.ErrNoSelection),
		errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err with its mapped status. Internal errors are logged and their
// details are not exposed.
func respondServiceError(h *handlers.BaseHandler, w http.ResponseWriter, err error, message string) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error(message, zap.Error(err))
		h.RespondError(w, status, message)
		return
	}
	h.RespondError(w, status, err.Error())
}

// requireUserID reads the authenticated user from the request context and answers 401 when missing
func requireUserID(h *handlers.BaseHandler, w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := authMiddleware.GetUserID(r.Context())
	if !ok {
		h.Logger.Error("user ID not found in context")
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return 0, false
	}
	return userID, true
}
