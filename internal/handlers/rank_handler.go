package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/libs/handlers"
	"go.uber.org/zap"
)

// RankService is the interface that wraps methods for course rankings
type RankService interface {
	// GetCourseRank computes the user's rank in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseSlug" is the slug of the course.
	//
	// Returns the rank (nil rank when the user has no score), the cohort size and an error if any.
	GetCourseRank(ctx context.Context, userID int, courseSlug string) (*models.CourseRank, error)
	// GetMyRanks computes the user's rank in every course they have progress in
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns a list of course ranks and an error if any.
	GetMyRanks(ctx context.Context, userID int) ([]models.CourseRank, error)
	// GetLeaderboard retrieves the top standings of a course
	//
	// "ctx" is the context for the request.
	// "courseSlug" is the slug of the course.
	// "limit" is the number of entries to return (default 10, at most 100).
	//
	// Returns the leaderboard and an error if any.
	GetLeaderboard(ctx context.Context, courseSlug string, limit int) ([]models.LeaderboardEntry, error)
}

// RankHandler handles HTTP requests for rankings
type RankHandler struct {
	handlers.BaseHandler
	service RankService
}

// NewRankHandler creates a new rank handler
func NewRankHandler(svc RankService, logger *zap.Logger) *RankHandler {
	return &RankHandler{
		service:     svc,
		BaseHandler: handlers.BaseHandler{Logger: logger},
	}
}

// RegisterRoutes registers all rank handler routes
func (h *RankHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/courses/{slug}/rank", h.GetCourseRank)
		r.Get("/courses/{slug}/leaderboard", h.GetLeaderboard)
		r.Get("/ranks", h.GetMyRanks)
	})
}

// GetCourseRank handles GET /courses/{slug}/rank
// @Summary Get my rank in a course
// @Description Rank of the user among everyone with a score in the course, by total correct answers
// @Tags ranks
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Success 200 {object} models.CourseRank "Rank in course"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug}/rank [get]
func (h *RankHandler) GetCourseRank(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	rank, err := h.service.GetCourseRank(r.Context(), userID, chi.URLParam(r, "slug"))
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get course rank")
		return
	}

	h.RespondJSON(w, http.StatusOK, rank)
}

// GetMyRanks handles GET /ranks
// @Summary Get my ranks
// @Description Rank of the user in every course they have progress in
// @Tags ranks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.CourseRank "Ranks"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /ranks [get]
func (h *RankHandler) GetMyRanks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(&h.BaseHandler, w, r)
	if !ok {
		return
	}

	ranks, err := h.service.GetMyRanks(r.Context(), userID)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get ranks")
		return
	}

	h.RespondJSON(w, http.StatusOK, ranks)
}

// GetLeaderboard handles GET /courses/{slug}/leaderboard
// @Summary Get course leaderboard
// @Description Top users of a course by total correct answers
// @Tags ranks
// @Produce json
// @Security BearerAuth
// @Param slug path string true "Course slug"
// @Param limit query int false "Number of entries (default: 10, max: 100)"
// @Success 200 {array} models.LeaderboardEntry "Leaderboard"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Course not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /courses/{slug}/leaderboard [get]
func (h *RankHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil || l < 1 {
			h.RespondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = l
	}

	board, err := h.service.GetLeaderboard(r.Context(), chi.URLParam(r, "slug"), limit)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "failed to get leaderboard")
		return
	}

	h.RespondJSON(w, http.StatusOK, board)
}
