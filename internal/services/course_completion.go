package services

import (
	"context"

	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/models"
	"go.uber.org/zap"
)

// courseCompletionHealer corrects a stored course response that disagrees with the
// completion derived from lesson responses
type courseCompletionHealer struct {
	courseResponseRepo CourseResponseRepository
	cache              cache.ReadCache
	logger             *zap.Logger
}

func newCourseCompletionHealer(courseResponseRepo CourseResponseRepository, readCache cache.ReadCache, logger *zap.Logger) *courseCompletionHealer {
	return &courseCompletionHealer{
		courseResponseRepo: courseResponseRepo,
		cache:              readCache,
		logger:             logger,
	}
}

// needsUpdate reports whether the stored course response must be rewritten.
// An absent response needs writing once the course is completed, or always when started is set.
func needsUpdate(stored *models.CourseResponse, derived, started bool) bool {
	if stored == nil {
		return derived || started
	}
	return stored.IsCompleted != derived
}

// heal rewrites the course response when needed and reports whether it did.
// started tells that the user is known to have lesson progress in the course, so a missing
// response is created as not completed. Failures are logged and swallowed.
func (h *courseCompletionHealer) heal(ctx context.Context, userID, courseID int, derived, started bool) bool {
	log := h.logger.With(zap.Int("user_id", userID), zap.Int("course_id", courseID))

	stored, err := h.courseResponseRepo.GetByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		log.Error("failed to read course response", zap.Error(err))
		return false
	}
	if !needsUpdate(stored, derived, started) {
		return false
	}

	if stored == nil && !derived {
		err = h.courseResponseRepo.EnsureStarted(ctx, userID, courseID)
	} else {
		err = h.courseResponseRepo.Upsert(ctx, &models.CourseResponse{UserID: userID, CourseID: courseID, IsCompleted: derived})
	}
	if err != nil {
		log.Error("failed to correct course response", zap.Bool("is_completed", derived), zap.Error(err))
		return false
	}
	log.Info("course response corrected", zap.Bool("is_completed", derived))

	if err := h.cache.Invalidate(ctx, cache.CourseResponsesKey(userID)); err != nil {
		log.Warn("failed to invalidate course responses cache", zap.Error(err))
	}
	return true
}
