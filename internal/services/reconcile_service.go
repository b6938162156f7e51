package services

import (
	"context"
	"fmt"

	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progression"
	"go.uber.org/zap"
)

// UserCourseRepository defines methods for listing users' progress
type UserCourseRepository interface {
	// GetUserCoursePairs lists the (user, course) pairs that have lesson responses
	//
	// "ctx" is the context for the request.
	// "userID" limits the list to one user when not nil.
	//
	// Returns the pairs ordered by user and course and an error if any.
	GetUserCoursePairs(ctx context.Context, userID *int) ([]models.UserCourse, error)
}

// ReconcileReport summarises a reconciliation run
type ReconcileReport struct {
	Checked int `json:"checked"`
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

type reconcileService struct {
	pairRepo           UserCourseRepository
	lessonRepo         LessonRepository
	lessonResponseRepo LessonResponseRepository
	healer             *courseCompletionHealer
	logger             *zap.Logger
}

// NewReconcileService creates a service that re-derives course completion from lesson responses
func NewReconcileService(
	pairRepo UserCourseRepository,
	lessonRepo LessonRepository,
	lessonResponseRepo LessonResponseRepository,
	courseResponseRepo CourseResponseRepository,
	readCache cache.ReadCache,
	logger *zap.Logger,
) *reconcileService {
	return &reconcileService{
		pairRepo:           pairRepo,
		lessonRepo:         lessonRepo,
		lessonResponseRepo: lessonResponseRepo,
		healer:             newCourseCompletionHealer(courseResponseRepo, readCache, logger),
		logger:             logger,
	}
}

// Reconcile corrects every course response that disagrees with its lesson responses.
// Running it twice in a row changes nothing the second time. A nil userID reconciles every user.
//
// Only listing the pairs can fail the run; per-pair failures are logged and counted.
func (s *reconcileService) Reconcile(ctx context.Context, userID *int) (ReconcileReport, error) {
	var report ReconcileReport

	pairs, err := s.pairRepo.GetUserCoursePairs(ctx, userID)
	if err != nil {
		return report, fmt.Errorf("failed to list user courses: %w", err)
	}

	lessonsByCourse := make(map[int][]models.Lesson)
	var (
		currentUser int
		completed   progression.CompletionLookup
	)
	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Checked++

		if completed == nil || pair.UserID != currentUser {
			responses, err := s.lessonResponseRepo.GetByUser(ctx, pair.UserID)
			if err != nil {
				s.logger.Error("failed to read lesson responses", zap.Int("user_id", pair.UserID), zap.Error(err))
				completed = nil
				report.Failed++
				continue
			}
			currentUser = pair.UserID
			completed = progression.LookupFromResponses(responses)
		}

		lessons, ok := lessonsByCourse[pair.CourseID]
		if !ok {
			lessons, err = s.lessonRepo.GetByCourseID(ctx, pair.CourseID, true)
			if err != nil {
				s.logger.Error("failed to read course lessons", zap.Int("course_id", pair.CourseID), zap.Error(err))
				report.Failed++
				continue
			}
			progression.SortLessons(lessons)
			lessonsByCourse[pair.CourseID] = lessons
		}

		if s.healer.heal(ctx, pair.UserID, pair.CourseID, progression.CourseCompleted(lessons, completed), true) {
			report.Updated++
		}
	}

	s.logger.Info("reconciliation finished",
		zap.Int("checked", report.Checked),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}
