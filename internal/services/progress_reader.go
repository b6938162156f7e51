package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progression"
	"go.uber.org/zap"
)

// progressReader serves lesson and lesson response reads through the read cache.
// A failing cache is logged and bypassed.
type progressReader struct {
	lessonRepo         LessonRepository
	lessonResponseRepo LessonResponseRepository
	cache              cache.ReadCache
	logger             *zap.Logger
}

func newProgressReader(lessonRepo LessonRepository, lessonResponseRepo LessonResponseRepository, readCache cache.ReadCache, logger *zap.Logger) *progressReader {
	return &progressReader{
		lessonRepo:         lessonRepo,
		lessonResponseRepo: lessonResponseRepo,
		cache:              readCache,
		logger:             logger,
	}
}

// lesson returns the active lesson with the given slug
func (r *progressReader) lesson(ctx context.Context, slug string) (*models.Lesson, error) {
	var lesson models.Lesson
	if r.fromCache(ctx, cache.LessonKey(slug), &lesson) {
		return &lesson, nil
	}

	found, err := r.lessonRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	r.toCache(ctx, cache.LessonKey(slug), found)
	return found, nil
}

// lessons returns the active lessons of a course in path order
func (r *progressReader) lessons(ctx context.Context, courseID int) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if r.fromCache(ctx, cache.LessonsKey(courseID), &lessons) {
		return lessons, nil
	}

	lessons, err := r.lessonRepo.GetByCourseID(ctx, courseID, true)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}
	progression.SortLessons(lessons)
	r.toCache(ctx, cache.LessonsKey(courseID), lessons)
	return lessons, nil
}

// lessonResponses returns every lesson response of a user
func (r *progressReader) lessonResponses(ctx context.Context, userID int) ([]models.LessonResponse, error) {
	var responses []models.LessonResponse
	if r.fromCache(ctx, cache.LessonResponsesKey(userID), &responses) {
		return responses, nil
	}

	responses, err := r.lessonResponseRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson responses: %w", err)
	}
	r.toCache(ctx, cache.LessonResponsesKey(userID), responses)
	return responses, nil
}

// completion returns the completion lookup over a user's lesson responses
func (r *progressReader) completion(ctx context.Context, userID int) (progression.CompletionLookup, error) {
	responses, err := r.lessonResponses(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progression.LookupFromResponses(responses), nil
}

func (r *progressReader) fromCache(ctx context.Context, key string, dest any) bool {
	err := r.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrMiss) {
		r.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	return false
}

func (r *progressReader) toCache(ctx context.Context, key string, value any) {
	if err := r.cache.Set(ctx, key, value); err != nil {
		r.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
