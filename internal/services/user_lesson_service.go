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

// CourseRepository defines methods for course data access
type CourseRepository interface {
	// GetBySlug retrieves an active course by slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the course.
	//
	// Returns models.ErrCourseNotFound if there is no such active course.
	GetBySlug(ctx context.Context, slug string) (*models.Course, error)
	// GetByID retrieves a course by ID, active or not
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns models.ErrCourseNotFound if there is no such course.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetAll retrieves a list of active courses with the user's progress
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "filter" holds the complexity level, search query, "mine" flag and pagination.
	//
	// Returns a list of courses and an error if any.
	GetAll(ctx context.Context, userID int, filter models.CourseFilter) ([]models.CourseDetailResponse, error)
}

// LessonRepository defines methods for lesson data access
type LessonRepository interface {
	// GetBySlug retrieves an active lesson by slug
	//
	// "ctx" is the context for the request.
	// "slug" is the slug of the lesson.
	//
	// Returns models.ErrLessonNotFound if there is no such active lesson.
	GetBySlug(ctx context.Context, slug string) (*models.Lesson, error)
	// GetByCourseID retrieves the lessons of a course ordered by order_by
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "activeOnly" hides deactivated lessons.
	//
	// Returns a list of lessons and an error if any.
	GetByCourseID(ctx context.Context, courseID int, activeOnly bool) ([]models.Lesson, error)
}

// QuestionRepository defines methods for question data access
type QuestionRepository interface {
	// GetByLessonID retrieves the questions of a lesson with their options
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns a list of questions ordered by position and an error if any.
	GetByLessonID(ctx context.Context, lessonID int) ([]models.Question, error)
	// CountByLessonID counts the questions of a lesson
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns the number of questions and an error if any.
	CountByLessonID(ctx context.Context, lessonID int) (int, error)
}

// LessonResponseRepository defines methods for lesson response data access
type LessonResponseRepository interface {
	// GetByUser retrieves all lesson responses of a user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns lesson responses with their completion status derived and an error if any.
	GetByUser(ctx context.Context, userID int) ([]models.LessonResponse, error)
	// Upsert records the outcome of a lesson
	//
	// "ctx" is the context for the request.
	// "resp" is the lesson response to write. An earlier response of the same user and lesson is replaced.
	//
	// Returns an error if any.
	Upsert(ctx context.Context, resp *models.LessonResponse) error
	// EraseByUserAndCourse soft-deletes the progress of a user in a course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	EraseByUserAndCourse(ctx context.Context, userID, courseID int) error
}

// CourseResponseRepository defines methods for course response data access
type CourseResponseRepository interface {
	// GetByUser retrieves all course responses of a user, oldest first
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	//
	// Returns a list of course responses and an error if any.
	GetByUser(ctx context.Context, userID int) ([]models.CourseResponse, error)
	// GetByUserAndCourse retrieves the course response of a user
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns nil without an error when nothing is recorded.
	GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CourseResponse, error)
	// EnsureStarted creates a not completed course response when none is live.
	// An existing completion is never cleared.
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the course.
	//
	// Returns an error if any.
	EnsureStarted(ctx context.Context, userID, courseID int) error
	// Upsert records the completion state of a course
	//
	// "ctx" is the context for the request.
	// "resp" is the course response to write.
	//
	// Returns an error if any.
	Upsert(ctx context.Context, resp *models.CourseResponse) error
}

type userLessonService struct {
	reader             *progressReader
	courseRepo         CourseRepository
	questionRepo       QuestionRepository
	lessonResponseRepo LessonResponseRepository
	healer             *courseCompletionHealer
	cache              cache.ReadCache
	logger             *zap.Logger
}

// NewUserLessonService creates a new user lesson service
func NewUserLessonService(
	courseRepo CourseRepository,
	lessonRepo LessonRepository,
	questionRepo QuestionRepository,
	lessonResponseRepo LessonResponseRepository,
	courseResponseRepo CourseResponseRepository,
	readCache cache.ReadCache,
	logger *zap.Logger,
) *userLessonService {
	return &userLessonService{
		reader:             newProgressReader(lessonRepo, lessonResponseRepo, readCache, logger),
		courseRepo:         courseRepo,
		questionRepo:       questionRepo,
		lessonResponseRepo: lessonResponseRepo,
		healer:             newCourseCompletionHealer(courseResponseRepo, readCache, logger),
		cache:              readCache,
		logger:             logger,
	}
}

// GetCoursesList retrieves a list of courses with filtering and pagination
func (s *userLessonService) GetCoursesList(ctx context.Context, userID int, filter models.CourseFilter) ([]models.CourseDetailResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Count < 1 {
		filter.Count = 10
	}

	return s.courseRepo.GetAll(ctx, userID, filter)
}

// GetLessonsInCourse retrieves course details with the user's learning path.
//
// Course completion is re-derived from the lesson responses on every call and the stored
// course response is corrected when it disagrees.
func (s *userLessonService) GetLessonsInCourse(ctx context.Context, userID int, courseSlug string) (*models.CourseDetailResponse, []models.LessonPathItem, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get course: %w", err)
	}

	lessons, err := s.reader.lessons(ctx, course.ID)
	if err != nil {
		return nil, nil, err
	}

	completed, err := s.reader.completion(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	states := progression.EvaluatePath(lessons, completed)
	path := make([]models.LessonPathItem, len(lessons))
	completedCount := 0
	for i, lesson := range lessons {
		if states[i] == models.LessonStateCompleted {
			completedCount++
		}
		path[i] = models.LessonPathItem{
			Slug:            lesson.Slug,
			Title:           lesson.Title,
			ShortSummary:    lesson.ShortSummary,
			OrderBy:         lesson.OrderBy,
			DurationMinutes: lesson.DurationMinutes,
			State:           states[i],
		}
	}

	courseCompleted := progression.CourseCompleted(lessons, completed)
	s.healer.heal(ctx, userID, course.ID, courseCompleted, false)

	detail := &models.CourseDetailResponse{
		Slug:             course.Slug,
		Title:            course.Title,
		ShortSummary:     course.ShortSummary,
		ComplexityLevel:  course.ComplexityLevel,
		TotalLessons:     len(lessons),
		CompletedLessons: completedCount,
		IsCompleted:      courseCompleted,
	}
	return detail, path, nil
}

// GetLesson retrieves a lesson with its state in the user's path and the user's last result
func (s *userLessonService) GetLesson(ctx context.Context, userID int, lessonSlug string) (*models.LessonDetailResponse, error) {
	lesson, err := s.reader.lesson(ctx, lessonSlug)
	if err != nil {
		return nil, err
	}

	course, err := s.courseRepo.GetByID(ctx, lesson.CourseID)
	if err != nil {
		if errors.Is(err, models.ErrCourseNotFound) {
			return nil, models.ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	if !course.IsActive {
		return nil, models.ErrLessonNotFound
	}

	lessons, err := s.reader.lessons(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	index := indexOfLesson(lessons, lesson.ID)
	if index < 0 {
		return nil, models.ErrLessonNotFound
	}

	responses, err := s.reader.lessonResponses(ctx, userID)
	if err != nil {
		return nil, err
	}
	completed := progression.LookupFromResponses(responses)

	totalQuestions, err := s.questionRepo.CountByLessonID(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	state := models.LessonStateLocked
	switch {
	case completed(lesson.ID):
		state = models.LessonStateCompleted
	case progression.IsUnlocked(lessons, completed, index):
		state = models.LessonStateUnlocked
	}

	detail := &models.LessonDetailResponse{
		Slug:            lesson.Slug,
		CourseSlug:      course.Slug,
		Title:           lesson.Title,
		ShortSummary:    lesson.ShortSummary,
		OrderBy:         lesson.OrderBy,
		DurationMinutes: lesson.DurationMinutes,
		State:           state,
		TotalQuestions:  totalQuestions,
	}
	for i := range responses {
		if responses[i].LessonID == lesson.ID {
			detail.Result = &responses[i]
			break
		}
	}

	return detail, nil
}

// ResetCourseProgress erases the user's progress in a course so the path starts over
func (s *userLessonService) ResetCourseProgress(ctx context.Context, userID int, courseSlug string) error {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return fmt.Errorf("failed to get course: %w", err)
	}

	if err := s.lessonResponseRepo.EraseByUserAndCourse(ctx, userID, course.ID); err != nil {
		return err
	}

	if err := s.cache.Invalidate(ctx, cache.LessonResponsesKey(userID), cache.CourseResponsesKey(userID)); err != nil {
		s.logger.Error("failed to invalidate progress cache",
			zap.Int("user_id", userID),
			zap.Int("course_id", course.ID),
			zap.Error(err),
		)
	}
	return nil
}

func indexOfLesson(lessons []models.Lesson, lessonID int) int {
	for i, l := range lessons {
		if l.ID == lessonID {
			return i
		}
	}
	return -1
}
