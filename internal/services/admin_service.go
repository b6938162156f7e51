package services

import (
	"context"
	"fmt"

	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AdminCourseRepository defines methods for course management
type AdminCourseRepository interface {
	// GetByID retrieves a course by ID, active or not
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns models.ErrCourseNotFound if there is no such course.
	GetByID(ctx context.Context, id int) (*models.Course, error)
	// GetByAuthorOrFull retrieves courses by author or all courses with filtering and pagination
	//
	// "ctx" is the context for the request.
	// "authorID" limits the list to one author when not nil.
	// "complexityLevel" filters by complexity level when not nil.
	// "search" filters by title.
	// "page" is the page number to retrieve.
	// "count" is the number of items per page.
	//
	// Returns a list of courses and an error if any.
	GetByAuthorOrFull(ctx context.Context, authorID *int, complexityLevel *models.ComplexityLevel, search string, page, count int) ([]models.CourseListItem, error)
	// ExistsBySlug checks if a course with the slug exists
	//
	// "ctx" is the context for the request.
	// "slug" is the slug to check.
	//
	// Returns a boolean and an error if any.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// Create inserts a new course and sets its ID
	//
	// "ctx" is the context for the request.
	// "course" is the course to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, course *models.Course) error
	// Update applies a partial update to a course
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	// "req" holds the fields to change.
	//
	// Returns an error if any.
	Update(ctx context.Context, id int, req *models.UpdateCourseRequest) error
	// Delete deletes a course
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the course.
	//
	// Returns models.ErrCourseNotFound if there is no such course.
	Delete(ctx context.Context, id int) error
}

// AdminLessonRepository defines methods for lesson management
type AdminLessonRepository interface {
	// GetByID retrieves a lesson by ID, active or not
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns models.ErrLessonNotFound if there is no such lesson.
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	// GetByCourseID retrieves the lessons of a course ordered by order_by
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "activeOnly" hides deactivated lessons.
	//
	// Returns a list of lessons and an error if any.
	GetByCourseID(ctx context.Context, courseID int, activeOnly bool) ([]models.Lesson, error)
	// ExistsBySlug checks if a lesson with the slug exists
	//
	// "ctx" is the context for the request.
	// "slug" is the slug to check.
	//
	// Returns a boolean and an error if any.
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	// ExistsByOrderInCourse checks if a lesson holds the order position in a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "order" is the order position.
	//
	// Returns a boolean and an error if any.
	ExistsByOrderInCourse(ctx context.Context, courseID int, order int) (bool, error)
	// IncrementOrderForLessons shifts lessons at or after order by one
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	// "order" is the first order position to shift.
	//
	// Returns an error if any.
	IncrementOrderForLessons(ctx context.Context, courseID, order int) error
	// Create inserts a new lesson and sets its ID
	//
	// "ctx" is the context for the request.
	// "lesson" is the lesson to create.
	//
	// Returns an error if any.
	Create(ctx context.Context, lesson *models.Lesson) error
	// Update applies a partial update to a lesson
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	// "req" holds the fields to change.
	//
	// Returns an error if any.
	Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error
	// Delete deletes a lesson
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the lesson.
	//
	// Returns models.ErrLessonNotFound if there is no such lesson.
	Delete(ctx context.Context, id int) error
}

// AdminQuestionRepository defines methods for question management
type AdminQuestionRepository interface {
	// GetByID retrieves a question without its options
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the question.
	//
	// Returns models.ErrQuestionNotFound if there is no such question.
	GetByID(ctx context.Context, id int) (*models.Question, error)
	// GetByLessonID retrieves the questions of a lesson with their options
	//
	// "ctx" is the context for the request.
	// "lessonID" is the ID of the lesson.
	//
	// Returns a list of questions and an error if any.
	GetByLessonID(ctx context.Context, lessonID int) ([]models.Question, error)
	// Create inserts a question with its options in one transaction
	//
	// "ctx" is the context for the request.
	// "question" is the question to create. Its ID, answers and correct answer are set on success.
	// "options" are the option texts in display order.
	// "correctOption" is the index of the correct option.
	//
	// Returns an error if any.
	Create(ctx context.Context, question *models.Question, options []string, correctOption int) error
	// Delete deletes a question and its options
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the question.
	//
	// Returns models.ErrQuestionNotFound if there is no such question.
	Delete(ctx context.Context, id int) error
}

type adminService struct {
	courseRepo   AdminCourseRepository
	lessonRepo   AdminLessonRepository
	questionRepo AdminQuestionRepository
	cache        cache.ReadCache
	logger       *zap.Logger
}

// NewAdminService creates a new admin service
//
// Every method takes a tutorID. A nil tutorID means the caller is an admin and may manage any course;
// otherwise only courses authored by the tutor are accessible.
func NewAdminService(
	courseRepo AdminCourseRepository,
	lessonRepo AdminLessonRepository,
	questionRepo AdminQuestionRepository,
	readCache cache.ReadCache,
	logger *zap.Logger,
) *adminService {
	return &adminService{
		courseRepo:   courseRepo,
		lessonRepo:   lessonRepo,
		questionRepo: questionRepo,
		cache:        readCache,
		logger:       logger,
	}
}

// GetCourses retrieves courses authored by the tutor, or all courses for an admin
func (s *adminService) GetCourses(ctx context.Context, tutorID *int, complexityLevel *models.ComplexityLevel, search string, page, count int) ([]models.CourseListItem, error) {
	if page < 1 {
		page = 1
	}
	if count < 1 {
		count = 10
	}

	return s.courseRepo.GetByAuthorOrFull(ctx, tutorID, complexityLevel, search, page, count)
}

// CreateCourse creates a new, active course
func (s *adminService) CreateCourse(ctx context.Context, tutorID *int, req *models.CreateCourseRequest) (int, error) {
	authorID := req.AuthorID
	if tutorID != nil {
		authorID = *tutorID
	}
	if authorID <= 0 {
		return 0, fmt.Errorf("%w: authorId is required", models.ErrInvalidInput)
	}

	level, ok := models.ParseComplexityLevel(string(req.ComplexityLevel))
	if !ok {
		return 0, fmt.Errorf("%w: invalid complexity level", models.ErrInvalidInput)
	}

	if err := s.checkCourseSlugFree(ctx, req.Slug); err != nil {
		return 0, err
	}

	course := &models.Course{
		Slug:            req.Slug,
		AuthorID:        authorID,
		Title:           req.Title,
		ShortSummary:    req.ShortSummary,
		ComplexityLevel: level,
		IsActive:        true,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return 0, err
	}

	return course.ID, nil
}

// UpdateCourse updates a course (partial update)
func (s *adminService) UpdateCourse(ctx context.Context, courseID int, tutorID *int, req *models.UpdateCourseRequest) error {
	course, err := s.accessibleCourse(ctx, courseID, tutorID)
	if err != nil {
		return err
	}

	if req.ComplexityLevel != "" {
		level, ok := models.ParseComplexityLevel(string(req.ComplexityLevel))
		if !ok {
			return fmt.Errorf("%w: invalid complexity level", models.ErrInvalidInput)
		}
		req.ComplexityLevel = level
	}

	if req.Slug == course.Slug {
		req.Slug = ""
	}
	if req.Slug != "" {
		if err := s.checkCourseSlugFree(ctx, req.Slug); err != nil {
			return err
		}
	}

	if err := s.courseRepo.Update(ctx, courseID, req); err != nil {
		return err
	}

	if req.IsActive != nil {
		// lesson reads cache the course's lessons; a re-activated course must not serve a stale list
		s.invalidate(ctx, cache.LessonsKey(courseID))
	}
	return nil
}

// DeleteCourse deletes a course with its lessons and progress
func (s *adminService) DeleteCourse(ctx context.Context, courseID int, tutorID *int) error {
	if _, err := s.accessibleCourse(ctx, courseID, tutorID); err != nil {
		return err
	}

	lessons, err := s.lessonRepo.GetByCourseID(ctx, courseID, false)
	if err != nil {
		return err
	}

	if err := s.courseRepo.Delete(ctx, courseID); err != nil {
		return err
	}

	keys := []string{cache.LessonsKey(courseID)}
	for _, lesson := range lessons {
		keys = append(keys, cache.LessonKey(lesson.Slug))
	}
	s.invalidate(ctx, keys...)
	return nil
}

// GetLessonsForCourse retrieves a course with all of its lessons, including inactive ones
func (s *adminService) GetLessonsForCourse(ctx context.Context, courseID int, tutorID *int) (*models.Course, []models.Lesson, error) {
	course, err := s.accessibleCourse(ctx, courseID, tutorID)
	if err != nil {
		return nil, nil, err
	}

	lessons, err := s.lessonRepo.GetByCourseID(ctx, courseID, false)
	if err != nil {
		return nil, nil, err
	}

	return course, lessons, nil
}

// CreateLesson creates a new lesson. A lesson already at the requested order position is shifted
// one position later together with every lesson after it.
func (s *adminService) CreateLesson(ctx context.Context, tutorID *int, req *models.CreateLessonRequest) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := s.accessibleCourse(gctx, req.CourseID, tutorID)
		return err
	})
	g.Go(func() error {
		return s.checkLessonSlugFree(gctx, req.Slug)
	})
	if err := g.Wait(); err != nil {
		return 0, err
	}

	if err := s.makeRoomForOrder(ctx, req.CourseID, req.OrderBy); err != nil {
		return 0, err
	}

	lesson := &models.Lesson{
		Slug:            req.Slug,
		CourseID:        req.CourseID,
		Title:           req.Title,
		ShortSummary:    req.ShortSummary,
		OrderBy:         req.OrderBy,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return 0, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.invalidate(ctx, cache.LessonsKey(req.CourseID))
	return lesson.ID, nil
}

// UpdateLesson updates a lesson (partial update)
func (s *adminService) UpdateLesson(ctx context.Context, lessonID int, tutorID *int, req *models.UpdateLessonRequest) error {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return err
	}
	if _, err := s.accessibleCourse(ctx, lesson.CourseID, tutorID); err != nil {
		return err
	}

	if req.Slug == lesson.Slug {
		req.Slug = ""
	}
	if req.Slug != "" {
		if err := s.checkLessonSlugFree(ctx, req.Slug); err != nil {
			return err
		}
	}

	if req.OrderBy != nil && *req.OrderBy != lesson.OrderBy {
		if err := s.makeRoomForOrder(ctx, lesson.CourseID, *req.OrderBy); err != nil {
			return err
		}
	}

	if err := s.lessonRepo.Update(ctx, lessonID, req); err != nil {
		return err
	}

	keys := []string{cache.LessonsKey(lesson.CourseID), cache.LessonKey(lesson.Slug)}
	if req.Slug != "" {
		keys = append(keys, cache.LessonKey(req.Slug))
	}
	s.invalidate(ctx, keys...)
	return nil
}

// DeleteLesson deletes a lesson with its questions and responses
func (s *adminService) DeleteLesson(ctx context.Context, lessonID int, tutorID *int) error {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return err
	}
	if _, err := s.accessibleCourse(ctx, lesson.CourseID, tutorID); err != nil {
		return err
	}

	if err := s.lessonRepo.Delete(ctx, lessonID); err != nil {
		return err
	}

	s.invalidate(ctx, cache.LessonsKey(lesson.CourseID), cache.LessonKey(lesson.Slug))
	return nil
}

// GetQuestions retrieves the questions of a lesson including their correct answers
func (s *adminService) GetQuestions(ctx context.Context, lessonID int, tutorID *int) ([]models.Question, error) {
	if _, err := s.accessibleLesson(ctx, lessonID, tutorID); err != nil {
		return nil, err
	}

	return s.questionRepo.GetByLessonID(ctx, lessonID)
}

// CreateQuestion creates a question with its options
func (s *adminService) CreateQuestion(ctx context.Context, tutorID *int, req *models.CreateQuestionRequest) (*models.Question, error) {
	if req.CorrectOption >= len(req.Options) {
		return nil, fmt.Errorf("%w: correctOption must index one of the options", models.ErrInvalidInput)
	}

	if _, err := s.accessibleLesson(ctx, req.LessonID, tutorID); err != nil {
		return nil, err
	}

	question := &models.Question{
		LessonID: req.LessonID,
		Text:     req.Text,
		Position: req.Position,
	}
	if err := s.questionRepo.Create(ctx, question, req.Options, req.CorrectOption); err != nil {
		return nil, err
	}

	return question, nil
}

// DeleteQuestion deletes a question
func (s *adminService) DeleteQuestion(ctx context.Context, questionID int, tutorID *int) error {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if _, err := s.accessibleLesson(ctx, question.LessonID, tutorID); err != nil {
		return err
	}

	return s.questionRepo.Delete(ctx, questionID)
}

// accessibleCourse returns the course when the caller may manage it
func (s *adminService) accessibleCourse(ctx context.Context, courseID int, tutorID *int) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if tutorID != nil && course.AuthorID != *tutorID {
		return nil, models.ErrForbidden
	}
	return course, nil
}

// accessibleLesson returns the lesson when the caller may manage its course
func (s *adminService) accessibleLesson(ctx context.Context, lessonID int, tutorID *int) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accessibleCourse(ctx, lesson.CourseID, tutorID); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *adminService) checkCourseSlugFree(ctx context.Context, slug string) error {
	exists, err := s.courseRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: course with slug '%s' already exists", models.ErrConflict, slug)
	}
	return nil
}

func (s *adminService) checkLessonSlugFree(ctx context.Context, slug string) error {
	exists, err := s.lessonRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%w: lesson with slug '%s' already exists", models.ErrConflict, slug)
	}
	return nil
}

// makeRoomForOrder shifts lessons at or after order when the position is taken
func (s *adminService) makeRoomForOrder(ctx context.Context, courseID, order int) error {
	exists, err := s.lessonRepo.ExistsByOrderInCourse(ctx, courseID, order)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return s.lessonRepo.IncrementOrderForLessons(ctx, courseID, order)
}

func (s *adminService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.logger.Error("failed to invalidate lesson cache", zap.Strings("keys", keys), zap.Error(err))
	}
}
