package services

import (
	"context"
	"fmt"

	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progression"
	"github.com/learnpath/backend/internal/session"
	"go.uber.org/zap"
)

// QuestionResponseRepository defines methods for question response data access
type QuestionResponseRepository interface {
	// Upsert records the option a user chose for a question
	//
	// "ctx" is the context for the request.
	// "resp" is the question response to write. An earlier choice for the same question is replaced.
	//
	// Returns an error if any.
	Upsert(ctx context.Context, resp *models.QuestionResponse) error
}

// CompletionNotifier defines methods for scheduling completion notices
type CompletionNotifier interface {
	// EnqueueCourseCompleted schedules the notice for a completed course
	//
	// "ctx" is the context for the request.
	// "userID" is the ID of the user.
	// "courseID" is the ID of the completed course.
	//
	// Returns an error if the task cannot be enqueued.
	EnqueueCourseCompleted(ctx context.Context, userID, courseID int) error
}

type quizService struct {
	reader               *progressReader
	questionRepo         QuestionRepository
	questionResponseRepo QuestionResponseRepository
	lessonResponseRepo   LessonResponseRepository
	courseResponseRepo   CourseResponseRepository
	sessions             session.Store
	notifier             CompletionNotifier
	cache                cache.ReadCache
	logger               *zap.Logger
}

// NewQuizService creates a new quiz service
func NewQuizService(
	lessonRepo LessonRepository,
	questionRepo QuestionRepository,
	questionResponseRepo QuestionResponseRepository,
	lessonResponseRepo LessonResponseRepository,
	courseResponseRepo CourseResponseRepository,
	sessions session.Store,
	notifier CompletionNotifier,
	readCache cache.ReadCache,
	logger *zap.Logger,
) *quizService {
	return &quizService{
		reader:               newProgressReader(lessonRepo, lessonResponseRepo, readCache, logger),
		questionRepo:         questionRepo,
		questionResponseRepo: questionResponseRepo,
		lessonResponseRepo:   lessonResponseRepo,
		courseResponseRepo:   courseResponseRepo,
		sessions:             sessions,
		notifier:             notifier,
		cache:                readCache,
		logger:               logger,
	}
}

// StartLesson opens a play session on an unlocked lesson and returns its first question
func (s *quizService) StartLesson(ctx context.Context, userID int, lessonSlug string) (*models.SessionView, error) {
	lesson, err := s.reader.lesson(ctx, lessonSlug)
	if err != nil {
		return nil, err
	}

	lessons, err := s.reader.lessons(ctx, lesson.CourseID)
	if err != nil {
		return nil, err
	}
	index := indexOfLesson(lessons, lesson.ID)
	if index < 0 {
		return nil, models.ErrLessonNotFound
	}

	completed, err := s.reader.completion(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !progression.IsUnlocked(lessons, completed, index) {
		return nil, models.ErrLessonLocked
	}

	questions, err := s.questionRepo.GetByLessonID(ctx, lesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}
	if len(questions) == 0 {
		return nil, models.ErrLessonHasNoQuiz
	}

	snapshot := make([]models.SessionQuestion, len(questions))
	for i, q := range questions {
		snapshot[i] = models.SessionQuestion{
			ID:              q.ID,
			Text:            q.Text,
			Position:        q.Position,
			Options:         q.Answers,
			CorrectAnswerID: q.CorrectAnswerID,
		}
	}

	ps := &models.PlaySession{
		UserID:     userID,
		CourseID:   lesson.CourseID,
		LessonID:   lesson.ID,
		LessonSlug: lesson.Slug,
		Questions:  snapshot,
	}
	if err := s.sessions.Initialize(ctx, ps); err != nil {
		return nil, err
	}

	s.logger.Debug("lesson started",
		zap.Int("user_id", userID),
		zap.Int("lesson_id", lesson.ID),
		zap.String("session_id", ps.ID),
	)
	return sessionView(ps), nil
}

// SelectOption selects an option of the current question. Selecting again replaces the selection.
func (s *quizService) SelectOption(ctx context.Context, userID int, sessionID string, answerID int) (*models.SessionView, error) {
	ps, err := s.sessions.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if ps.State != models.SessionAnswering {
		return nil, models.ErrInvalidTransition
	}

	current := ps.Current()
	if current == nil || !current.HasOption(answerID) {
		return nil, models.ErrInvalidOption
	}
	ps.SelectedAnswerID = &answerID

	if err := s.sessions.Save(ctx, ps); err != nil {
		return nil, err
	}
	return sessionView(ps), nil
}

// CheckAnswer submits the selected option and reveals whether it was correct.
// A question without a recorded correct answer always counts as incorrect.
func (s *quizService) CheckAnswer(ctx context.Context, userID int, sessionID string) (*models.CheckResult, error) {
	ps, err := s.sessions.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if ps.State != models.SessionAnswering {
		return nil, models.ErrInvalidTransition
	}
	if ps.SelectedAnswerID == nil {
		return nil, models.ErrNoSelection
	}
	current := ps.Current()
	if current == nil {
		return nil, models.ErrInvalidTransition
	}

	correct := current.CorrectAnswerID != nil && *current.CorrectAnswerID == *ps.SelectedAnswerID
	ps.TotalAttempted++
	if correct {
		ps.TotalCorrect++
	}
	ps.LastCorrect = &correct
	ps.State = models.SessionChecked

	s.recordAttempt(ctx, ps.UserID, current.ID, *ps.SelectedAnswerID)

	if err := s.sessions.Save(ctx, ps); err != nil {
		return nil, err
	}

	return &models.CheckResult{
		Correct:         correct,
		CorrectAnswerID: current.CorrectAnswerID,
		TotalAttempted:  ps.TotalAttempted,
		TotalCorrect:    ps.TotalCorrect,
		IsLastQuestion:  ps.IsLast(),
	}, nil
}

// Next moves to the next question. On the last question the lesson is finalized,
// the session is cleared and a summary is returned instead. When requests race on the last
// question only the one that claims the session finalizes; the others get ErrInvalidTransition.
func (s *quizService) Next(ctx context.Context, userID int, sessionID string) (*models.NextResult, error) {
	ps, err := s.sessions.Load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if ps.State != models.SessionChecked {
		return nil, models.ErrInvalidTransition
	}

	if !ps.IsLast() {
		ps.Index++
		ps.SelectedAnswerID = nil
		ps.LastCorrect = nil
		ps.State = models.SessionAnswering
		if err := s.sessions.Save(ctx, ps); err != nil {
			return nil, err
		}
		return &models.NextResult{Session: sessionView(ps)}, nil
	}

	if ps.Finalized {
		return nil, models.ErrInvalidTransition
	}
	claimed, err := s.sessions.MarkFinalized(ctx, ps.ID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, models.ErrInvalidTransition
	}
	ps.Finalized = true
	ps.State = models.SessionFinished
	if err := s.sessions.Save(ctx, ps); err != nil {
		s.logger.Warn("failed to mark session finished", zap.String("session_id", ps.ID), zap.Error(err))
	}

	summary := s.finalize(ctx, ps)

	if err := s.sessions.Clear(ctx, ps.ID); err != nil {
		s.logger.Warn("failed to clear session", zap.String("session_id", ps.ID), zap.Error(err))
	}
	return &models.NextResult{Summary: summary}, nil
}

// Abandon discards a session without recording the lesson outcome
func (s *quizService) Abandon(ctx context.Context, userID int, sessionID string) error {
	ps, err := s.sessions.Load(ctx, userID, sessionID)
	if err != nil {
		return err
	}
	return s.sessions.Clear(ctx, ps.ID)
}

// recordAttempt writes the question response. Failures are logged and swallowed.
func (s *quizService) recordAttempt(ctx context.Context, userID, questionID, answerID int) {
	resp := &models.QuestionResponse{UserID: userID, QuestionID: questionID, AnswerID: answerID}
	if err := s.questionResponseRepo.Upsert(ctx, resp); err != nil {
		s.logger.Error("failed to record question response",
			zap.Int("user_id", userID),
			zap.Int("question_id", questionID),
			zap.Error(err),
		)
	}
}

// finalize records the lesson outcome and the course response: completed for the final lesson,
// started otherwise.
// Write failures are logged and swallowed so the student always reaches the summary.
func (s *quizService) finalize(ctx context.Context, ps *models.PlaySession) *models.LessonSummary {
	log := s.logger.With(
		zap.Int("user_id", ps.UserID),
		zap.Int("lesson_id", ps.LessonID),
		zap.Int("course_id", ps.CourseID),
	)

	score := progression.ScorePercentage(ps.TotalCorrect, len(ps.Questions))
	summary := &models.LessonSummary{
		LessonSlug:      ps.LessonSlug,
		TotalQuestions:  len(ps.Questions),
		TotalAttempted:  ps.TotalAttempted,
		TotalCorrect:    ps.TotalCorrect,
		ScorePercentage: score,
	}

	lessonResp := &models.LessonResponse{
		UserID:          ps.UserID,
		LessonID:        ps.LessonID,
		CourseID:        ps.CourseID,
		TotalQuestions:  len(ps.Questions),
		TotalAttempted:  ps.TotalAttempted,
		TotalCorrect:    ps.TotalCorrect,
		IsCompleted:     true,
		ScorePercentage: &score,
		Status:          models.LessonStatusCompleted,
	}
	if err := s.lessonResponseRepo.Upsert(ctx, lessonResp); err != nil {
		log.Error("failed to record lesson response", zap.Error(err))
	}

	lessons, err := s.reader.lessons(ctx, ps.CourseID)
	if err != nil {
		log.Error("failed to load course lessons", zap.Error(err))
	}

	if progression.IsFinalLesson(lessons, ps.LessonID) {
		courseResp := &models.CourseResponse{UserID: ps.UserID, CourseID: ps.CourseID, IsCompleted: true}
		if err := s.courseResponseRepo.Upsert(ctx, courseResp); err != nil {
			log.Error("failed to record course completion", zap.Error(err))
		} else {
			summary.CourseCompleted = true
			if err := s.notifier.EnqueueCourseCompleted(ctx, ps.UserID, ps.CourseID); err != nil {
				log.Error("failed to enqueue course completion notice", zap.Error(err))
			}
		}
	} else if err := s.courseResponseRepo.EnsureStarted(ctx, ps.UserID, ps.CourseID); err != nil {
		log.Error("failed to record course start", zap.Error(err))
	}

	if next := progression.NextLesson(lessons, ps.LessonID); next != nil {
		summary.NextLessonSlug = next.Slug
	}

	keys := []string{
		cache.LessonResponsesKey(ps.UserID),
		cache.CourseResponsesKey(ps.UserID),
		cache.LessonKey(ps.LessonSlug),
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		log.Error("failed to invalidate progress cache", zap.Error(err))
	}

	log.Info("lesson finalized",
		zap.Int("total_correct", ps.TotalCorrect),
		zap.Float64("score_percentage", score),
		zap.Bool("course_completed", summary.CourseCompleted),
	)
	return summary
}

func sessionView(ps *models.PlaySession) *models.SessionView {
	view := &models.SessionView{
		SessionID:        ps.ID,
		LessonSlug:       ps.LessonSlug,
		State:            ps.State,
		QuestionNumber:   ps.Index + 1,
		TotalQuestions:   len(ps.Questions),
		SelectedAnswerID: ps.SelectedAnswerID,
	}
	if current := ps.Current(); current != nil {
		view.Question = current.View()
	}
	return view
}
