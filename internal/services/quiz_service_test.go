package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/learnpath/backend/internal/cache"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const testUserID = 5

// quizFixture is a course of three lessons. Lesson l3 is the final one.
type quizFixture struct {
	service          *quizService
	lessonRepo       *mockLessonRepository
	questionRepo     *mockQuestionRepository
	questionRespRepo *mockQuestionResponseRepository
	lessonRespRepo   *mockLessonResponseRepository
	courseRespRepo   *mockCourseResponseRepository
	sessions         *session.MemoryStore
	notifier         *mockNotifier
	cache            *cache.MemoryCache
	logs             *observer.ObservedLogs
}

func newQuizFixture(t *testing.T, responses ...models.LessonResponse) *quizFixture {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	f := &quizFixture{
		lessonRepo: newMockLessonRepository(
			models.Lesson{ID: 1, Slug: "l1", CourseID: 9, OrderBy: 1, IsActive: true},
			models.Lesson{ID: 2, Slug: "l2", CourseID: 9, OrderBy: 2, IsActive: true},
			models.Lesson{ID: 3, Slug: "l3", CourseID: 9, OrderBy: 3, IsActive: true},
			models.Lesson{ID: 4, Slug: "empty", CourseID: 10, OrderBy: 1, IsActive: true},
		),
		questionRepo: &mockQuestionRepository{questions: map[int][]models.Question{
			1: {
				{ID: 10, LessonID: 1, Text: "Q1", Position: 1, CorrectAnswerID: ptr(101), Answers: []models.Answer{{ID: 100, Text: "no"}, {ID: 101, Text: "yes"}}},
				{ID: 11, LessonID: 1, Text: "Q2", Position: 2, Answers: []models.Answer{{ID: 110, Text: "a"}, {ID: 111, Text: "b"}}},
			},
			2: {
				{ID: 20, LessonID: 2, Text: "Q", Position: 1, CorrectAnswerID: ptr(201), Answers: []models.Answer{{ID: 200}, {ID: 201}}},
			},
			3: {
				{ID: 30, LessonID: 3, Text: "Q", Position: 1, CorrectAnswerID: ptr(1001), Answers: []models.Answer{{ID: 1000, Text: "wrong"}, {ID: 1001, Text: "right"}}},
			},
		}},
		questionRespRepo: &mockQuestionResponseRepository{},
		lessonRespRepo:   newMockLessonResponseRepository(responses...),
		courseRespRepo:   newMockCourseResponseRepository(),
		sessions:         session.NewMemoryStore(time.Hour),
		notifier:         &mockNotifier{},
		cache:            cache.NewMemoryCache(time.Minute),
		logs:             logs,
	}
	f.service = NewQuizService(
		f.lessonRepo,
		f.questionRepo,
		f.questionRespRepo,
		f.lessonRespRepo,
		f.courseRespRepo,
		f.sessions,
		f.notifier,
		f.cache,
		zap.New(core),
	)
	return f
}

func completedResponse(lessonID int) models.LessonResponse {
	return models.LessonResponse{UserID: testUserID, LessonID: lessonID, CourseID: 9, TotalQuestions: 1, TotalAttempted: 1, TotalCorrect: 1, IsCompleted: true}
}

// answer walks one question of a session: select, check, next
func (f *quizFixture) answer(t *testing.T, sessionID string, answerID int) *models.NextResult {
	t.Helper()
	ctx := context.Background()

	_, err := f.service.SelectOption(ctx, testUserID, sessionID, answerID)
	require.NoError(t, err)
	_, err = f.service.CheckAnswer(ctx, testUserID, sessionID)
	require.NoError(t, err)
	result, err := f.service.Next(ctx, testUserID, sessionID)
	require.NoError(t, err)
	return result
}

func TestQuizService_FinalLessonOfCourse(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, completedResponse(1), completedResponse(2))
	require.NoError(t, f.cache.Set(ctx, cache.CourseResponsesKey(testUserID), []models.CourseResponse{}))

	view, err := f.service.StartLesson(ctx, testUserID, "l3")
	require.NoError(t, err)
	assert.Equal(t, models.SessionAnswering, view.State)
	assert.Equal(t, 1, view.QuestionNumber)
	assert.Equal(t, 1, view.TotalQuestions)
	require.NotNil(t, view.Question)
	assert.Equal(t, 30, view.Question.ID)
	assert.Nil(t, view.SelectedAnswerID)

	_, err = f.service.SelectOption(ctx, testUserID, view.SessionID, 1001)
	require.NoError(t, err)
	check, err := f.service.CheckAnswer(ctx, testUserID, view.SessionID)
	require.NoError(t, err)
	assert.True(t, check.Correct)
	assert.True(t, check.IsLastQuestion)
	assert.Equal(t, 1, check.TotalCorrect)

	result, err := f.service.Next(ctx, testUserID, view.SessionID)
	require.NoError(t, err)
	require.NotNil(t, result.Summary)
	assert.Nil(t, result.Session)
	assert.True(t, result.Summary.CourseCompleted)
	assert.Empty(t, result.Summary.NextLessonSlug)
	assert.Equal(t, 100.0, result.Summary.ScorePercentage)

	assert.Len(t, f.questionRespRepo.upserts, 1)
	assert.Equal(t, models.QuestionResponse{UserID: testUserID, QuestionID: 30, AnswerID: 1001}, f.questionRespRepo.upserts[0])
	assert.Equal(t, 1, f.lessonRespRepo.upsertCalls)
	assert.Equal(t, 1, f.courseRespRepo.upsertCalls)

	stored := f.lessonRespRepo.rows[[2]int{testUserID, 3}]
	assert.True(t, stored.IsCompleted)
	assert.Equal(t, models.LessonStatusCompleted, stored.Status)
	require.NotNil(t, stored.ScorePercentage)
	assert.Equal(t, 100.0, *stored.ScorePercentage)
	assert.Equal(t, 1, stored.TotalQuestions)

	course, err := f.courseRespRepo.GetByUserAndCourse(ctx, testUserID, 9)
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.True(t, course.IsCompleted)

	assert.Equal(t, []models.UserCourse{{UserID: testUserID, CourseID: 9}}, f.notifier.calls)

	var cached []models.CourseResponse
	assert.ErrorIs(t, f.cache.Get(ctx, cache.CourseResponsesKey(testUserID), &cached), cache.ErrMiss)
	var lessonResponses []models.LessonResponse
	assert.ErrorIs(t, f.cache.Get(ctx, cache.LessonResponsesKey(testUserID), &lessonResponses), cache.ErrMiss)

	_, err = f.sessions.Load(ctx, testUserID, view.SessionID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	_, err = f.service.Next(ctx, testUserID, view.SessionID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestQuizService_NonFinalLesson(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t)

	view, err := f.service.StartLesson(ctx, testUserID, "l1")
	require.NoError(t, err)
	assert.Equal(t, 2, view.TotalQuestions)

	first := f.answer(t, view.SessionID, 100)
	require.NotNil(t, first.Session)
	assert.Nil(t, first.Summary)
	assert.Equal(t, 2, first.Session.QuestionNumber)
	assert.Equal(t, models.SessionAnswering, first.Session.State)
	assert.Nil(t, first.Session.SelectedAnswerID)

	// question 11 has no correct answer recorded
	_, err = f.service.SelectOption(ctx, testUserID, view.SessionID, 111)
	require.NoError(t, err)
	check, err := f.service.CheckAnswer(ctx, testUserID, view.SessionID)
	require.NoError(t, err)
	assert.False(t, check.Correct)
	assert.Nil(t, check.CorrectAnswerID)

	result, err := f.service.Next(ctx, testUserID, view.SessionID)
	require.NoError(t, err)
	require.NotNil(t, result.Summary)
	assert.False(t, result.Summary.CourseCompleted)
	assert.Equal(t, "l2", result.Summary.NextLessonSlug)
	assert.Equal(t, 2, result.Summary.TotalAttempted)
	assert.Equal(t, 0, result.Summary.TotalCorrect)
	assert.Equal(t, 0.0, result.Summary.ScorePercentage)

	// attempt-completion: a zero score still completes the lesson
	stored := f.lessonRespRepo.rows[[2]int{testUserID, 1}]
	assert.True(t, stored.IsCompleted)
	assert.Equal(t, 0, f.courseRespRepo.upsertCalls)
	assert.Equal(t, 1, f.courseRespRepo.ensureCalls)
	course, err := f.courseRespRepo.GetByUserAndCourse(ctx, testUserID, 9)
	require.NoError(t, err)
	require.NotNil(t, course)
	assert.False(t, course.IsCompleted)
	assert.Empty(t, f.notifier.calls)

	next, err := f.service.StartLesson(ctx, testUserID, "l2")
	require.NoError(t, err)
	assert.Equal(t, "l2", next.LessonSlug)
}

func TestQuizService_StartLesson(t *testing.T) {
	tests := []struct {
		name        string
		responses   []models.LessonResponse
		slug        string
		expectedErr error
	}{
		{name: "first lesson is always unlocked", slug: "l1"},
		{name: "second lesson locked without progress", slug: "l2", expectedErr: models.ErrLessonLocked},
		{name: "third lesson locked when only first completed", slug: "l3", responses: []models.LessonResponse{completedResponse(1)}, expectedErr: models.ErrLessonLocked},
		{name: "second lesson unlocked by legacy score", slug: "l2", responses: []models.LessonResponse{{UserID: testUserID, LessonID: 1, CourseID: 9, ScorePercentage: ptr(70.0)}}},
		{name: "unknown lesson", slug: "missing", expectedErr: models.ErrLessonNotFound},
		{name: "lesson without questions", slug: "empty", expectedErr: models.ErrLessonHasNoQuiz},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newQuizFixture(t, tt.responses...)

			view, err := f.service.StartLesson(context.Background(), testUserID, tt.slug)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, view)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, view.SessionID)
			assert.Equal(t, tt.slug, view.LessonSlug)
		})
	}
}

func TestQuizService_Transitions(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t)

	view, err := f.service.StartLesson(ctx, testUserID, "l1")
	require.NoError(t, err)
	id := view.SessionID

	_, err = f.service.CheckAnswer(ctx, testUserID, id)
	assert.ErrorIs(t, err, models.ErrNoSelection)

	_, err = f.service.Next(ctx, testUserID, id)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = f.service.SelectOption(ctx, testUserID, id, 9999)
	assert.ErrorIs(t, err, models.ErrInvalidOption)

	_, err = f.service.SelectOption(ctx, testUserID, id, 100)
	require.NoError(t, err)
	reselected, err := f.service.SelectOption(ctx, testUserID, id, 101)
	require.NoError(t, err)
	assert.Equal(t, ptr(101), reselected.SelectedAnswerID)

	check, err := f.service.CheckAnswer(ctx, testUserID, id)
	require.NoError(t, err)
	assert.True(t, check.Correct)

	_, err = f.service.CheckAnswer(ctx, testUserID, id)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
	_, err = f.service.SelectOption(ctx, testUserID, id, 100)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = f.service.SelectOption(ctx, 6, id, 100)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)

	assert.Len(t, f.questionRespRepo.upserts, 1)
}

func TestQuizService_Abandon(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t)

	view, err := f.service.StartLesson(ctx, testUserID, "l1")
	require.NoError(t, err)

	assert.ErrorIs(t, f.service.Abandon(ctx, 6, view.SessionID), models.ErrSessionNotFound)
	require.NoError(t, f.service.Abandon(ctx, testUserID, view.SessionID))

	_, err = f.service.SelectOption(ctx, testUserID, view.SessionID, 100)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
	assert.Equal(t, 0, f.lessonRespRepo.upsertCalls)
}

func TestQuizService_WriteFailuresAreSwallowed(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, completedResponse(1), completedResponse(2))
	dbErr := errors.New("database unavailable")
	f.questionRespRepo.err = dbErr
	f.lessonRespRepo.upsertErr = dbErr
	f.courseRespRepo.upsertErr = dbErr

	view, err := f.service.StartLesson(ctx, testUserID, "l3")
	require.NoError(t, err)

	result := f.answer(t, view.SessionID, 1001)

	require.NotNil(t, result.Summary)
	assert.False(t, result.Summary.CourseCompleted)
	assert.Empty(t, f.notifier.calls)
	assert.Equal(t, 1, f.lessonRespRepo.upsertCalls)
	assert.Equal(t, 1, f.courseRespRepo.upsertCalls)

	errorLogs := f.logs.FilterLevelExact(zapcore.ErrorLevel)
	assert.Equal(t, 1, errorLogs.FilterMessage("failed to record question response").Len())
	assert.Equal(t, 1, errorLogs.FilterMessage("failed to record lesson response").Len())
	assert.Equal(t, 1, errorLogs.FilterMessage("failed to record course completion").Len())

	_, err = f.sessions.Load(ctx, testUserID, view.SessionID)
	assert.ErrorIs(t, err, models.ErrSessionNotFound)
}

func TestQuizService_NotifierFailureKeepsCompletion(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, completedResponse(1), completedResponse(2))
	f.notifier.err = errors.New("queue unavailable")

	view, err := f.service.StartLesson(ctx, testUserID, "l3")
	require.NoError(t, err)
	result := f.answer(t, view.SessionID, 1000)

	assert.True(t, result.Summary.CourseCompleted)
	assert.Equal(t, 1, f.logs.FilterMessage("failed to enqueue course completion notice").Len())
}

func TestQuizService_FinalizeIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, completedResponse(1), completedResponse(2))

	for range 2 {
		view, err := f.service.StartLesson(ctx, testUserID, "l3")
		require.NoError(t, err)
		f.answer(t, view.SessionID, 1001)
	}

	assert.Len(t, f.lessonRespRepo.rows, 3)
	assert.Len(t, f.courseRespRepo.rows, 1)
	assert.Equal(t, completedResponse(1).TotalCorrect, f.lessonRespRepo.rows[[2]int{testUserID, 3}].TotalCorrect)
	assert.True(t, f.courseRespRepo.rows[[2]int{testUserID, 9}].IsCompleted)
}

// barrierStore holds every Load until wait callers have loaded, so they all see the same state
type barrierStore struct {
	*session.MemoryStore
	loaded sync.WaitGroup
}

func (s *barrierStore) Load(ctx context.Context, userID int, id string) (*models.PlaySession, error) {
	ps, err := s.MemoryStore.Load(ctx, userID, id)
	s.loaded.Done()
	s.loaded.Wait()
	return ps, err
}

func TestQuizService_ConcurrentNextFinalizesOnce(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, completedResponse(1), completedResponse(2))

	view, err := f.service.StartLesson(ctx, testUserID, "l3")
	require.NoError(t, err)
	_, err = f.service.SelectOption(ctx, testUserID, view.SessionID, 1001)
	require.NoError(t, err)
	_, err = f.service.CheckAnswer(ctx, testUserID, view.SessionID)
	require.NoError(t, err)

	const callers = 2
	store := &barrierStore{MemoryStore: f.sessions}
	store.loaded.Add(callers)
	f.service.sessions = store

	var wg sync.WaitGroup
	results := make([]*models.NextResult, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = f.service.Next(ctx, testUserID, view.SessionID)
		}()
	}
	wg.Wait()

	finalized := 0
	for i := range callers {
		if errs[i] != nil {
			assert.ErrorIs(t, errs[i], models.ErrInvalidTransition)
			continue
		}
		require.NotNil(t, results[i].Summary)
		finalized++
	}
	assert.Equal(t, 1, finalized)
	assert.Equal(t, 1, f.lessonRespRepo.upsertCalls)
	assert.Equal(t, 1, f.courseRespRepo.upsertCalls)
	assert.Len(t, f.notifier.calls, 1)
}

func TestQuizService_StartedCourseIsRanked(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t)

	view, err := f.service.StartLesson(ctx, testUserID, "l2")
	require.ErrorIs(t, err, models.ErrLessonLocked)
	assert.Nil(t, view)

	view, err = f.service.StartLesson(ctx, testUserID, "l1")
	require.NoError(t, err)
	f.answer(t, view.SessionID, 101)
	f.answer(t, view.SessionID, 110)

	rankService := NewRankService(
		newMockCourseRepository(models.Course{ID: 9, Slug: "go", Title: "Go", IsActive: true}),
		f.lessonRespRepo,
		f.courseRespRepo,
		&mockUserRepository{},
	)
	ranks, err := rankService.GetMyRanks(ctx, testUserID)

	require.NoError(t, err)
	require.Len(t, ranks, 1)
	assert.Equal(t, "go", ranks[0].CourseSlug)
	assert.Equal(t, ptr(1), ranks[0].Rank)
	assert.Equal(t, 1, ranks[0].MyTotal)
}

func TestQuizService_ReplayKeepsCourseCompletion(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t, completedResponse(1), completedResponse(2))

	view, err := f.service.StartLesson(ctx, testUserID, "l3")
	require.NoError(t, err)
	f.answer(t, view.SessionID, 1001)

	view, err = f.service.StartLesson(ctx, testUserID, "l2")
	require.NoError(t, err)
	result := f.answer(t, view.SessionID, 200)

	assert.False(t, result.Summary.CourseCompleted)
	assert.Equal(t, 1, f.courseRespRepo.ensureCalls)
	assert.True(t, f.courseRespRepo.rows[[2]int{testUserID, 9}].IsCompleted)
}

func TestQuizService_CourseStartFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	f := newQuizFixture(t)
	f.courseRespRepo.upsertErr = errors.New("database unavailable")

	view, err := f.service.StartLesson(ctx, testUserID, "l1")
	require.NoError(t, err)
	f.answer(t, view.SessionID, 101)
	result := f.answer(t, view.SessionID, 110)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "l2", result.Summary.NextLessonSlug)
	assert.Equal(t, 1, f.logs.FilterMessage("failed to record course start").Len())
}
