package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnpath/backend/internal/models"
	authMiddleware "github.com/learnpath/backend/libs/auth/middleware"
	authService "github.com/learnpath/backend/libs/auth/service"
)

// withClaims returns a middleware that authenticates every request as the given user
func withClaims(userID, role int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := &authService.Claims{UserID: userID, Role: role}
			next.ServeHTTP(w, r.WithContext(authMiddleware.WithClaims(r.Context(), claims)))
		})
	}
}

// passThrough is a middleware that leaves the request unauthenticated
func passThrough(next http.Handler) http.Handler {
	return next
}

func newRouter(register func(r chi.Router)) chi.Router {
	r := chi.NewRouter()
	register(r)
	return r
}

// mockUserLessonService is a mock implementation of UserLessonService
type mockUserLessonService struct {
	filter  models.CourseFilter
	userID  int
	slug    string
	courses []models.CourseDetailResponse
	course  *models.CourseDetailResponse
	path    []models.LessonPathItem
	lesson  *models.LessonDetailResponse
	err     error
}

func (m *mockUserLessonService) GetCoursesList(ctx context.Context, userID int, filter models.CourseFilter) ([]models.CourseDetailResponse, error) {
	m.userID, m.filter = userID, filter
	return m.courses, m.err
}

func (m *mockUserLessonService) GetLessonsInCourse(ctx context.Context, userID int, courseSlug string) (*models.CourseDetailResponse, []models.LessonPathItem, error) {
	m.userID, m.slug = userID, courseSlug
	return m.course, m.path, m.err
}

func (m *mockUserLessonService) GetLesson(ctx context.Context, userID int, lessonSlug string) (*models.LessonDetailResponse, error) {
	m.userID, m.slug = userID, lessonSlug
	return m.lesson, m.err
}

func (m *mockUserLessonService) ResetCourseProgress(ctx context.Context, userID int, courseSlug string) error {
	m.userID, m.slug = userID, courseSlug
	return m.err
}

// mockQuizService is a mock implementation of QuizService
type mockQuizService struct {
	userID    int
	sessionID string
	answerID  int
	view      *models.SessionView
	check     *models.CheckResult
	next      *models.NextResult
	err       error
}

func (m *mockQuizService) StartLesson(ctx context.Context, userID int, lessonSlug string) (*models.SessionView, error) {
	m.userID = userID
	return m.view, m.err
}

func (m *mockQuizService) SelectOption(ctx context.Context, userID int, sessionID string, answerID int) (*models.SessionView, error) {
	m.userID, m.sessionID, m.answerID = userID, sessionID, answerID
	return m.view, m.err
}

func (m *mockQuizService) CheckAnswer(ctx context.Context, userID int, sessionID string) (*models.CheckResult, error) {
	m.userID, m.sessionID = userID, sessionID
	return m.check, m.err
}

func (m *mockQuizService) Next(ctx context.Context, userID int, sessionID string) (*models.NextResult, error) {
	m.userID, m.sessionID = userID, sessionID
	return m.next, m.err
}

func (m *mockQuizService) Abandon(ctx context.Context, userID int, sessionID string) error {
	m.userID, m.sessionID = userID, sessionID
	return m.err
}

// mockRankService is a mock implementation of RankService
type mockRankService struct {
	limit int
	rank  *models.CourseRank
	ranks []models.CourseRank
	board []models.LeaderboardEntry
	err   error
}

func (m *mockRankService) GetCourseRank(ctx context.Context, userID int, courseSlug string) (*models.CourseRank, error) {
	return m.rank, m.err
}

func (m *mockRankService) GetMyRanks(ctx context.Context, userID int) ([]models.CourseRank, error) {
	return m.ranks, m.err
}

func (m *mockRankService) GetLeaderboard(ctx context.Context, courseSlug string, limit int) ([]models.LeaderboardEntry, error) {
	m.limit = limit
	return m.board, m.err
}

// mockAdminService is a mock implementation of AdminService recording the caller's tutor ID
type mockAdminService struct {
	tutorID    *int
	calledWith int
	courseReq  *models.CreateCourseRequest
	err        error
}

func (m *mockAdminService) GetCourses(ctx context.Context, tutorID *int, complexityLevel *models.ComplexityLevel, search string, page, count int) ([]models.CourseListItem, error) {
	m.tutorID = tutorID
	return []models.CourseListItem{}, m.err
}

func (m *mockAdminService) CreateCourse(ctx context.Context, tutorID *int, req *models.CreateCourseRequest) (int, error) {
	m.tutorID, m.courseReq = tutorID, req
	return 12, m.err
}

func (m *mockAdminService) UpdateCourse(ctx context.Context, courseID int, tutorID *int, req *models.UpdateCourseRequest) error {
	m.tutorID, m.calledWith = tutorID, courseID
	return m.err
}

func (m *mockAdminService) DeleteCourse(ctx context.Context, courseID int, tutorID *int) error {
	m.tutorID, m.calledWith = tutorID, courseID
	return m.err
}

func (m *mockAdminService) GetLessonsForCourse(ctx context.Context, courseID int, tutorID *int) (*models.Course, []models.Lesson, error) {
	m.tutorID, m.calledWith = tutorID, courseID
	return &models.Course{ID: courseID}, []models.Lesson{}, m.err
}

func (m *mockAdminService) CreateLesson(ctx context.Context, tutorID *int, req *models.CreateLessonRequest) (int, error) {
	m.tutorID = tutorID
	return 21, m.err
}

func (m *mockAdminService) UpdateLesson(ctx context.Context, lessonID int, tutorID *int, req *models.UpdateLessonRequest) error {
	m.tutorID, m.calledWith = tutorID, lessonID
	return m.err
}

func (m *mockAdminService) DeleteLesson(ctx context.Context, lessonID int, tutorID *int) error {
	m.tutorID, m.calledWith = tutorID, lessonID
	return m.err
}

func (m *mockAdminService) GetQuestions(ctx context.Context, lessonID int, tutorID *int) ([]models.Question, error) {
	m.tutorID, m.calledWith = tutorID, lessonID
	return []models.Question{}, m.err
}

func (m *mockAdminService) CreateQuestion(ctx context.Context, tutorID *int, req *models.CreateQuestionRequest) (*models.Question, error) {
	m.tutorID = tutorID
	if m.err != nil {
		return nil, m.err
	}
	return &models.Question{ID: 31, LessonID: req.LessonID, Text: req.Text}, nil
}

func (m *mockAdminService) DeleteQuestion(ctx context.Context, questionID int, tutorID *int) error {
	m.tutorID, m.calledWith = tutorID, questionID
	return m.err
}

// mockReconcileEnqueuer is a mock implementation of ReconcileEnqueuer
type mockReconcileEnqueuer struct {
	calls  int
	userID *int
	err    error
}

func (m *mockReconcileEnqueuer) EnqueueReconcile(ctx context.Context, userID *int) error {
	m.calls++
	m.userID = userID
	return m.err
}
