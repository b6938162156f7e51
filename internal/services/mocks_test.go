package services

import (
	"context"
	"sync"

	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progression"
)

func ptr[T any](v T) *T {
	return &v
}

// mockCourseRepository is a mock implementation of CourseRepository and AdminCourseRepository
type mockCourseRepository struct {
	mu       sync.Mutex
	courses  map[int]*models.Course
	listed   []models.CourseDetailResponse
	filter   models.CourseFilter
	slugs    map[string]bool
	created  []*models.Course
	updated  map[int]*models.UpdateCourseRequest
	deleted  []int
	err      error
	getIDErr error
}

func newMockCourseRepository(courses ...models.Course) *mockCourseRepository {
	m := &mockCourseRepository{
		courses: make(map[int]*models.Course),
		slugs:   make(map[string]bool),
		updated: make(map[int]*models.UpdateCourseRequest),
	}
	for i := range courses {
		c := courses[i]
		m.courses[c.ID] = &c
		m.slugs[c.Slug] = true
	}
	return m
}

func (m *mockCourseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.courses {
		if c.Slug == slug && c.IsActive {
			course := *c
			return &course, nil
		}
	}
	return nil, models.ErrCourseNotFound
}

func (m *mockCourseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	if m.getIDErr != nil {
		return nil, m.getIDErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[id]
	if !ok {
		return nil, models.ErrCourseNotFound
	}
	course := *c
	return &course, nil
}

func (m *mockCourseRepository) GetAll(ctx context.Context, userID int, filter models.CourseFilter) ([]models.CourseDetailResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.filter = filter
	return m.listed, nil
}

func (m *mockCourseRepository) GetByAuthorOrFull(ctx context.Context, authorID *int, complexityLevel *models.ComplexityLevel, search string, page, count int) ([]models.CourseListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	items := make([]models.CourseListItem, 0)
	for _, c := range m.courses {
		if authorID == nil || c.AuthorID == *authorID {
			items = append(items, models.CourseListItem{ID: c.ID, Slug: c.Slug, AuthorID: c.AuthorID})
		}
	}
	return items, nil
}

func (m *mockCourseRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slugs[slug], nil
}

func (m *mockCourseRepository) Create(ctx context.Context, course *models.Course) error {
	if m.err != nil {
		return m.err
	}
	course.ID = 100 + len(m.created)
	m.created = append(m.created, course)
	return nil
}

func (m *mockCourseRepository) Update(ctx context.Context, id int, req *models.UpdateCourseRequest) error {
	if m.err != nil {
		return m.err
	}
	m.updated[id] = req
	return nil
}

func (m *mockCourseRepository) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockLessonRepository is a mock implementation of LessonRepository and AdminLessonRepository
type mockLessonRepository struct {
	lessons     []models.Lesson
	slugs       map[string]bool
	created     []*models.Lesson
	updated     map[int]*models.UpdateLessonRequest
	deleted     []int
	incremented [][2]int
	listCalls   int
	err         error
}

func newMockLessonRepository(lessons ...models.Lesson) *mockLessonRepository {
	m := &mockLessonRepository{
		lessons: lessons,
		slugs:   make(map[string]bool),
		updated: make(map[int]*models.UpdateLessonRequest),
	}
	for _, l := range lessons {
		m.slugs[l.Slug] = true
	}
	return m
}

func (m *mockLessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, l := range m.lessons {
		if l.Slug == slug && l.IsActive {
			lesson := l
			return &lesson, nil
		}
	}
	return nil, models.ErrLessonNotFound
}

func (m *mockLessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, l := range m.lessons {
		if l.ID == id {
			lesson := l
			return &lesson, nil
		}
	}
	return nil, models.ErrLessonNotFound
}

func (m *mockLessonRepository) GetByCourseID(ctx context.Context, courseID int, activeOnly bool) ([]models.Lesson, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	lessons := make([]models.Lesson, 0)
	for _, l := range m.lessons {
		if l.CourseID == courseID && (!activeOnly || l.IsActive) {
			lessons = append(lessons, l)
		}
	}
	progression.SortLessons(lessons)
	return lessons, nil
}

func (m *mockLessonRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.slugs[slug], nil
}

func (m *mockLessonRepository) ExistsByOrderInCourse(ctx context.Context, courseID int, order int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	for _, l := range m.lessons {
		if l.CourseID == courseID && l.OrderBy == order {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockLessonRepository) IncrementOrderForLessons(ctx context.Context, courseID, order int) error {
	if m.err != nil {
		return m.err
	}
	m.incremented = append(m.incremented, [2]int{courseID, order})
	return nil
}

func (m *mockLessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if m.err != nil {
		return m.err
	}
	lesson.ID = 200 + len(m.created)
	m.created = append(m.created, lesson)
	return nil
}

func (m *mockLessonRepository) Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error {
	if m.err != nil {
		return m.err
	}
	m.updated[id] = req
	return nil
}

func (m *mockLessonRepository) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockQuestionRepository is a mock implementation of QuestionRepository and AdminQuestionRepository
type mockQuestionRepository struct {
	questions map[int][]models.Question
	created   []*models.Question
	deleted   []int
	err       error
}

func (m *mockQuestionRepository) GetByLessonID(ctx context.Context, lessonID int) ([]models.Question, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.questions[lessonID], nil
}

func (m *mockQuestionRepository) CountByLessonID(ctx context.Context, lessonID int) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.questions[lessonID]), nil
}

func (m *mockQuestionRepository) GetByID(ctx context.Context, id int) (*models.Question, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, qs := range m.questions {
		for _, q := range qs {
			if q.ID == id {
				question := q
				return &question, nil
			}
		}
	}
	return nil, models.ErrQuestionNotFound
}

func (m *mockQuestionRepository) Create(ctx context.Context, question *models.Question, options []string, correctOption int) error {
	if m.err != nil {
		return m.err
	}
	question.ID = 300 + len(m.created)
	m.created = append(m.created, question)
	return nil
}

func (m *mockQuestionRepository) Delete(ctx context.Context, id int) error {
	if m.err != nil {
		return m.err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// mockLessonResponseRepository is a map-backed mock of LessonResponseRepository, ScoreRepository
// and UserCourseRepository. Upsert replaces by (user, lesson) like the real unique key does.
type mockLessonResponseRepository struct {
	mu          sync.Mutex
	rows        map[[2]int]models.LessonResponse
	upsertCalls int
	getCalls    int
	erased      [][2]int
	upsertErr   error
	getErr      error
}

func newMockLessonResponseRepository(rows ...models.LessonResponse) *mockLessonResponseRepository {
	m := &mockLessonResponseRepository{rows: make(map[[2]int]models.LessonResponse)}
	for _, r := range rows {
		m.rows[[2]int{r.UserID, r.LessonID}] = r
	}
	return m
}

func (m *mockLessonResponseRepository) GetByUser(ctx context.Context, userID int) ([]models.LessonResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getErr != nil {
		return nil, m.getErr
	}
	responses := make([]models.LessonResponse, 0)
	for key, r := range m.rows {
		if key[0] == userID {
			r.Completion = progression.DeriveCompletion(r.IsCompleted, r.ScorePercentage, r.Status)
			responses = append(responses, r)
		}
	}
	return responses, nil
}

func (m *mockLessonResponseRepository) Upsert(ctx context.Context, resp *models.LessonResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.rows[[2]int{resp.UserID, resp.LessonID}] = *resp
	return nil
}

func (m *mockLessonResponseRepository) EraseByUserAndCourse(ctx context.Context, userID, courseID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.erased = append(m.erased, [2]int{userID, courseID})
	for key, r := range m.rows {
		if key[0] == userID && r.CourseID == courseID {
			delete(m.rows, key)
		}
	}
	return nil
}

func (m *mockLessonResponseRepository) GetScoresByCourse(ctx context.Context, courseID int) ([]models.LessonScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	scores := make([]models.LessonScore, 0)
	for _, r := range m.rows {
		if r.CourseID == courseID {
			scores = append(scores, models.LessonScore{UserID: r.UserID, CourseID: r.CourseID, TotalCorrect: r.TotalCorrect})
		}
	}
	return scores, nil
}

func (m *mockLessonResponseRepository) GetUserCoursePairs(ctx context.Context, userID *int) ([]models.UserCourse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	seen := make(map[models.UserCourse]bool)
	pairs := make([]models.UserCourse, 0)
	for _, r := range m.rows {
		pair := models.UserCourse{UserID: r.UserID, CourseID: r.CourseID}
		if (userID == nil || *userID == r.UserID) && !seen[pair] {
			seen[pair] = true
			pairs = append(pairs, pair)
		}
	}
	return pairs, nil
}

// mockCourseResponseRepository is a map-backed mock of CourseResponseRepository
type mockCourseResponseRepository struct {
	mu          sync.Mutex
	rows        map[[2]int]models.CourseResponse
	order       [][2]int
	upsertCalls int
	ensureCalls int
	upsertErr   error
	getErr      error
}

func newMockCourseResponseRepository(rows ...models.CourseResponse) *mockCourseResponseRepository {
	m := &mockCourseResponseRepository{rows: make(map[[2]int]models.CourseResponse)}
	for _, r := range rows {
		key := [2]int{r.UserID, r.CourseID}
		m.rows[key] = r
		m.order = append(m.order, key)
	}
	return m
}

func (m *mockCourseResponseRepository) GetByUser(ctx context.Context, userID int) ([]models.CourseResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	responses := make([]models.CourseResponse, 0)
	for _, key := range m.order {
		if key[0] == userID {
			responses = append(responses, m.rows[key])
		}
	}
	return responses, nil
}

func (m *mockCourseResponseRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CourseResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	r, ok := m.rows[[2]int{userID, courseID}]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *mockCourseResponseRepository) Upsert(ctx context.Context, resp *models.CourseResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := [2]int{resp.UserID, resp.CourseID}
	if _, ok := m.rows[key]; !ok {
		m.order = append(m.order, key)
	}
	m.rows[key] = *resp
	return nil
}

func (m *mockCourseResponseRepository) EnsureStarted(ctx context.Context, userID, courseID int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensureCalls++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	key := [2]int{userID, courseID}
	if _, ok := m.rows[key]; !ok {
		m.order = append(m.order, key)
		m.rows[key] = models.CourseResponse{UserID: userID, CourseID: courseID}
	}
	return nil
}

// mockQuestionResponseRepository is a mock implementation of QuestionResponseRepository
type mockQuestionResponseRepository struct {
	upserts []models.QuestionResponse
	err     error
}

func (m *mockQuestionResponseRepository) Upsert(ctx context.Context, resp *models.QuestionResponse) error {
	m.upserts = append(m.upserts, *resp)
	return m.err
}

// mockNotifier is a mock implementation of CompletionNotifier
type mockNotifier struct {
	calls []models.UserCourse
	err   error
}

func (m *mockNotifier) EnqueueCourseCompleted(ctx context.Context, userID, courseID int) error {
	m.calls = append(m.calls, models.UserCourse{UserID: userID, CourseID: courseID})
	return m.err
}

// mockUserRepository is a mock implementation of UserRepository
type mockUserRepository struct {
	users map[int]models.User
	err   error
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

func (m *mockUserRepository) GetByIDs(ctx context.Context, ids []int) (map[int]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	users := make(map[int]models.User)
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			users[id] = u
		}
	}
	return users, nil
}
