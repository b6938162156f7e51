package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/learnpath/backend/internal/models"
)

// completedLessonPredicate is the SQL form of progression.IsLessonCompleted for alias lr.
// It is only used where lessons are counted inside a query.
const completedLessonPredicate = `(lr.is_completed = 1 OR lr.score_percentage >= 70 OR lr.status = 'completed')`

type courseRepository struct {
	db *sql.DB
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *sql.DB) *courseRepository {
	return &courseRepository{
		db: db,
	}
}

// GetBySlug retrieves an active course by its slug
func (r *courseRepository) GetBySlug(ctx context.Context, slug string) (*models.Course, error) {
	query := `
		SELECT id, slug, author_id, title, short_summary, complexity_level, is_active
		FROM courses
		WHERE slug = ? AND is_active = 1
		LIMIT 1
	`

	return r.scanCourse(r.db.QueryRowContext(ctx, query, slug))
}

// GetByID retrieves a course by its ID, active or not
func (r *courseRepository) GetByID(ctx context.Context, id int) (*models.Course, error) {
	query := `
		SELECT id, slug, author_id, title, short_summary, complexity_level, is_active
		FROM courses
		WHERE id = ?
		LIMIT 1
	`

	return r.scanCourse(r.db.QueryRowContext(ctx, query, id))
}

func (r *courseRepository) scanCourse(row *sql.Row) (*models.Course, error) {
	var course models.Course
	err := row.Scan(
		&course.ID,
		&course.Slug,
		&course.AuthorID,
		&course.Title,
		&course.ShortSummary,
		&course.ComplexityLevel,
		&course.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return &course, nil
}

// GetAll retrieves active courses with the user's progress, filtering and pagination
func (r *courseRepository) GetAll(ctx context.Context, userID int, filter models.CourseFilter) ([]models.CourseDetailResponse, error) {
	whereClauses := []string{"c.is_active = 1"}
	args := []any{userID, userID}

	if filter.IsMine {
		whereClauses = append(whereClauses, "cr.id IS NOT NULL")
	}

	if filter.ComplexityLevel != nil {
		whereClauses = append(whereClauses, "c.complexity_level = ?")
		args = append(args, *filter.ComplexityLevel)
	}

	if filter.Search != "" {
		whereClauses = append(whereClauses, "c.title LIKE ?")
		args = append(args, "%"+filter.Search+"%")
	}

	offset := (filter.Page - 1) * filter.Count

	query := fmt.Sprintf(`
		SELECT 
			c.id,
			c.slug,
			c.title,
			c.complexity_level,
			COUNT(DISTINCT l.id) as total_lessons,
			COUNT(DISTINCT CASE WHEN %s THEN lr.lesson_id END) as completed_lessons,
			COALESCE(MAX(cr.is_completed), 0) as is_completed
		FROM courses c
		LEFT JOIN lessons l ON l.course_id = c.id AND l.is_active = 1
		LEFT JOIN lesson_responses lr ON lr.lesson_id = l.id AND lr.user_id = ? AND lr.is_erased = 0
		LEFT JOIN course_responses cr ON cr.course_id = c.id AND cr.user_id = ? AND cr.is_erased = 0
		WHERE %s
		GROUP BY c.id, c.slug, c.title, c.complexity_level
		ORDER BY c.id
		LIMIT ? OFFSET ?
	`, completedLessonPredicate, strings.Join(whereClauses, " AND "))

	args = append(args, filter.Count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.CourseDetailResponse, 0)
	for rows.Next() {
		var course models.CourseDetailResponse
		err := rows.Scan(
			&course.ID,
			&course.Slug,
			&course.Title,
			&course.ComplexityLevel,
			&course.TotalLessons,
			&course.CompletedLessons,
			&course.IsCompleted,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// GetByAuthorOrFull retrieves courses by author ID or the full list with filtering and pagination
func (r *courseRepository) GetByAuthorOrFull(ctx context.Context, authorID *int, complexityLevel *models.ComplexityLevel, search string, page, count int) ([]models.CourseListItem, error) {
	whereClauses := []string{}
	args := []any{}
	if authorID != nil {
		whereClauses = append(whereClauses, "author_id = ?")
		args = append(args, *authorID)
	}

	if complexityLevel != nil {
		whereClauses = append(whereClauses, "complexity_level = ?")
		args = append(args, *complexityLevel)
	}

	if search != "" {
		whereClauses = append(whereClauses, "title LIKE ?")
		args = append(args, "%"+search+"%")
	}

	whereClause := ""
	if len(whereClauses) > 0 {
		whereClause = "WHERE " + strings.Join(whereClauses, " AND ")
	}

	offset := (page - 1) * count

	query := fmt.Sprintf(`
		SELECT id, slug, title, complexity_level, author_id, is_active
		FROM courses
		%s
		ORDER BY id
		LIMIT ? OFFSET ?
	`, whereClause)

	args = append(args, count, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	courses := make([]models.CourseListItem, 0)
	for rows.Next() {
		var course models.CourseListItem
		if err := rows.Scan(&course.ID, &course.Slug, &course.Title, &course.ComplexityLevel, &course.AuthorID, &course.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return courses, nil
}

// Create inserts a new course and sets its ID
func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (slug, author_id, title, short_summary, complexity_level, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		course.Slug,
		course.AuthorID,
		course.Title,
		course.ShortSummary,
		course.ComplexityLevel,
		course.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	course.ID = int(id)
	return nil
}

// Update applies the non-empty fields of req to the course
func (r *courseRepository) Update(ctx context.Context, id int, req *models.UpdateCourseRequest) error {
	setClauses := []string{}
	args := []any{}

	if req.Slug != "" {
		setClauses = append(setClauses, "slug = ?")
		args = append(args, req.Slug)
	}
	if req.Title != "" {
		setClauses = append(setClauses, "title = ?")
		args = append(args, req.Title)
	}
	if req.ShortSummary != "" {
		setClauses = append(setClauses, "short_summary = ?")
		args = append(args, req.ShortSummary)
	}
	if req.ComplexityLevel != "" {
		setClauses = append(setClauses, "complexity_level = ?")
		args = append(args, req.ComplexityLevel)
	}
	if req.IsActive != nil {
		setClauses = append(setClauses, "is_active = ?")
		args = append(args, *req.IsActive)
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE courses SET %s WHERE id = ?", strings.Join(setClauses, ", "))
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}

	return nil
}

// Delete deletes a course. Lessons, questions and responses cascade.
func (r *courseRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrCourseNotFound
	}

	return nil
}

// ExistsBySlug checks if a course with the slug exists
func (r *courseRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE slug = ?)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course existence: %w", err)
	}

	return exists, nil
}

// CheckOwnership checks if the course is authored by authorID
func (r *courseRepository) CheckOwnership(ctx context.Context, courseID, authorID int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM courses WHERE id = ? AND author_id = ?)`, courseID, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check course ownership: %w", err)
	}

	return exists, nil
}
