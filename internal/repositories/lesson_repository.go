package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/learnpath/backend/internal/models"
)

type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

const lessonColumns = `id, slug, course_id, title, short_summary, order_by, duration_minutes, is_active`

func scanLesson(scanner interface{ Scan(...any) error }, lesson *models.Lesson) error {
	return scanner.Scan(
		&lesson.ID,
		&lesson.Slug,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.ShortSummary,
		&lesson.OrderBy,
		&lesson.DurationMinutes,
		&lesson.IsActive,
	)
}

// GetBySlug retrieves an active lesson by its slug
func (r *lessonRepository) GetBySlug(ctx context.Context, slug string) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE slug = ? AND is_active = 1 LIMIT 1`

	var lesson models.Lesson
	err := scanLesson(r.db.QueryRowContext(ctx, query, slug), &lesson)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by slug: %w", err)
	}

	return &lesson, nil
}

// GetByID retrieves a lesson by its ID, active or not
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = ? LIMIT 1`

	var lesson models.Lesson
	err := scanLesson(r.db.QueryRowContext(ctx, query, id), &lesson)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetByCourseID retrieves the lessons of a course in path order.
// activeOnly hides deactivated lessons, which students never see.
func (r *lessonRepository) GetByCourseID(ctx context.Context, courseID int, activeOnly bool) ([]models.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE course_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY order_by, id`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lessons: %w", err)
	}
	defer rows.Close()

	lessons := make([]models.Lesson, 0)
	for rows.Next() {
		var lesson models.Lesson
		if err := scanLesson(rows, &lesson); err != nil {
			return nil, fmt.Errorf("failed to scan lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return lessons, nil
}

// ExistsBySlug checks if a lesson with the slug exists
func (r *lessonRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM lessons WHERE slug = ?)`, slug).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson existence: %w", err)
	}

	return exists, nil
}

// ExistsByOrderInCourse checks if a lesson already holds the order position in the course
func (r *lessonRepository) ExistsByOrderInCourse(ctx context.Context, courseID int, order int) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM lessons WHERE course_id = ? AND order_by = ?)`, courseID, order).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check lesson order existence: %w", err)
	}

	return exists, nil
}

// IncrementOrderForLessons shifts lessons at or after order one position down the path
func (r *lessonRepository) IncrementOrderForLessons(ctx context.Context, courseID, order int) error {
	query := `
		UPDATE lessons
		SET order_by = order_by + 1
		WHERE course_id = ? AND order_by >= ?
	`

	if _, err := r.db.ExecContext(ctx, query, courseID, order); err != nil {
		return fmt.Errorf("failed to increment lesson order: %w", err)
	}

	return nil
}

// Create inserts a new lesson and sets its ID
func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	query := `
		INSERT INTO lessons (slug, course_id, title, short_summary, order_by, duration_minutes, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		lesson.Slug,
		lesson.CourseID,
		lesson.Title,
		lesson.ShortSummary,
		lesson.OrderBy,
		lesson.DurationMinutes,
		lesson.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to create lesson: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	lesson.ID = int(id)
	return nil
}

// Update applies the set fields of req to the lesson
func (r *lessonRepository) Update(ctx context.Context, id int, req *models.UpdateLessonRequest) error {
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
	if req.OrderBy != nil {
		setClauses = append(setClauses, "order_by = ?")
		args = append(args, *req.OrderBy)
	}
	if req.DurationMinutes != nil {
		setClauses = append(setClauses, "duration_minutes = ?")
		args = append(args, *req.DurationMinutes)
	}
	if req.IsActive != nil {
		setClauses = append(setClauses, "is_active = ?")
		args = append(args, *req.IsActive)
	}

	if len(setClauses) == 0 {
		return nil
	}

	query := fmt.Sprintf("UPDATE lessons SET %s WHERE id = ?", strings.Join(setClauses, ", "))
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update lesson: %w", err)
	}

	return nil
}

// Delete deletes a lesson. Its questions and responses cascade.
func (r *lessonRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM lessons WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrLessonNotFound
	}

	return nil
}
