package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progression"
)

type lessonResponseRepository struct {
	db *sql.DB
}

// NewLessonResponseRepository creates a new lesson response repository
func NewLessonResponseRepository(db *sql.DB) *lessonResponseRepository {
	return &lessonResponseRepository{
		db: db,
	}
}

const lessonResponseColumns = `user_id, lesson_id, course_id, total_questions, total_attempted, total_correct, is_completed, score_percentage, status`

// scanLessonResponse scans a row and derives its completion status
func scanLessonResponse(scanner interface{ Scan(...any) error }) (models.LessonResponse, error) {
	var (
		resp  models.LessonResponse
		score sql.NullFloat64
	)
	err := scanner.Scan(
		&resp.UserID,
		&resp.LessonID,
		&resp.CourseID,
		&resp.TotalQuestions,
		&resp.TotalAttempted,
		&resp.TotalCorrect,
		&resp.IsCompleted,
		&score,
		&resp.Status,
	)
	if err != nil {
		return resp, err
	}
	if score.Valid {
		v := score.Float64
		resp.ScorePercentage = &v
	}
	resp.Completion = progression.DeriveCompletion(resp.IsCompleted, resp.ScorePercentage, resp.Status)
	return resp, nil
}

func (r *lessonResponseRepository) queryResponses(ctx context.Context, query string, args ...any) ([]models.LessonResponse, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson responses: %w", err)
	}
	defer rows.Close()

	responses := make([]models.LessonResponse, 0)
	for rows.Next() {
		resp, err := scanLessonResponse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lesson response: %w", err)
		}
		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return responses, nil
}

// GetByUser retrieves all live lesson responses of a user
func (r *lessonResponseRepository) GetByUser(ctx context.Context, userID int) ([]models.LessonResponse, error) {
	query := `SELECT ` + lessonResponseColumns + ` FROM lesson_responses WHERE user_id = ? AND is_erased = 0`
	return r.queryResponses(ctx, query, userID)
}

// GetByUserAndCourse retrieves the live lesson responses of a user in one course
func (r *lessonResponseRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) ([]models.LessonResponse, error) {
	query := `SELECT ` + lessonResponseColumns + ` FROM lesson_responses WHERE user_id = ? AND course_id = ? AND is_erased = 0`
	return r.queryResponses(ctx, query, userID, courseID)
}

// GetByUserAndLesson retrieves a user's response for a lesson. It returns nil when none is recorded.
func (r *lessonResponseRepository) GetByUserAndLesson(ctx context.Context, userID, lessonID int) (*models.LessonResponse, error) {
	query := `SELECT ` + lessonResponseColumns + ` FROM lesson_responses WHERE user_id = ? AND lesson_id = ? AND is_erased = 0 LIMIT 1`

	resp, err := scanLessonResponse(r.db.QueryRowContext(ctx, query, userID, lessonID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson response: %w", err)
	}

	return &resp, nil
}

// Upsert records the outcome of a lesson, replacing any earlier one for the same user and lesson
func (r *lessonResponseRepository) Upsert(ctx context.Context, resp *models.LessonResponse) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO lesson_responses
		(user_id, lesson_id, course_id, total_questions, total_attempted, total_correct,
		 is_completed, score_percentage, status, is_erased)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0)
		ON DUPLICATE KEY UPDATE
			total_questions = VALUES(total_questions),
			total_attempted = VALUES(total_attempted),
			total_correct = VALUES(total_correct),
			is_completed = VALUES(is_completed),
			score_percentage = VALUES(score_percentage),
			status = VALUES(status),
			is_erased = 0
	`

	_, err = tx.ExecContext(ctx, query,
		resp.UserID,
		resp.LessonID,
		resp.CourseID,
		resp.TotalQuestions,
		resp.TotalAttempted,
		resp.TotalCorrect,
		resp.IsCompleted,
		resp.ScorePercentage,
		resp.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert lesson response: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetScoresByCourse retrieves the ranking projection of every live lesson response in a course
func (r *lessonResponseRepository) GetScoresByCourse(ctx context.Context, courseID int) ([]models.LessonScore, error) {
	query := `
		SELECT user_id, course_id, total_correct
		FROM lesson_responses
		WHERE course_id = ? AND is_erased = 0
	`

	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lesson scores: %w", err)
	}
	defer rows.Close()

	scores := make([]models.LessonScore, 0)
	for rows.Next() {
		var s models.LessonScore
		if err := rows.Scan(&s.UserID, &s.CourseID, &s.TotalCorrect); err != nil {
			return nil, fmt.Errorf("failed to scan lesson score: %w", err)
		}
		scores = append(scores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return scores, nil
}

// GetUserCoursePairs lists the distinct (user, course) pairs with lesson responses.
// A nil userID lists the pairs of every user.
func (r *lessonResponseRepository) GetUserCoursePairs(ctx context.Context, userID *int) ([]models.UserCourse, error) {
	query := `SELECT DISTINCT user_id, course_id FROM lesson_responses WHERE is_erased = 0`
	args := []any{}
	if userID != nil {
		query += ` AND user_id = ?`
		args = append(args, *userID)
	}
	query += ` ORDER BY user_id, course_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user courses: %w", err)
	}
	defer rows.Close()

	pairs := make([]models.UserCourse, 0)
	for rows.Next() {
		var p models.UserCourse
		if err := rows.Scan(&p.UserID, &p.CourseID); err != nil {
			return nil, fmt.Errorf("failed to scan user course: %w", err)
		}
		pairs = append(pairs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return pairs, nil
}

// EraseByUserAndCourse soft-deletes the lesson, question and course responses of a user in a course
func (r *lessonResponseRepository) EraseByUserAndCourse(ctx context.Context, userID, courseID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE lesson_responses SET is_erased = 1 WHERE user_id = ? AND course_id = ?`,
		userID, courseID,
	); err != nil {
		return fmt.Errorf("failed to erase lesson responses: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE question_responses qr
		JOIN questions q ON q.id = qr.question_id
		JOIN lessons l ON l.id = q.lesson_id
		SET qr.is_erased = 1
		WHERE qr.user_id = ? AND l.course_id = ?
	`, userID, courseID); err != nil {
		return fmt.Errorf("failed to erase question responses: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE course_responses SET is_erased = 1 WHERE user_id = ? AND course_id = ?`,
		userID, courseID,
	); err != nil {
		return fmt.Errorf("failed to erase course response: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
