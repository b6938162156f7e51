package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnpath/backend/internal/models"
)

type courseResponseRepository struct {
	db *sql.DB
}

// NewCourseResponseRepository creates a new course response repository
func NewCourseResponseRepository(db *sql.DB) *courseResponseRepository {
	return &courseResponseRepository{
		db: db,
	}
}

// GetByUser retrieves the live course responses of a user, oldest first
func (r *courseResponseRepository) GetByUser(ctx context.Context, userID int) ([]models.CourseResponse, error) {
	query := `
		SELECT user_id, course_id, is_completed
		FROM course_responses
		WHERE user_id = ? AND is_erased = 0
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course responses: %w", err)
	}
	defer rows.Close()

	responses := make([]models.CourseResponse, 0)
	for rows.Next() {
		var resp models.CourseResponse
		if err := rows.Scan(&resp.UserID, &resp.CourseID, &resp.IsCompleted); err != nil {
			return nil, fmt.Errorf("failed to scan course response: %w", err)
		}
		responses = append(responses, resp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return responses, nil
}

// GetByUserAndCourse retrieves a user's response for a course. It returns nil when none is recorded.
func (r *courseResponseRepository) GetByUserAndCourse(ctx context.Context, userID, courseID int) (*models.CourseResponse, error) {
	query := `
		SELECT user_id, course_id, is_completed
		FROM course_responses
		WHERE user_id = ? AND course_id = ? AND is_erased = 0
		LIMIT 1
	`

	var resp models.CourseResponse
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&resp.UserID, &resp.CourseID, &resp.IsCompleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course response: %w", err)
	}

	return &resp, nil
}

// EnsureStarted records that a user has progress in a course. An existing live response keeps its
// completion; an erased one is brought back as not completed.
func (r *courseResponseRepository) EnsureStarted(ctx context.Context, userID, courseID int) error {
	query := `
		INSERT INTO course_responses (user_id, course_id, is_completed, is_erased)
		VALUES (?, ?, 0, 0)
		ON DUPLICATE KEY UPDATE
			is_completed = IF(is_erased = 1, 0, is_completed),
			is_erased = 0
	`

	if _, err := r.db.ExecContext(ctx, query, userID, courseID); err != nil {
		return fmt.Errorf("failed to record course start: %w", err)
	}

	return nil
}

// Upsert records the completion state of a course for a user
func (r *courseResponseRepository) Upsert(ctx context.Context, resp *models.CourseResponse) error {
	query := `
		INSERT INTO course_responses (user_id, course_id, is_completed, is_erased)
		VALUES (?, ?, ?, 0)
		ON DUPLICATE KEY UPDATE
			is_completed = VALUES(is_completed),
			is_erased = 0
	`

	if _, err := r.db.ExecContext(ctx, query, resp.UserID, resp.CourseID, resp.IsCompleted); err != nil {
		return fmt.Errorf("failed to upsert course response: %w", err)
	}

	return nil
}
