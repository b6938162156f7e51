package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/learnpath/backend/internal/models"
)

type questionResponseRepository struct {
	db *sql.DB
}

// NewQuestionResponseRepository creates a new question response repository
func NewQuestionResponseRepository(db *sql.DB) *questionResponseRepository {
	return &questionResponseRepository{
		db: db,
	}
}

// Upsert records the option a user chose for a question, replacing an earlier choice
func (r *questionResponseRepository) Upsert(ctx context.Context, resp *models.QuestionResponse) error {
	query := `
		INSERT INTO question_responses (user_id, question_id, answer_id, is_erased)
		VALUES (?, ?, ?, 0)
		ON DUPLICATE KEY UPDATE
			answer_id = VALUES(answer_id),
			is_erased = 0
	`

	if _, err := r.db.ExecContext(ctx, query, resp.UserID, resp.QuestionID, resp.AnswerID); err != nil {
		return fmt.Errorf("failed to upsert question response: %w", err)
	}

	return nil
}
