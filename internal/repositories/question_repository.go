package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/learnpath/backend/internal/models"
)

type questionRepository struct {
	db *sql.DB
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db *sql.DB) *questionRepository {
	return &questionRepository{
		db: db,
	}
}

// GetByLessonID retrieves the questions of a lesson with their answers, ordered by position
func (r *questionRepository) GetByLessonID(ctx context.Context, lessonID int) ([]models.Question, error) {
	query := `
		SELECT q.id, q.lesson_id, q.text, q.position, q.correct_answer_id, a.id, a.text
		FROM questions q
		LEFT JOIN answers a ON a.question_id = q.id
		WHERE q.lesson_id = ?
		ORDER BY q.position, q.id, a.id
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := make([]models.Question, 0)
	for rows.Next() {
		var (
			q          models.Question
			correctID  sql.NullInt64
			answerID   sql.NullInt64
			answerText sql.NullString
		)
		if err := rows.Scan(&q.ID, &q.LessonID, &q.Text, &q.Position, &correctID, &answerID, &answerText); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}

		// rows of one question are adjacent because of the ORDER BY
		if n := len(questions); n == 0 || questions[n-1].ID != q.ID {
			if correctID.Valid {
				id := int(correctID.Int64)
				q.CorrectAnswerID = &id
			}
			q.Answers = make([]models.Answer, 0)
			questions = append(questions, q)
		}
		if answerID.Valid {
			last := &questions[len(questions)-1]
			last.Answers = append(last.Answers, models.Answer{
				ID:         int(answerID.Int64),
				QuestionID: q.ID,
				Text:       answerText.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return questions, nil
}

// CountByLessonID returns the number of questions in a lesson
func (r *questionRepository) CountByLessonID(ctx context.Context, lessonID int) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions WHERE lesson_id = ?`, lessonID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}

	return count, nil
}

// GetByID retrieves a question without its answers
func (r *questionRepository) GetByID(ctx context.Context, id int) (*models.Question, error) {
	query := `SELECT id, lesson_id, text, position, correct_answer_id FROM questions WHERE id = ? LIMIT 1`

	var (
		q         models.Question
		correctID sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(&q.ID, &q.LessonID, &q.Text, &q.Position, &correctID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrQuestionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	if correctID.Valid {
		id := int(correctID.Int64)
		q.CorrectAnswerID = &id
	}

	return &q, nil
}

// Create inserts a question with its options in one transaction.
// The option at correctOption becomes the correct answer; a negative index leaves it unset.
func (r *questionRepository) Create(ctx context.Context, question *models.Question, options []string, correctOption int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO questions (lesson_id, text, position) VALUES (?, ?, ?)`,
		question.LessonID, question.Text, question.Position,
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	questionID, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	question.ID = int(questionID)

	question.Answers = make([]models.Answer, 0, len(options))
	for i, text := range options {
		result, err := tx.ExecContext(ctx, `INSERT INTO answers (question_id, text) VALUES (?, ?)`, questionID, text)
		if err != nil {
			return fmt.Errorf("failed to create answer: %w", err)
		}
		answerID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get last insert id: %w", err)
		}
		question.Answers = append(question.Answers, models.Answer{ID: int(answerID), QuestionID: question.ID, Text: text})
		if i == correctOption {
			id := int(answerID)
			question.CorrectAnswerID = &id
		}
	}

	if question.CorrectAnswerID != nil {
		if _, err := tx.ExecContext(ctx, `UPDATE questions SET correct_answer_id = ? WHERE id = ?`, *question.CorrectAnswerID, questionID); err != nil {
			return fmt.Errorf("failed to set correct answer: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Delete deletes a question and its answers
func (r *questionRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.ErrQuestionNotFound
	}

	return nil
}
