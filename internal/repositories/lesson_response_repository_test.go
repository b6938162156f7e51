package repositories

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/learnpath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lessonResponseColumnNames = []string{"user_id", "lesson_id", "course_id", "total_questions", "total_attempted", "total_correct", "is_completed", "score_percentage", "status"}

func TestLessonResponseRepository_GetByUser_DerivesCompletion(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewLessonResponseRepository(db)

	rows := sqlmock.NewRows(lessonResponseColumnNames).
		AddRow(5, 1, 9, 4, 4, 4, true, nil, "").
		AddRow(5, 2, 9, 4, 4, 3, false, 75.0, "").
		AddRow(5, 3, 9, 4, 4, 1, false, nil, "completed").
		AddRow(5, 4, 9, 4, 2, 1, false, 25.0, "in_progress")
	mock.ExpectQuery(`FROM lesson_responses WHERE user_id = \? AND is_erased = 0`).
		WithArgs(5).
		WillReturnRows(rows)

	responses, err := repo.GetByUser(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, responses, 4)
	assert.Equal(t, models.CompletionCompleted, responses[0].Completion)
	assert.Equal(t, models.CompletionCompleted, responses[1].Completion)
	require.NotNil(t, responses[1].ScorePercentage)
	assert.Equal(t, 75.0, *responses[1].ScorePercentage)
	assert.Equal(t, models.CompletionCompleted, responses[2].Completion)
	assert.Equal(t, models.CompletionInProgress, responses[3].Completion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonResponseRepository_GetByUserAndLesson(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectNil     bool
		expectedError bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lesson_responses WHERE user_id = \? AND lesson_id = \?`).
					WithArgs(5, 1).
					WillReturnRows(sqlmock.NewRows(lessonResponseColumnNames).AddRow(5, 1, 9, 4, 4, 4, true, 100.0, "completed"))
			},
		},
		{
			name: "none recorded",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lesson_responses WHERE user_id = \? AND lesson_id = \?`).
					WithArgs(5, 1).
					WillReturnError(sql.ErrNoRows)
			},
			expectNil: true,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM lesson_responses`).
					WillReturnError(errors.New("database error"))
			},
			expectNil:     true,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupMockDB(t)
			defer cleanup()
			repo := NewLessonResponseRepository(db)

			tt.setupMock(mock)

			resp, err := repo.GetByUserAndLesson(context.Background(), 5, 1)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			if tt.expectNil {
				assert.Nil(t, resp)
			} else {
				require.NotNil(t, resp)
				assert.Equal(t, models.CompletionCompleted, resp.Completion)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonResponseRepository_Upsert(t *testing.T) {
	score := 75.0
	resp := &models.LessonResponse{
		UserID: 5, LessonID: 1, CourseID: 9,
		TotalQuestions: 4, TotalAttempted: 4, TotalCorrect: 3,
		IsCompleted: true, ScorePercentage: &score, Status: models.LessonStatusCompleted,
	}

	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO lesson_responses .* ON DUPLICATE KEY UPDATE`).
					WithArgs(5, 1, 9, 4, 4, 3, true, 75.0, "completed").
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "exec error rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO lesson_responses`).
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupMockDB(t)
			defer cleanup()
			repo := NewLessonResponseRepository(db)

			tt.setupMock(mock)

			err := repo.Upsert(context.Background(), resp)

			if tt.expectedError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "failed to upsert lesson response")
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonResponseRepository_GetScoresByCourse(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewLessonResponseRepository(db)

	mock.ExpectQuery(`SELECT user_id, course_id, total_correct FROM lesson_responses WHERE course_id = \? AND is_erased = 0`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "course_id", "total_correct"}).
			AddRow(1, 9, 10).
			AddRow(2, 9, 30))

	scores, err := repo.GetScoresByCourse(context.Background(), 9)

	require.NoError(t, err)
	assert.Equal(t, []models.LessonScore{{UserID: 1, CourseID: 9, TotalCorrect: 10}, {UserID: 2, CourseID: 9, TotalCorrect: 30}}, scores)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLessonResponseRepository_GetUserCoursePairs(t *testing.T) {
	userID := 5

	tests := []struct {
		name   string
		userID *int
		query  string
		args   []driver.Value
	}{
		{name: "all users", query: `SELECT DISTINCT user_id, course_id FROM lesson_responses WHERE is_erased = 0 ORDER BY`},
		{name: "one user", userID: &userID, query: `WHERE is_erased = 0 AND user_id = \? ORDER BY`, args: []driver.Value{5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupMockDB(t)
			defer cleanup()
			repo := NewLessonResponseRepository(db)

			expect := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				expect = expect.WithArgs(tt.args...)
			}
			expect.WillReturnRows(sqlmock.NewRows([]string{"user_id", "course_id"}).AddRow(5, 9))

			pairs, err := repo.GetUserCoursePairs(context.Background(), tt.userID)

			require.NoError(t, err)
			assert.Equal(t, []models.UserCourse{{UserID: 5, CourseID: 9}}, pairs)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonResponseRepository_EraseByUserAndCourse(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()
	repo := NewLessonResponseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE lesson_responses SET is_erased = 1`).WithArgs(5, 9).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`UPDATE question_responses qr`).WithArgs(5, 9).WillReturnResult(sqlmock.NewResult(0, 8))
	mock.ExpectExec(`UPDATE course_responses SET is_erased = 1`).WithArgs(5, 9).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	assert.NoError(t, repo.EraseByUserAndCourse(context.Background(), 5, 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
