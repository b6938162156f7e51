package services

import (
	"context"
	"errors"
	"testing"

	"github.com/learnpath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scoredResponse is a lesson response that only carries a course score
func scoredResponse(userID, lessonID, courseID, totalCorrect int) models.LessonResponse {
	return models.LessonResponse{UserID: userID, LessonID: lessonID, CourseID: courseID, TotalCorrect: totalCorrect}
}

func newRankFixture() (*rankService, *mockLessonResponseRepository, *mockCourseResponseRepository, *mockUserRepository) {
	courses := newMockCourseRepository(
		models.Course{ID: 9, Slug: "go", Title: "Go", IsActive: true},
		models.Course{ID: 10, Slug: "sql", Title: "SQL", IsActive: true},
	)
	scores := newMockLessonResponseRepository(
		// course 9: A=10, B=30, C=20 split over several lessons
		scoredResponse(1, 1, 9, 4),
		scoredResponse(1, 2, 9, 6),
		scoredResponse(2, 1, 9, 30),
		scoredResponse(3, 1, 9, 15),
		scoredResponse(3, 2, 9, 5),
		// course 10
		scoredResponse(1, 20, 10, 8),
		scoredResponse(4, 20, 10, 8),
	)
	courseResponses := newMockCourseResponseRepository(
		models.CourseResponse{UserID: 1, CourseID: 10},
		models.CourseResponse{UserID: 1, CourseID: 9},
	)
	users := &mockUserRepository{users: map[int]models.User{
		1: {ID: 1, Username: "alice"},
		2: {ID: 2, Username: "bob"},
		3: {ID: 3, Username: "carol"},
	}}
	return NewRankService(courses, scores, courseResponses, users), scores, courseResponses, users
}

func TestRankService_GetCourseRank(t *testing.T) {
	tests := []struct {
		name           string
		userID         int
		slug           string
		expectedRank   *int
		expectedCohort int
		expectedTotal  int
		expectedErr    error
	}{
		{name: "lowest of three", userID: 1, slug: "go", expectedRank: ptr(3), expectedCohort: 3, expectedTotal: 10},
		{name: "highest of three", userID: 2, slug: "go", expectedRank: ptr(1), expectedCohort: 3, expectedTotal: 30},
		{name: "middle of three", userID: 3, slug: "go", expectedRank: ptr(2), expectedCohort: 3, expectedTotal: 20},
		{name: "user without score", userID: 99, slug: "go", expectedRank: nil, expectedCohort: 3},
		{name: "tie broken by lower id", userID: 4, slug: "sql", expectedRank: ptr(2), expectedCohort: 2, expectedTotal: 8},
		{name: "unknown course", userID: 1, slug: "rust", expectedErr: models.ErrCourseNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _, _ := newRankFixture()

			rank, err := service.GetCourseRank(context.Background(), tt.userID, tt.slug)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.slug, rank.CourseSlug)
			assert.Equal(t, tt.expectedRank, rank.Rank)
			assert.Equal(t, tt.expectedCohort, rank.CohortSize)
			assert.Equal(t, tt.expectedTotal, rank.MyTotal)
		})
	}
}

func TestRankService_GetMyRanks(t *testing.T) {
	t.Run("ranks follow course response order", func(t *testing.T) {
		service, _, _, _ := newRankFixture()

		ranks, err := service.GetMyRanks(context.Background(), 1)

		require.NoError(t, err)
		require.Len(t, ranks, 2)
		assert.Equal(t, "sql", ranks[0].CourseSlug)
		assert.Equal(t, ptr(1), ranks[0].Rank)
		assert.Equal(t, "go", ranks[1].CourseSlug)
		assert.Equal(t, ptr(3), ranks[1].Rank)
	})

	t.Run("no course responses", func(t *testing.T) {
		service, _, _, _ := newRankFixture()

		ranks, err := service.GetMyRanks(context.Background(), 42)

		require.NoError(t, err)
		assert.Empty(t, ranks)
	})

	t.Run("score read error", func(t *testing.T) {
		service, scores, _, _ := newRankFixture()
		scores.getErr = errors.New("database error")

		_, err := service.GetMyRanks(context.Background(), 1)

		assert.Error(t, err)
	})

	t.Run("course response read error", func(t *testing.T) {
		service, _, courseResponses, _ := newRankFixture()
		courseResponses.getErr = errors.New("database error")

		_, err := service.GetMyRanks(context.Background(), 1)

		assert.Error(t, err)
	})
}

func TestRankService_GetLeaderboard(t *testing.T) {
	t.Run("full board with usernames", func(t *testing.T) {
		service, _, _, _ := newRankFixture()

		board, err := service.GetLeaderboard(context.Background(), "go", 0)

		require.NoError(t, err)
		assert.Equal(t, []models.LeaderboardEntry{
			{Position: 1, UserID: 2, Username: "bob", TotalCorrect: 30},
			{Position: 2, UserID: 3, Username: "carol", TotalCorrect: 20},
			{Position: 3, UserID: 1, Username: "alice", TotalCorrect: 10},
		}, board)
	})

	t.Run("limit truncates", func(t *testing.T) {
		service, _, _, _ := newRankFixture()

		board, err := service.GetLeaderboard(context.Background(), "go", 2)

		require.NoError(t, err)
		require.Len(t, board, 2)
		assert.Equal(t, 2, board[0].UserID)
	})

	t.Run("unknown user has empty username", func(t *testing.T) {
		service, _, _, _ := newRankFixture()

		board, err := service.GetLeaderboard(context.Background(), "sql", 500)

		require.NoError(t, err)
		require.Len(t, board, 2)
		assert.Equal(t, "alice", board[0].Username)
		assert.Empty(t, board[1].Username)
	})

	t.Run("user read error", func(t *testing.T) {
		service, _, _, users := newRankFixture()
		users.err = errors.New("database error")

		_, err := service.GetLeaderboard(context.Background(), "go", 10)

		assert.Error(t, err)
	})
}
