package progression

import (
	"testing"

	"github.com/learnpath/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	userA = 1
	userB = 2
	userC = 3
)

func rankScores() []models.LessonScore {
	return []models.LessonScore{
		{UserID: userA, CourseID: 1, TotalCorrect: 4},
		{UserID: userB, CourseID: 1, TotalCorrect: 30},
		{UserID: userA, CourseID: 1, TotalCorrect: 6},
		{UserID: userC, CourseID: 1, TotalCorrect: 20},
		{UserID: userA, CourseID: 2, TotalCorrect: 100},
	}
}

func TestComputeRank(t *testing.T) {
	tests := []struct {
		name         string
		userID       int
		expectedRank *int
		expectedSize int
		expectedMy   int
	}{
		{name: "top user", userID: userB, expectedRank: ptr(1), expectedSize: 3, expectedMy: 30},
		{name: "middle user", userID: userC, expectedRank: ptr(2), expectedSize: 3, expectedMy: 20},
		{name: "aggregates across lessons", userID: userA, expectedRank: ptr(3), expectedSize: 3, expectedMy: 10},
		{name: "user without rows", userID: 99, expectedRank: nil, expectedSize: 3, expectedMy: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ComputeRank(1, rankScores(), tt.userID)

			assert.Equal(t, tt.expectedRank, result.Rank)
			assert.Equal(t, tt.expectedSize, result.CohortSize)
			assert.Equal(t, tt.expectedMy, result.MyTotal)
		})
	}
}

func TestComputeRank_EmptyCourse(t *testing.T) {
	result := ComputeRank(3, rankScores(), userA)

	assert.Nil(t, result.Rank)
	assert.Zero(t, result.CohortSize)
}

func TestStandings_TieBreakByUserID(t *testing.T) {
	scores := []models.LessonScore{
		{UserID: 9, CourseID: 1, TotalCorrect: 5},
		{UserID: 4, CourseID: 1, TotalCorrect: 5},
		{UserID: 7, CourseID: 1, TotalCorrect: 8},
	}

	standings := Standings(1, scores)

	require.Len(t, standings, 3)
	assert.Equal(t, []models.RankEntry{
		{UserID: 7, TotalCorrect: 8},
		{UserID: 4, TotalCorrect: 5},
		{UserID: 9, TotalCorrect: 5},
	}, standings)
}
