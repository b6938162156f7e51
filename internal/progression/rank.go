package progression

import (
	"slices"

	"github.com/learnpath/backend/internal/models"
)

// Standings sums TotalCorrect per user over the scores of courseID and sorts the totals
// descending. Equal totals are ordered by ascending user ID.
func Standings(courseID int, scores []models.LessonScore) []models.RankEntry {
	totals := make(map[int]int)
	for _, s := range scores {
		if s.CourseID != courseID {
			continue
		}
		totals[s.UserID] += s.TotalCorrect
	}

	entries := make([]models.RankEntry, 0, len(totals))
	for userID, total := range totals {
		entries = append(entries, models.RankEntry{UserID: userID, TotalCorrect: total})
	}
	slices.SortFunc(entries, func(a, b models.RankEntry) int {
		if a.TotalCorrect != b.TotalCorrect {
			return b.TotalCorrect - a.TotalCorrect
		}
		return a.UserID - b.UserID
	})
	return entries
}

// ComputeRank returns the 1-based rank of userID in courseID. Rank is nil when the user has no
// score in the course; CohortSize is the number of distinct scored users either way.
func ComputeRank(courseID int, scores []models.LessonScore, userID int) models.RankResult {
	standings := Standings(courseID, scores)
	result := models.RankResult{CohortSize: len(standings)}
	for i, entry := range standings {
		if entry.UserID == userID {
			rank := i + 1
			result.Rank = &rank
			result.MyTotal = entry.TotalCorrect
			break
		}
	}
	return result
}
