// Package progression derives learning-path and ranking state from already fetched records.
// Nothing in this package performs I/O.
package progression

import (
	"math"

	"github.com/learnpath/backend/internal/models"
)

// PassingScore is the score percentage at which a legacy lesson response counts as completed
const PassingScore = 70.0

// IsLessonCompleted reports whether any of the completion signals holds.
// Rows written by different schema versions carry different signals, so all three are accepted.
func IsLessonCompleted(isCompleted bool, scorePercentage *float64, status string) bool {
	return isCompleted ||
		(scorePercentage != nil && *scorePercentage >= PassingScore) ||
		status == models.LessonStatusCompleted
}

// DeriveCompletion collapses the completion signals of a stored lesson response into one status.
// It is called once, when the row is read.
func DeriveCompletion(isCompleted bool, scorePercentage *float64, status string) models.CompletionStatus {
	if IsLessonCompleted(isCompleted, scorePercentage, status) {
		return models.CompletionCompleted
	}
	return models.CompletionInProgress
}

// CompletionLookup reports whether the lesson with the given ID is completed
type CompletionLookup func(lessonID int) bool

// LookupFromResponses builds a CompletionLookup over a user's lesson responses
func LookupFromResponses(responses []models.LessonResponse) CompletionLookup {
	completed := make(map[int]bool, len(responses))
	for _, r := range responses {
		if r.Completion == models.CompletionCompleted {
			completed[r.LessonID] = true
		}
	}
	return func(lessonID int) bool {
		return completed[lessonID]
	}
}

// ScorePercentage returns correct/total as a percentage rounded to two decimals
func ScorePercentage(totalCorrect, totalQuestions int) float64 {
	if totalQuestions <= 0 {
		return 0
	}
	pct := float64(totalCorrect) * 100 / float64(totalQuestions)
	return math.Round(pct*100) / 100
}
