package progression

import (
	"slices"

	"github.com/learnpath/backend/internal/models"
)

// SortLessons orders lessons ascending by OrderBy, keeping input order for ties
func SortLessons(lessons []models.Lesson) {
	slices.SortStableFunc(lessons, func(a, b models.Lesson) int {
		return a.OrderBy - b.OrderBy
	})
}

// IsUnlocked reports whether the lesson at index may be started.
// lessons must already be sorted by OrderBy. The first lesson is always unlocked; any other
// lesson is unlocked only when every earlier lesson is completed. A missing lesson (zero ID or a
// position past the end of the slice) does not block the ones after it. A negative index is
// never unlocked.
func IsUnlocked(lessons []models.Lesson, completed CompletionLookup, index int) bool {
	if index < 0 {
		return false
	}
	if index == 0 {
		return true
	}
	for i := 0; i < index && i < len(lessons); i++ {
		if lessons[i].ID == 0 {
			continue
		}
		if !completed(lessons[i].ID) {
			return false
		}
	}
	return true
}

// EvaluatePath returns the state of every lesson of a sorted learning path
func EvaluatePath(lessons []models.Lesson, completed CompletionLookup) []models.LessonState {
	states := make([]models.LessonState, len(lessons))
	// unlocked tracks IsUnlocked incrementally so the path is evaluated in one pass
	unlocked := true
	for i, lesson := range lessons {
		isDone := lesson.ID != 0 && completed(lesson.ID)
		switch {
		case isDone:
			states[i] = models.LessonStateCompleted
		case unlocked:
			states[i] = models.LessonStateUnlocked
		default:
			states[i] = models.LessonStateLocked
		}
		if lesson.ID != 0 && !isDone {
			unlocked = false
		}
	}
	return states
}

// FinalOrder returns the maximum OrderBy of the lessons. ok is false for an empty slice.
func FinalOrder(lessons []models.Lesson) (order int, ok bool) {
	for i, lesson := range lessons {
		if i == 0 || lesson.OrderBy > order {
			order = lesson.OrderBy
		}
	}
	return order, len(lessons) > 0
}

// IsFinalLesson reports whether lessonID has the maximum OrderBy among the course's lessons
func IsFinalLesson(lessons []models.Lesson, lessonID int) bool {
	final, ok := FinalOrder(lessons)
	if !ok {
		return false
	}
	for _, lesson := range lessons {
		if lesson.ID == lessonID {
			return lesson.OrderBy == final
		}
	}
	return false
}

// CourseCompleted re-derives a course's completion from its lessons' completion.
// A course is completed when a lesson with the maximum OrderBy is completed.
func CourseCompleted(lessons []models.Lesson, completed CompletionLookup) bool {
	final, ok := FinalOrder(lessons)
	if !ok {
		return false
	}
	for _, lesson := range lessons {
		if lesson.OrderBy == final && completed(lesson.ID) {
			return true
		}
	}
	return false
}

// NextLesson returns the lesson following lessonID in a sorted path, or nil
func NextLesson(lessons []models.Lesson, lessonID int) *models.Lesson {
	for i := range lessons {
		if lessons[i].ID == lessonID && i+1 < len(lessons) {
			return &lessons[i+1]
		}
	}
	return nil
}
