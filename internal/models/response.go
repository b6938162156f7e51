package models

// QuestionResponse is a user's chosen option for one question
type QuestionResponse struct {
	UserID     int `json:"userId"`
	QuestionID int `json:"questionId"`
	AnswerID   int `json:"answerId"`
}

// LessonResponse is a user's recorded outcome for one lesson
type LessonResponse struct {
	UserID          int      `json:"-"`
	LessonID        int      `json:"lessonId"`
	CourseID        int      `json:"courseId"`
	TotalQuestions  int      `json:"totalQuestions"`
	TotalAttempted  int      `json:"totalAttempted"`
	TotalCorrect    int      `json:"totalCorrect"`
	IsCompleted     bool     `json:"isCompleted"`
	ScorePercentage *float64 `json:"scorePercentage,omitempty"`
	Status          string   `json:"status,omitempty"`
	// Completion is derived from the three completion signals when the row is read
	Completion CompletionStatus `json:"completion"`
}

// CourseResponse is a user's completion state for one course
type CourseResponse struct {
	UserID      int  `json:"-"`
	CourseID    int  `json:"courseId"`
	IsCompleted bool `json:"isCompleted"`
}

// LessonStatusCompleted is the status written for finished lessons
const LessonStatusCompleted = "completed"

// CompletionStatus is the single completion signal of a lesson response
type CompletionStatus string

const (
	CompletionNone       CompletionStatus = "none"
	CompletionInProgress CompletionStatus = "in_progress"
	CompletionCompleted  CompletionStatus = "completed"
)

// UserCourse identifies a (user, course) pair
type UserCourse struct {
	UserID   int
	CourseID int
}
