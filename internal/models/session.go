package models

import "time"

// SessionState is the state of a lesson play session
type SessionState string

const (
	// SessionAnswering means the current question is waiting for a checked answer
	SessionAnswering SessionState = "answering"
	// SessionChecked means the answer was submitted and its correctness revealed
	SessionChecked SessionState = "checked"
	// SessionFinished means the lesson was finalized
	SessionFinished SessionState = "finished"
)

// SessionQuestion is the snapshot of a question taken when the session starts
type SessionQuestion struct {
	ID              int      `json:"id"`
	Text            string   `json:"text"`
	Position        int      `json:"position"`
	Options         []Answer `json:"options"`
	CorrectAnswerID *int     `json:"correctAnswerId,omitempty"`
}

// HasOption reports whether answerID is one of the question's options
func (q *SessionQuestion) HasOption(answerID int) bool {
	for _, o := range q.Options {
		if o.ID == answerID {
			return true
		}
	}
	return false
}

// View returns the question without its correct answer
func (q *SessionQuestion) View() *QuestionView {
	return &QuestionView{
		ID:       q.ID,
		Text:     q.Text,
		Position: q.Position,
		Options:  q.Options,
	}
}

// PlaySession holds the progress of one user through one lesson's questions
type PlaySession struct {
	ID               string            `json:"id"`
	UserID           int               `json:"userId"`
	CourseID         int               `json:"courseId"`
	LessonID         int               `json:"lessonId"`
	LessonSlug       string            `json:"lessonSlug"`
	Questions        []SessionQuestion `json:"questions"`
	Index            int               `json:"index"`
	State            SessionState      `json:"state"`
	SelectedAnswerID *int              `json:"selectedAnswerId,omitempty"`
	LastCorrect      *bool             `json:"lastCorrect,omitempty"`
	TotalAttempted   int               `json:"totalAttempted"`
	TotalCorrect     int               `json:"totalCorrect"`
	Finalized        bool              `json:"finalized"`
	CreatedAt        time.Time         `json:"createdAt"`
}

// Current returns the question the session is on
func (s *PlaySession) Current() *SessionQuestion {
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// IsLast reports whether the session is on its last question
func (s *PlaySession) IsLast() bool {
	return s.Index == len(s.Questions)-1
}

// SessionView is the client-facing state of a play session
type SessionView struct {
	SessionID        string        `json:"sessionId"`
	LessonSlug       string        `json:"lessonSlug"`
	State            SessionState  `json:"state"`
	QuestionNumber   int           `json:"questionNumber"`
	TotalQuestions   int           `json:"totalQuestions"`
	Question         *QuestionView `json:"question,omitempty"`
	SelectedAnswerID *int          `json:"selectedAnswerId,omitempty"`
}

// CheckResult is returned after an answer is checked
type CheckResult struct {
	Correct         bool `json:"correct"`
	CorrectAnswerID *int `json:"correctAnswerId,omitempty"`
	TotalAttempted  int  `json:"totalAttempted"`
	TotalCorrect    int  `json:"totalCorrect"`
	IsLastQuestion  bool `json:"isLastQuestion"`
}

// NextResult is returned after the "next" action
type NextResult struct {
	// Session is set while questions remain
	Session *SessionView `json:"session,omitempty"`
	// Summary is set once the lesson is finalized
	Summary *LessonSummary `json:"summary,omitempty"`
}

// LessonSummary describes a finalized lesson
type LessonSummary struct {
	LessonSlug      string  `json:"lessonSlug"`
	TotalQuestions  int     `json:"totalQuestions"`
	TotalAttempted  int     `json:"totalAttempted"`
	TotalCorrect    int     `json:"totalCorrect"`
	ScorePercentage float64 `json:"scorePercentage"`
	CourseCompleted bool    `json:"courseCompleted"`
	// NextLessonSlug is empty when the finished lesson was the last one
	NextLessonSlug string `json:"nextLessonSlug,omitempty"`
}
