package models

// Question is a multiple-choice question of a lesson
type Question struct {
	ID       int    `json:"id"`
	LessonID int    `json:"lessonId"`
	Text     string `json:"text"`
	Position int    `json:"position"`
	// CorrectAnswerID is nil when no correct answer is recorded
	CorrectAnswerID *int     `json:"correctAnswerId,omitempty"`
	Answers         []Answer `json:"answers"`
}

// Answer is an option of a question
type Answer struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"-"`
	Text       string `json:"text"`
}

// QuestionView is a question as shown to a student, without the correct answer
type QuestionView struct {
	ID       int      `json:"id"`
	Text     string   `json:"text"`
	Position int      `json:"position"`
	Options  []Answer `json:"options"`
}

// CreateQuestionRequest represents a request to create a question with its options
type CreateQuestionRequest struct {
	LessonID int      `json:"lessonId" validate:"required,gt=0"`
	Text     string   `json:"text" validate:"required"`
	Position int      `json:"position" validate:"required,gt=0"`
	Options  []string `json:"options" validate:"min=2,dive,required"`
	// CorrectOption is the index of the correct option in Options
	CorrectOption int `json:"correctOption" validate:"gte=0"`
}
