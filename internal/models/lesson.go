package models

// Lesson represents a lesson in a course
type Lesson struct {
	ID              int    `json:"id"`
	Slug            string `json:"slug"`
	CourseID        int    `json:"courseId"`
	Title           string `json:"title"`
	ShortSummary    string `json:"shortSummary"`
	OrderBy         int    `json:"orderBy"`
	DurationMinutes int    `json:"durationMinutes"`
	IsActive        bool   `json:"isActive"`
}

// LessonState is the position of a lesson in a user's learning path
type LessonState string

const (
	LessonStateCompleted LessonState = "completed"
	LessonStateUnlocked  LessonState = "unlocked"
	LessonStateLocked    LessonState = "locked"
)

// LessonPathItem represents a lesson in the user's learning path
type LessonPathItem struct {
	Slug            string      `json:"slug"`
	Title           string      `json:"title"`
	ShortSummary    string      `json:"shortSummary,omitempty"`
	OrderBy         int         `json:"orderBy"`
	DurationMinutes int         `json:"durationMinutes"`
	State           LessonState `json:"state"`
}

// LessonDetailResponse represents a lesson with the caller's result
type LessonDetailResponse struct {
	Slug            string          `json:"slug"`
	CourseSlug      string          `json:"courseSlug"`
	Title           string          `json:"title"`
	ShortSummary    string          `json:"shortSummary"`
	OrderBy         int             `json:"orderBy"`
	DurationMinutes int             `json:"durationMinutes"`
	State           LessonState     `json:"state"`
	TotalQuestions  int             `json:"totalQuestions"`
	Result          *LessonResponse `json:"result,omitempty"`
}

// CreateLessonRequest represents a request to create a lesson
type CreateLessonRequest struct {
	Slug            string `json:"slug" validate:"required,max=100"`
	CourseID        int    `json:"courseId" validate:"required,gt=0"`
	Title           string `json:"title" validate:"required,max=255"`
	ShortSummary    string `json:"shortSummary" validate:"required"`
	OrderBy         int    `json:"orderBy" validate:"required,gt=0"`
	DurationMinutes int    `json:"durationMinutes" validate:"gte=0"`
}

// UpdateLessonRequest represents a request to update a lesson (partial update)
type UpdateLessonRequest struct {
	Slug            string `json:"slug,omitempty" validate:"omitempty,max=100"`
	Title           string `json:"title,omitempty" validate:"omitempty,max=255"`
	ShortSummary    string `json:"shortSummary,omitempty"`
	OrderBy         *int   `json:"orderBy,omitempty" validate:"omitempty,gt=0"`
	DurationMinutes *int   `json:"durationMinutes,omitempty" validate:"omitempty,gte=0"`
	IsActive        *bool  `json:"isActive,omitempty"`
}
