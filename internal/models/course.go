package models

// ComplexityLevel represents the complexity level of a course
type ComplexityLevel string

const (
	ComplexityLevelAbsoluteBeginner  ComplexityLevel = "Absolute beginner"
	ComplexityLevelBeginner          ComplexityLevel = "Beginner"
	ComplexityLevelIntermediate      ComplexityLevel = "Intermediate"
	ComplexityLevelUpperIntermediate ComplexityLevel = "Upper Intermediate"
	ComplexityLevelAdvanced          ComplexityLevel = "Advanced"
)

// ComplexityLevelAbbreviation maps abbreviations to full complexity levels
var ComplexityLevelAbbreviation = map[string]ComplexityLevel{
	"ab": ComplexityLevelAbsoluteBeginner,
	"b":  ComplexityLevelBeginner,
	"i":  ComplexityLevelIntermediate,
	"ui": ComplexityLevelUpperIntermediate,
	"a":  ComplexityLevelAdvanced,
}

// ParseComplexityLevel accepts an abbreviation or a full level name.
// The second value is false for unknown levels.
func ParseComplexityLevel(s string) (ComplexityLevel, bool) {
	if level, ok := ComplexityLevelAbbreviation[s]; ok {
		return level, true
	}
	for _, level := range ComplexityLevelAbbreviation {
		if string(level) == s {
			return level, true
		}
	}
	return "", false
}

// Course represents a course in the learning system
type Course struct {
	ID              int             `json:"id"`
	Slug            string          `json:"slug"`
	AuthorID        int             `json:"authorId"`
	Title           string          `json:"title"`
	ShortSummary    string          `json:"shortSummary"`
	ComplexityLevel ComplexityLevel `json:"complexityLevel"`
	IsActive        bool            `json:"isActive"`
}

// CourseListItem represents a course in admin list responses
type CourseListItem struct {
	ID              int             `json:"id"`
	Slug            string          `json:"slug"`
	Title           string          `json:"title"`
	ComplexityLevel ComplexityLevel `json:"complexityLevel"`
	AuthorID        int             `json:"authorId"`
	IsActive        bool            `json:"isActive"`
}

// CourseDetailResponse represents a course with the caller's progress
type CourseDetailResponse struct {
	ID               int             `json:"-"`
	Slug             string          `json:"slug"`
	Title            string          `json:"title"`
	ShortSummary     string          `json:"shortSummary,omitempty"`
	ComplexityLevel  ComplexityLevel `json:"complexityLevel"`
	TotalLessons     int             `json:"totalLessons"`
	CompletedLessons int             `json:"completedLessons"`
	IsCompleted      bool            `json:"isCompleted"`
}

// CourseFilter holds the student catalogue filters
type CourseFilter struct {
	ComplexityLevel *ComplexityLevel
	Search          string
	// IsMine limits the list to courses the user has started
	IsMine bool
	Page   int
	Count  int
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	AuthorID        int             `json:"authorId" validate:"omitempty,gt=0"`
	Slug            string          `json:"slug" validate:"required,max=100"`
	Title           string          `json:"title" validate:"required,max=255"`
	ShortSummary    string          `json:"shortSummary" validate:"required"`
	ComplexityLevel ComplexityLevel `json:"complexityLevel" validate:"required"`
}

// UpdateCourseRequest represents a request to update a course (partial update)
type UpdateCourseRequest struct {
	Slug            string          `json:"slug,omitempty" validate:"omitempty,max=100"`
	Title           string          `json:"title,omitempty" validate:"omitempty,max=255"`
	ShortSummary    string          `json:"shortSummary,omitempty"`
	ComplexityLevel ComplexityLevel `json:"complexityLevel,omitempty"`
	IsActive        *bool           `json:"isActive,omitempty"`
}
