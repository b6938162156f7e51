package models

import "errors"

// Sentinel errors shared by repositories, services and handlers
var (
	ErrCourseNotFound   = errors.New("course not found")
	ErrLessonNotFound   = errors.New("lesson not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrSessionNotFound  = errors.New("session not found")

	ErrLessonLocked      = errors.New("lesson is locked")
	ErrLessonHasNoQuiz   = errors.New("lesson has no questions")
	ErrInvalidTransition = errors.New("action not allowed in current session state")
	ErrNoSelection       = errors.New("no option selected")
	ErrInvalidOption     = errors.New("option does not belong to the current question")

	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("you do not have rights to manage this resource")
	ErrConflict     = errors.New("resource already exists")
)
