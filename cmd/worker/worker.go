package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/services"
	"github.com/learnpath/backend/internal/tasks"
	"go.uber.org/zap"
	"gopkg.in/mail.v2"
)

// UserRepository defines the interface for reading the user projection
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// "id" parameter is used to retrieve a user by its ID.
	//
	// Returns models.ErrUserNotFound if the user is unknown.
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// CourseRepository defines the interface for reading courses
type CourseRepository interface {
	// GetByID retrieves a course by ID, active or not
	//
	// "id" parameter is used to retrieve a course by its ID.
	//
	// Returns models.ErrCourseNotFound if the course is unknown.
	GetByID(ctx context.Context, id int) (*models.Course, error)
}

// Reconciler re-derives course completion from lesson responses
type Reconciler interface {
	// Reconcile corrects stored course completion. A nil userID reconciles every user.
	Reconcile(ctx context.Context, userID *int) (services.ReconcileReport, error)
}

// Mailer sends composed messages. *mail.Dialer satisfies it.
type Mailer interface {
	DialAndSend(m ...*mail.Message) error
}

// Worker handles task processing
type Worker struct {
	logger     *zap.Logger
	userRepo   UserRepository
	courseRepo CourseRepository
	reconciler Reconciler
	mailer     Mailer
	smtpFrom   string
}

// NewWorker creates a new worker instance
func NewWorker(
	logger *zap.Logger,
	userRepo UserRepository,
	courseRepo CourseRepository,
	reconciler Reconciler,
	mailer Mailer,
	smtpFrom string,
) *Worker {
	return &Worker{
		logger:     logger,
		userRepo:   userRepo,
		courseRepo: courseRepo,
		reconciler: reconciler,
		mailer:     mailer,
		smtpFrom:   smtpFrom,
	}
}

// HandleCourseCompleted sends the congratulation e-mail for a completed course
func (w *Worker) HandleCourseCompleted(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseCourseCompleted(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	user, err := w.userRepo.GetByID(ctx, payload.UserID)
	if err != nil {
		// Nobody to notify, retrying will not change that
		if errors.Is(err, models.ErrUserNotFound) {
			w.logger.Warn("Course completed by unknown user", zap.Int("user_id", payload.UserID))
			return nil
		}
		return err
	}

	course, err := w.courseRepo.GetByID(ctx, payload.CourseID)
	if err != nil {
		if errors.Is(err, models.ErrCourseNotFound) {
			w.logger.Warn("Completed course no longer exists", zap.Int("course_id", payload.CourseID))
			return nil
		}
		return err
	}

	if user.Email == "" {
		w.logger.Warn("User has no e-mail address", zap.Int("user_id", user.ID))
		return nil
	}

	subject := fmt.Sprintf("You completed %s", course.Title)
	body := fmt.Sprintf("<p>Congratulations, %s!</p><p>You have finished the course <b>%s</b>.</p>", user.Username, course.Title)
	if err := w.sendEmail(user.Email, subject, body); err != nil {
		return err
	}

	w.logger.Info("Course completion notice sent",
		zap.Int("user_id", user.ID),
		zap.Int("course_id", course.ID),
	)
	return nil
}

// HandleReconcile runs a reconciliation of stored course completion
func (w *Worker) HandleReconcile(ctx context.Context, t *asynq.Task) error {
	payload, err := tasks.ParseReconcile(t)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	report, err := w.reconciler.Reconcile(ctx, payload.UserID)
	if err != nil {
		return err
	}

	w.logger.Info("Reconciliation finished",
		zap.Int("checked", report.Checked),
		zap.Int("updated", report.Updated),
		zap.Int("failed", report.Failed),
	)
	return nil
}

// sendEmail sends an email using gopkg.in/mail.v2
func (w *Worker) sendEmail(to, subject, body string) error {
	m := mail.NewMessage()
	m.SetHeader("From", w.smtpFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := w.mailer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
