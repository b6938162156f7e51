// Package tasks defines the background tasks exchanged between the API, the scheduler and the worker
package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TypeCourseCompleted notifies a user that they finished a course
	TypeCourseCompleted = "progress:course-completed"
	// TypeReconcile re-derives course completion from lesson responses
	TypeReconcile = "progress:reconcile"

	// QueueNotifications holds user-facing notification tasks
	QueueNotifications = "notifications"
	// QueueMaintenance holds reconciliation tasks
	QueueMaintenance = "maintenance"
)

// CourseCompletedPayload is the payload of TypeCourseCompleted
type CourseCompletedPayload struct {
	UserID   int `json:"userId"`
	CourseID int `json:"courseId"`
}

// ReconcilePayload is the payload of TypeReconcile. A nil UserID reconciles every user.
type ReconcilePayload struct {
	UserID *int `json:"userId,omitempty"`
}

// NewCourseCompletedTask creates a TypeCourseCompleted task
func NewCourseCompletedTask(userID, courseID int) (*asynq.Task, error) {
	payload, err := json.Marshal(CourseCompletedPayload{UserID: userID, CourseID: courseID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeCourseCompleted, payload), nil
}

// NewReconcileTask creates a TypeReconcile task
func NewReconcileTask(userID *int) (*asynq.Task, error) {
	payload, err := json.Marshal(ReconcilePayload{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeReconcile, payload), nil
}

// ParseCourseCompleted decodes the payload of a TypeCourseCompleted task
func ParseCourseCompleted(t *asynq.Task) (CourseCompletedPayload, error) {
	var p CourseCompletedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	if p.UserID <= 0 || p.CourseID <= 0 {
		return p, fmt.Errorf("invalid payload: user and course are required")
	}
	return p, nil
}

// ParseReconcile decodes the payload of a TypeReconcile task
func ParseReconcile(t *asynq.Task) (ReconcilePayload, error) {
	var p ReconcilePayload
	if len(t.Payload()) == 0 {
		return p, nil
	}
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal payload: %w", err)
	}
	return p, nil
}

// TaskEnqueuer is the part of *asynq.Client used to enqueue tasks
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Enqueuer enqueues progress tasks
type Enqueuer struct {
	client TaskEnqueuer
}

// NewEnqueuer creates an Enqueuer over an asynq client
func NewEnqueuer(client TaskEnqueuer) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueCourseCompleted schedules the course completion notice.
// Replaying the final lesson within a day does not send a second notice.
func (e *Enqueuer) EnqueueCourseCompleted(ctx context.Context, userID, courseID int) error {
	task, err := NewCourseCompletedTask(userID, courseID)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueNotifications), asynq.MaxRetry(3), asynq.Unique(24*time.Hour))
	return enqueueError(err)
}

// EnqueueReconcile schedules a reconciliation run. A reconcile stays unique for an hour
// so overlapping triggers collapse into one run.
func (e *Enqueuer) EnqueueReconcile(ctx context.Context, userID *int) error {
	task, err := NewReconcileTask(userID)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueMaintenance), asynq.Unique(time.Hour))
	return enqueueError(err)
}

// enqueueError treats a task rejected as a duplicate as already scheduled
func enqueueError(err error) error {
	if err == nil || errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return fmt.Errorf("failed to enqueue task: %w", err)
}
