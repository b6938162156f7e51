package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReconcileEnqueuer schedules reconciliation runs
type ReconcileEnqueuer interface {
	// EnqueueReconcile schedules a reconciliation run. A nil userID reconciles every user.
	EnqueueReconcile(ctx context.Context, userID *int) error
}

// Scheduler enqueues the periodic reconciliation of course completion
type Scheduler struct {
	cron     *cron.Cron
	enqueuer ReconcileEnqueuer
	logger   *zap.Logger
}

// NewScheduler creates a scheduler that enqueues a reconciliation on every tick of schedule.
// schedule is a standard five-field cron expression.
func NewScheduler(schedule string, enqueuer ReconcileEnqueuer, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(),
		enqueuer: enqueuer,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(schedule, s.enqueueReconcile); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", schedule, err)
	}
	return s, nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop stops the scheduler and waits for a running enqueue to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) enqueueReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.enqueuer.EnqueueReconcile(ctx, nil); err != nil {
		s.logger.Error("Failed to enqueue reconciliation", zap.Error(err))
		return
	}
	s.logger.Info("Reconciliation enqueued")
}
