// Package session keeps lesson play sessions between requests.
//
// A session is created with Initialize when a student starts a lesson, loaded and saved on every
// quiz action, and removed with Clear once the lesson is finalized or abandoned. MarkFinalized is
// the one atomic step: of any number of concurrent callers only one wins, so a lesson outcome is
// recorded once.
package session

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/learnpath/backend/internal/models"
)

// Store persists play sessions
type Store interface {
	// Initialize assigns an ID to s and stores it
	Initialize(ctx context.Context, s *models.PlaySession) error
	// Load returns the session with the given ID owned by userID.
	// Sessions of other users are reported as models.ErrSessionNotFound.
	Load(ctx context.Context, userID int, id string) (*models.PlaySession, error)
	// Save stores the current state of s
	Save(ctx context.Context, s *models.PlaySession) error
	// MarkFinalized claims the finalization of the session with the given ID.
	// It returns true for the first caller only. The claim outlives Clear and expires with the session TTL.
	MarkFinalized(ctx context.Context, id string) (bool, error)
	// Clear removes the session. Clearing a missing session is not an error.
	Clear(ctx context.Context, id string) error
}

// New returns the Store selected by driver. "memory" keeps sessions in process; any other driver uses Redis.
func New(driver string, client *redis.Client, ttl time.Duration) Store {
	if driver == "memory" {
		return NewMemoryStore(ttl)
	}
	return NewRedisStore(client, ttl)
}

// prepare sets the fields Initialize owns
func prepare(s *models.PlaySession, now time.Time) {
	s.ID = uuid.NewString()
	s.CreatedAt = now
	s.Index = 0
	s.State = models.SessionAnswering
	s.SelectedAnswerID = nil
	s.LastCorrect = nil
	s.Finalized = false
}
