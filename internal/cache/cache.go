// Package cache provides the read-side cache for lesson and response reads.
// Values are stored as JSON under logical keys and expire after the cache TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrMiss is returned by Get when the key is absent or expired
var ErrMiss = errors.New("cache miss")

// ReadCache stores query results under logical keys
type ReadCache interface {
	// Get decodes the value under key into dest. It returns ErrMiss when nothing is cached.
	Get(ctx context.Context, key string, dest any) error
	// Set stores value under key for the cache TTL
	Set(ctx context.Context, key string, value any) error
	// Invalidate removes the given keys. Missing keys are ignored.
	Invalidate(ctx context.Context, keys ...string) error
}

// New returns the ReadCache selected by driver. "memory" keeps entries in process, so readers in
// other processes do not see its invalidations. Any other driver uses Redis.
func New(driver string, client *redis.Client, ttl time.Duration) ReadCache {
	if driver == "memory" {
		return NewMemoryCache(ttl)
	}
	return NewRedisCache(client, ttl)
}

// LessonResponsesKey is the key of a user's lesson responses
func LessonResponsesKey(userID int) string {
	return fmt.Sprintf("lesson-responses:%d", userID)
}

// CourseResponsesKey is the key of a user's course responses
func CourseResponsesKey(userID int) string {
	return fmt.Sprintf("course-responses:%d", userID)
}

// LessonKey is the key of a lesson read by slug
func LessonKey(slug string) string {
	return "lesson:" + slug
}

// LessonsKey is the key of the active lessons of a course
func LessonsKey(courseID int) string {
	return fmt.Sprintf("lessons:%d", courseID)
}
