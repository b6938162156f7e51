package services

import (
	"context"
	"fmt"

	"github.com/learnpath/backend/internal/models"
	"github.com/learnpath/backend/internal/progression"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
	// rankConcurrency caps the per-course aggregations GetMyRanks runs at once
	rankConcurrency = 4
)

// ScoreRepository defines methods for ranking data access
type ScoreRepository interface {
	// GetScoresByCourse retrieves the total_correct of every lesson response in a course
	//
	// "ctx" is the context for the request.
	// "courseID" is the ID of the course.
	//
	// Returns one score per lesson response and an error if any.
	GetScoresByCourse(ctx context.Context, courseID int) ([]models.LessonScore, error)
}

// UserRepository defines methods for reading the user projection
type UserRepository interface {
	// GetByID retrieves a user by ID
	//
	// "ctx" is the context for the request.
	// "id" is the ID of the user.
	//
	// Returns models.ErrUserNotFound if there is no such user.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// GetByIDs retrieves users keyed by ID
	//
	// "ctx" is the context for the request.
	// "ids" are the IDs of the users. Unknown IDs are left out of the result.
	//
	// Returns a map of users and an error if any.
	GetByIDs(ctx context.Context, ids []int) (map[int]models.User, error)
}

type rankService struct {
	courseRepo         CourseRepository
	scoreRepo          ScoreRepository
	courseResponseRepo CourseResponseRepository
	userRepo           UserRepository
}

// NewRankService creates a new rank service
func NewRankService(
	courseRepo CourseRepository,
	scoreRepo ScoreRepository,
	courseResponseRepo CourseResponseRepository,
	userRepo UserRepository,
) *rankService {
	return &rankService{
		courseRepo:         courseRepo,
		scoreRepo:          scoreRepo,
		courseResponseRepo: courseResponseRepo,
		userRepo:           userRepo,
	}
}

// GetCourseRank computes the user's rank among everyone scored in the course
func (s *rankService) GetCourseRank(ctx context.Context, userID int, courseSlug string) (*models.CourseRank, error) {
	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	return s.rankInCourse(ctx, userID, course)
}

// GetMyRanks computes the user's rank in every course they have a course response for.
// The courses are aggregated concurrently; results keep the course response order.
func (s *rankService) GetMyRanks(ctx context.Context, userID int) ([]models.CourseRank, error) {
	responses, err := s.courseResponseRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get course responses: %w", err)
	}

	ranks := make([]models.CourseRank, len(responses))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rankConcurrency)
	for i, resp := range responses {
		g.Go(func() error {
			course, err := s.courseRepo.GetByID(gctx, resp.CourseID)
			if err != nil {
				return fmt.Errorf("failed to get course %d: %w", resp.CourseID, err)
			}
			rank, err := s.rankInCourse(gctx, userID, course)
			if err != nil {
				return err
			}
			ranks[i] = *rank
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ranks, nil
}

// GetLeaderboard returns the top standings of a course with usernames
func (s *rankService) GetLeaderboard(ctx context.Context, courseSlug string, limit int) ([]models.LeaderboardEntry, error) {
	if limit < 1 {
		limit = defaultLeaderboardLimit
	}
	if limit > maxLeaderboardLimit {
		limit = maxLeaderboardLimit
	}

	course, err := s.courseRepo.GetBySlug(ctx, courseSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	scores, err := s.scoreRepo.GetScoresByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	standings := progression.Standings(course.ID, scores)
	if len(standings) > limit {
		standings = standings[:limit]
	}

	ids := make([]int, len(standings))
	for i, entry := range standings {
		ids[i] = entry.UserID
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}

	board := make([]models.LeaderboardEntry, len(standings))
	for i, entry := range standings {
		board[i] = models.LeaderboardEntry{
			Position:     i + 1,
			UserID:       entry.UserID,
			Username:     users[entry.UserID].Username,
			TotalCorrect: entry.TotalCorrect,
		}
	}
	return board, nil
}

func (s *rankService) rankInCourse(ctx context.Context, userID int, course *models.Course) (*models.CourseRank, error) {
	scores, err := s.scoreRepo.GetScoresByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	return &models.CourseRank{
		CourseSlug:  course.Slug,
		CourseTitle: course.Title,
		RankResult:  progression.ComputeRank(course.ID, scores, userID),
	}, nil
}
