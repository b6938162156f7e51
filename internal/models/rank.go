package models

// LessonScore is the ranking projection of a lesson response
type LessonScore struct {
	UserID       int
	CourseID     int
	TotalCorrect int
}

// RankEntry is a user's aggregated score in a course
type RankEntry struct {
	UserID       int `json:"userId"`
	TotalCorrect int `json:"totalCorrect"`
}

// RankResult is the position of one user among all scored users of a course
type RankResult struct {
	// Rank is 1-based and nil when the user has no score in the course
	Rank       *int `json:"rank"`
	CohortSize int  `json:"cohortSize"`
	MyTotal    int  `json:"myTotal"`
}

// CourseRank is a RankResult labelled with its course
type CourseRank struct {
	CourseSlug  string `json:"courseSlug"`
	CourseTitle string `json:"courseTitle"`
	RankResult
}

// LeaderboardEntry is a row of a course leaderboard
type LeaderboardEntry struct {
	Position     int    `json:"position"`
	UserID       int    `json:"userId"`
	Username     string `json:"username"`
	TotalCorrect int    `json:"totalCorrect"`
}

// User is the read-only projection of an identity provider account
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"-"`
}
