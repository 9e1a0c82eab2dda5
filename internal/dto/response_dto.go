package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// TestCreatedDTO echoes a freshly created test back to its creator.
type TestCreatedDTO struct {
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	QuestionCount int       `json:"question_count"`
	CreatorID     int64     `json:"creator_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// TestSummaryDTO is one entry of a creator's test listing, newest first.
type TestSummaryDTO struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ScoreResultDTO reports one graded submission.
type ScoreResultDTO struct {
	TestCode     string  `json:"test_code"`
	TestName     string  `json:"test_name"`
	Score        float64 `json:"score"`
	CorrectCount int     `json:"correct_count"`
	Total        int     `json:"total"`
}

// StatisticsEntryDTO is one row of a per-test report, ordered by score
// descending then earliest submission.
type StatisticsEntryDTO struct {
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Username     string    `json:"username,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Score        float64   `json:"score"`
	UserAnswers  string    `json:"user_answers"`
	SubmittedAt  time.Time `json:"submitted_at"`
	AttemptCount int       `json:"attempt_count"`
}

// StatisticsReportDTO is the full per-test report.
type StatisticsReportDTO struct {
	TestCode    string               `json:"test_code"`
	TestName    string               `json:"test_name"`
	BonusScores []float64            `json:"bonus_scores,omitempty"`
	Entries     []StatisticsEntryDTO `json:"entries"`
}

// LeaderboardEntryDTO is one user's global ranking entry.
type LeaderboardEntryDTO struct {
	Rank       int     `json:"rank"`
	Name       string  `json:"name"`
	Username   string  `json:"username,omitempty"`
	AvgScore   float64 `json:"avg_score"`
	TestsTaken int     `json:"tests_taken"`
}

// UserDTO is one registered user, as listed for admins.
type UserDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PlatformStatsDTO holds the admin counters.
type PlatformStatsDTO struct {
	Users   int64 `json:"users"`
	Tests   int64 `json:"tests"`
	Results int64 `json:"results"`
}

// TestSearchHitDTO is one admin search result.
type TestSearchHitDTO struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	CreatorName string    `json:"creator_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// BroadcastReportDTO reports best-effort fan-out: Sent out of Total
// recipients got the message, the rest failed individually.
type BroadcastReportDTO struct {
	Sent  int `json:"sent"`
	Total int `json:"total"`
}

// PurgeResultDTO reports how many tests a purge removed.
type PurgeResultDTO struct {
	Deleted int64 `json:"deleted"`
}
