package repository

import (
	"time"

	"github.com/sardorbek/kalit/internal/model"
	"gorm.io/gorm"
)

// StatisticsRow is one taker's result for a test, joined with the user
// row and the attempt record.
type StatisticsRow struct {
	UserID       int64     `json:"user_id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Phone        string    `json:"phone"`
	Score        float64   `json:"score"`
	UserAnswers  string    `json:"user_answers"`
	SubmittedAt  time.Time `json:"submitted_at"`
	AttemptCount int       `json:"attempt_count"`
}

// LeaderboardRow is one user's global ranking entry.
type LeaderboardRow struct {
	UserID     int64   `json:"user_id"`
	Name       string  `json:"name"`
	Username   string  `json:"username"`
	AvgScore   float64 `json:"avg_score"`
	TestsTaken int     `json:"tests_taken"`
}

type ResultRepository interface {
	Statistics(testID uint) ([]StatisticsRow, error)
	Leaderboard(limit int) ([]LeaderboardRow, error)
	Count() (int64, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Statistics(testID uint) ([]StatisticsRow, error) {
	var rows []StatisticsRow
	err := r.db.Raw(`
		SELECT u.id AS user_id, u.name, u.username, u.phone,
		       tr.score, tr.user_answers, tr.submitted_at, uta.attempt_count
		FROM test_results tr
		JOIN users u ON tr.user_id = u.id
		JOIN user_test_attempts uta ON uta.user_id = tr.user_id AND uta.test_id = tr.test_id
		WHERE tr.test_id = ?
		ORDER BY tr.score DESC, tr.submitted_at ASC`, testID).Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) Leaderboard(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.db.Raw(`
		SELECT u.id AS user_id, u.name, u.username,
		       AVG(tr.score) AS avg_score, COUNT(tr.id) AS tests_taken
		FROM users u
		JOIN test_results tr ON u.id = tr.user_id
		GROUP BY u.id, u.name, u.username
		ORDER BY avg_score DESC, tests_taken DESC
		LIMIT ?`, limit).Scan(&rows).Error
	return rows, err
}

func (r *resultRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.TestResult{}).Count(&count).Error
	return count, err
}
