package repository

import (
	"errors"

	"github.com/sardorbek/kalit/internal/model"
	"gorm.io/gorm"
)

type AttemptRepository interface {
	Find(userID int64, testID uint) (*model.UserTestAttempt, error)
	RecordSubmission(userID int64, testID uint, score float64, userAnswers string) error
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

// Find returns nil without an error when the pair has no record yet.
func (r *attemptRepository) Find(userID int64, testID uint) (*model.UserTestAttempt, error) {
	var attempt model.UserTestAttempt
	err := r.db.Where("user_id = ? AND test_id = ?", userID, testID).First(&attempt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// RecordSubmission persists one graded attempt as a single transaction.
//
// Invariants:
//   - (user_id, test_id) is unique in user_test_attempts.
//   - At most one TestResult row per pair ever gets committed.
//
// The attempt upsert and the result insert share one transaction so two
// concurrent first submissions resolve deterministically: the loser's
// RETURNING attempt_count comes back > 1 and the whole transaction,
// increment included, is rolled back. A separate read-then-write here
// would let both submissions pass the "first attempt" check.
func (r *attemptRepository) RecordSubmission(userID int64, testID uint, score float64, userAnswers string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var attemptCount int
		err := tx.Raw(`
			INSERT INTO user_test_attempts (user_id, test_id, attempt_count, last_attempt_at)
			VALUES (?, ?, 1, NOW())
			ON CONFLICT (user_id, test_id) DO UPDATE SET
				attempt_count = user_test_attempts.attempt_count + 1,
				last_attempt_at = NOW()
			RETURNING attempt_count`, userID, testID).Scan(&attemptCount).Error
		if err != nil {
			return err
		}
		if attemptCount > 1 {
			return model.ErrAlreadyAttempted
		}

		result := model.TestResult{
			UserID:      userID,
			TestID:      testID,
			Score:       score,
			UserAnswers: userAnswers,
		}
		return tx.Create(&result).Error
	})
}
