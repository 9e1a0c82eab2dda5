package model

import "time"

// TestResult is one graded submission. Rows are append-only; deleting a
// test cascades to its results.
type TestResult struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      int64     `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	TestID      uint      `gorm:"not null;index" json:"test_id"`
	Test        Test      `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"test,omitempty"`
	Score       float64   `gorm:"not null" json:"score"`
	UserAnswers string    `gorm:"not null" json:"user_answers"`
	SubmittedAt time.Time `gorm:"autoCreateTime" json:"submitted_at"`
}
