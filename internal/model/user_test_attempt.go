package model

import "time"

// UserTestAttempt is the authoritative "already taken" gate. The
// (user_id, test_id) pair is unique; AttemptCount starts at 1 and is
// bumped by a conditional upsert for every submission that reaches
// scoring. Deleting a test cascades here as well.
type UserTestAttempt struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        int64     `gorm:"not null;uniqueIndex:idx_user_test" json:"user_id"`
	TestID        uint      `gorm:"not null;uniqueIndex:idx_user_test" json:"test_id"`
	Test          Test      `gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE" json:"test,omitempty"`
	AttemptCount  int       `gorm:"not null;default:1" json:"attempt_count"`
	LastAttemptAt time.Time `gorm:"autoCreateTime" json:"last_attempt_at"`
}
