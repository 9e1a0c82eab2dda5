package model

import "time"

// Test is an answer-key quiz identified by a short alphanumeric code.
// The code is stored normalized to upper case and is globally unique.
// Answers hold the ordered key, lower-cased: either one character per
// question or a comma-separated token list. Scores is an optional
// comma-separated bonus-score list attached by the creator.
type Test struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Code      string    `gorm:"uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"not null" json:"name"`
	CreatorID int64     `gorm:"not null;index" json:"creator_id"`
	Creator   User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Answers   string    `gorm:"not null" json:"answers"`
	Scores    string    `json:"scores,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
