package model

import "time"

// User mirrors a chat-platform account. The ID is the platform's numeric
// user id, not an auto-increment column; rows are upserted on every
// interaction and never deleted.
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Username  string    `json:"username,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
