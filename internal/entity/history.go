package entity

import (
	"time"
)

// TopicHistory - one studied (topic, grade level) pair with its usage count.
// TopicKey holds the lowercased topic so the case-insensitive uniqueness rule
// can be enforced by the database.
type TopicHistory struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	Topic         string    `gorm:"size:200;not null" json:"topic"`
	TopicKey      string    `gorm:"size:200;not null;uniqueIndex:idx_topic_grade" json:"-"`
	GradeLevel    string    `gorm:"size:50;not null;uniqueIndex:idx_topic_grade" json:"grade_level"`
	Count         int       `gorm:"not null;default:1" json:"count"`
	LastStudiedAt time.Time `gorm:"not null;index" json:"last_studied_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (TopicHistory) TableName() string {
	return "topic_history"
}

// Preference - small key/value record for client-wide preferences (theme).
type Preference struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"uniqueIndex;size:50;not null" json:"key"`
	Value     string    `gorm:"size:200;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Preference) TableName() string {
	return "preferences"
}
