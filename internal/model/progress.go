package model

import (
	"time"
)

type ProgressStatus string

const (
	NotStarted ProgressStatus = "not_started"
	InProgress ProgressStatus = "in_progress"
	Completed  ProgressStatus = "completed"
)

// UserProgress is the per-user, per-content completion record. One row per
// (user, content); status never transitions backward. A quiz content item
// only reaches completed once the user has a passing quiz result.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID       uint           `gorm:"uniqueIndex:idx_user_content;not null" json:"userId"`
	ContentID    uint           `gorm:"uniqueIndex:idx_user_content;not null" json:"contentId"`
	Status       ProgressStatus `gorm:"type:enum('not_started','in_progress','completed');default:'not_started'" json:"status"`
	Attempts     int            `gorm:"default:0" json:"attempts"`
	Score        *int           `json:"score,omitempty"`
	StartedAt    *time.Time     `json:"startedAt,omitempty"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	LastAccessed time.Time      `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastAccessed"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// Started reports whether the item has been opened at least once. The
// content sequencer unlocks the next item as soon as this one is started,
// not when it is completed.
func (p *UserProgress) Started() bool {
	return p != nil && p.Status != NotStarted && p.Status != ""
}
