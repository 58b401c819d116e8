package models

import "time"

// Reset reasons recorded on a closed streak.
const (
	ResetReasonNone    = "none"
	ResetReasonRelapse = "relapse"
	ResetReasonManual  = "manual"
)

// Streak is one continuous commitment interval. At most one streak per user has
// EndedAt == nil (the active streak). Closed streaks are immutable history and
// are never deleted.
type Streak struct {
	ID                         uint       `gorm:"primaryKey" json:"id"`
	UserID                     uint       `gorm:"index;not null" json:"user_id"`
	StartedAt                  time.Time  `gorm:"not null" json:"started_at"`
	EndedAt                    *time.Time `gorm:"index" json:"ended_at"`
	ResetReason                string     `gorm:"size:16;default:none" json:"reset_reason"`
	LastCelebratedMilestoneDay int        `gorm:"default:0" json:"last_celebrated_milestone_day"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}

// Active reports whether this streak is still running.
func (s *Streak) Active() bool {
	return s.EndedAt == nil
}
