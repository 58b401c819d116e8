package models

import "time"

// CheckIn stores one daily self-assessment per user per calendar day. Day holds
// the canonical YYYY-MM-DD bucket in the user's timezone at submission time;
// the unique index makes resubmission an in-place overwrite, never a duplicate.
type CheckIn struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex:idx_checkin_user_day" json:"user_id"`
	Day    string    `gorm:"size:10;not null;uniqueIndex:idx_checkin_user_day" json:"day"`
	Date   time.Time `gorm:"not null" json:"date"`

	Mood        int `gorm:"not null" json:"mood"`
	Energy      int `gorm:"not null" json:"energy"`
	Confidence  int `gorm:"not null" json:"confidence"`
	Faith       int `gorm:"not null" json:"faith"`
	SelfControl int `gorm:"not null" json:"self_control"`

	Gratitude string `gorm:"size:2000" json:"gratitude"`
	Struggle  string `gorm:"size:2000" json:"struggle"`
	Victory   string `gorm:"size:2000" json:"victory"`

	StayedClean bool `gorm:"default:true" json:"stayed_clean"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ratings returns the five self-assessment scores in declaration order.
func (c *CheckIn) Ratings() [5]int {
	return [5]int{c.Mood, c.Energy, c.Confidence, c.Faith, c.SelfControl}
}

// HasReflection reports whether any of the free-text fields were filled in.
func (c *CheckIn) HasReflection() bool {
	return c.Gratitude != "" || c.Struggle != "" || c.Victory != ""
}
