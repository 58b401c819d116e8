package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/ascent-app/ascent-backend/utils"
)

// MilestoneNotifier is informed after a celebration has been persisted so a
// user-facing alert can be scheduled. Calls are fire-and-forget: a failed
// notification never rolls back celebration state.
type MilestoneNotifier interface {
	Notify(userID uint, milestoneDay int, title, meaning string)
}

// milestoneEvent is the JSON payload published for downstream schedulers.
type milestoneEvent struct {
	EventID      string    `json:"event_id"`
	UserID       uint      `json:"user_id"`
	MilestoneDay int       `json:"milestone_day"`
	Title        string    `json:"title"`
	Meaning      string    `json:"meaning"`
	At           time.Time `json:"at"`
}

// RedisMilestoneNotifier publishes milestone events to a Redis channel.
type RedisMilestoneNotifier struct {
	channel string
}

// NewRedisMilestoneNotifier creates a notifier publishing to the given channel.
func NewRedisMilestoneNotifier(channel string) *RedisMilestoneNotifier {
	return &RedisMilestoneNotifier{channel: channel}
}

// Notify publishes the event, logging and swallowing any failure.
func (n *RedisMilestoneNotifier) Notify(userID uint, milestoneDay int, title, meaning string) {
	rc := utils.GetRedis()
	if rc == nil {
		return
	}

	evt := milestoneEvent{
		EventID:      uuid.NewString(),
		UserID:       userID,
		MilestoneDay: milestoneDay,
		Title:        title,
		Meaning:      meaning,
		At:           time.Now(),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rc.Publish(ctx, n.channel, b).Err(); err != nil {
		if utils.Sugar != nil {
			utils.Sugar.Warnf("milestone notify failed user=%d day=%d err=%v", userID, milestoneDay, err)
		}
	}
}

// NopMilestoneNotifier discards events; used in tests.
type NopMilestoneNotifier struct{}

// Notify implements MilestoneNotifier.
func (NopMilestoneNotifier) Notify(uint, int, string, string) {}
