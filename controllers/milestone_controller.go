package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ascent-app/ascent-backend/services"
	"github.com/ascent-app/ascent-backend/utils"
)

// MilestoneController exposes the catalog and the celebration flow.
type MilestoneController struct {
	db         *gorm.DB
	streaks    *services.StreakService
	milestones *services.MilestoneService
}

// NewMilestoneController creates a new controller instance.
func NewMilestoneController(db *gorm.DB, streaks *services.StreakService, milestones *services.MilestoneService) *MilestoneController {
	return &MilestoneController{db: db, streaks: streaks, milestones: milestones}
}

// Catalog returns the full static milestone catalog. Public and immutable.
func (m *MilestoneController) Catalog(ctx *gin.Context) {
	utils.Success(ctx, services.Catalog())
}

// Pending returns the milestone awaiting celebration, if any, together with
// everything already reached. Safe to poll from lifecycle hooks: the
// get-or-create behind it is idempotent, so after the first streak exists
// repeated calls change nothing.
func (m *MilestoneController) Pending(ctx *gin.Context) {
	user, ok := loadUser(ctx, m.db)
	if !ok {
		return
	}

	streak, err := m.streaks.EnsureStreakIfCommitted(user.ID)
	if err != nil {
		if services.IsIntegrityError(err) {
			utils.Sugar.Errorw("active streak integrity violation", "user_id", user.ID, "err", err)
			utils.Error(ctx, http.StatusInternalServerError, 50061, "streak state inconsistent")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load streak")
		return
	}
	if streak == nil {
		utils.Success(ctx, gin.H{"pending": nil, "reached": []services.MilestoneDefinition{}})
		return
	}

	days := services.CurrentStreakDays(streak, time.Now(), user.Location())
	utils.Success(ctx, gin.H{
		"current_streak_days": days,
		"pending":             m.milestones.PendingCelebration(streak, days),
		"reached":             services.ReachedMilestones(days),
	})
}

// Celebrate records that the given milestone day was shown to the user.
// Idempotent: repeating the call, or replaying an older day, changes nothing.
func (m *MilestoneController) Celebrate(ctx *gin.Context) {
	user, ok := loadUser(ctx, m.db)
	if !ok {
		return
	}

	var req struct {
		Day *int `json:"day" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Day == nil {
		utils.Error(ctx, http.StatusBadRequest, 40060, "invalid request payload")
		return
	}

	streak, err := m.streaks.ActiveStreak(user.ID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load streak")
		return
	}
	if streak == nil {
		utils.Error(ctx, http.StatusConflict, 40921, "no active streak")
		return
	}

	if err := m.milestones.MarkCelebrated(streak.ID, *req.Day); err != nil {
		switch {
		case errors.Is(err, services.ErrUnknownMilestoneDay):
			utils.Error(ctx, http.StatusBadRequest, 40061, "unknown milestone day")
		case errors.Is(err, services.ErrNoActiveStreak):
			utils.Error(ctx, http.StatusConflict, 40921, "no active streak")
		case errors.Is(err, services.ErrMilestoneNotReached):
			utils.Error(ctx, http.StatusConflict, 40922, "milestone not reached yet")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to record celebration")
		}
		return
	}

	utils.InvalidateByPrefix(homeStatsCachePrefix(user.ID))
	utils.Success(ctx, gin.H{"celebrated_day": *req.Day})
}
