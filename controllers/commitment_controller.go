package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ascent-app/ascent-backend/models"
	"github.com/ascent-app/ascent-backend/services"
	"github.com/ascent-app/ascent-backend/utils"
)

// CommitmentController handles signing the commitment and streak resets.
type CommitmentController struct {
	db      *gorm.DB
	streaks *services.StreakService
}

// NewCommitmentController creates a new controller instance.
func NewCommitmentController(db *gorm.DB, streaks *services.StreakService) *CommitmentController {
	return &CommitmentController{db: db, streaks: streaks}
}

// Commit signs the commitment for the authenticated user and ensures the first
// streak exists. Repeating the call is harmless: an already signed commitment
// is left untouched.
func (c *CommitmentController) Commit(ctx *gin.Context) {
	user, ok := loadUser(ctx, c.db)
	if !ok {
		return
	}

	if user.CommitmentSignedAt == nil {
		now := time.Now()
		if err := c.db.Model(&models.User{}).
			Where("id = ? AND commitment_signed_at IS NULL", user.ID).
			Update("commitment_signed_at", &now).Error; err != nil {
			utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to sign commitment")
			return
		}
		user.CommitmentSignedAt = &now
	}

	streak, err := c.streaks.EnsureStreakIfCommitted(user.ID)
	if err != nil {
		if services.IsIntegrityError(err) {
			utils.Sugar.Errorw("active streak integrity violation", "user_id", user.ID, "err", err)
			utils.Error(ctx, http.StatusInternalServerError, 50021, "streak state inconsistent")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to ensure streak")
		return
	}

	utils.InvalidateByPrefix(homeStatsCachePrefix(user.ID))
	utils.Success(ctx, gin.H{
		"commitment_signed_at": user.CommitmentSignedAt,
		"streak":               streak,
	})
}

// Status returns the commitment state and active streak, if any.
func (c *CommitmentController) Status(ctx *gin.Context) {
	user, ok := loadUser(ctx, c.db)
	if !ok {
		return
	}

	streak, err := c.streaks.EnsureStreakIfCommitted(user.ID)
	if err != nil {
		if services.IsIntegrityError(err) {
			utils.Sugar.Errorw("active streak integrity violation", "user_id", user.ID, "err", err)
		}
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to load streak state")
		return
	}

	resp := gin.H{
		"commitment_signed_at": user.CommitmentSignedAt,
		"streak":               streak,
	}
	if streak != nil {
		resp["current_streak_days"] = services.CurrentStreakDays(streak, time.Now(), user.Location())
	}
	utils.Success(ctx, resp)
}

// Relapse closes the active streak with the relapse reason and opens a new one.
func (c *CommitmentController) Relapse(ctx *gin.Context) {
	c.reset(ctx, models.ResetReasonRelapse)
}

// ManualReset closes the active streak at the user's explicit request.
func (c *CommitmentController) ManualReset(ctx *gin.Context) {
	c.reset(ctx, models.ResetReasonManual)
}

func (c *CommitmentController) reset(ctx *gin.Context, reason string) {
	user, ok := loadUser(ctx, c.db)
	if !ok {
		return
	}

	streak, err := c.streaks.ResetStreak(user.ID, reason, time.Now())
	if err != nil {
		switch {
		case err == services.ErrNoActiveStreak:
			utils.Error(ctx, http.StatusConflict, 40920, "no active streak to reset")
		case services.IsIntegrityError(err):
			utils.Sugar.Errorw("active streak integrity violation", "user_id", user.ID, "err", err)
			utils.Error(ctx, http.StatusInternalServerError, 50021, "streak state inconsistent")
		default:
			utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to reset streak")
		}
		return
	}

	utils.InvalidateByPrefix(homeStatsCachePrefix(user.ID))
	utils.Success(ctx, gin.H{
		"streak": streak,
		"reason": reason,
	})
}
