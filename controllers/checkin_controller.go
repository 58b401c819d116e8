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

// CheckinController handles daily self-assessment endpoints.
type CheckinController struct {
	db       *gorm.DB
	checkins *services.CheckinService
}

// NewCheckinController creates a new controller instance.
func NewCheckinController(db *gorm.DB, checkins *services.CheckinService) *CheckinController {
	return &CheckinController{db: db, checkins: checkins}
}

// Submit records today's check-in. Submitting twice on the same calendar day
// overwrites the earlier record in place.
func (c *CheckinController) Submit(ctx *gin.Context) {
	user, ok := loadUser(ctx, c.db)
	if !ok {
		return
	}

	var in services.CheckInInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	record, err := c.checkins.SubmitCheckIn(user, in, time.Now())
	if err != nil {
		if errors.Is(err, services.ErrInvalidRatingRange) {
			utils.Error(ctx, http.StatusBadRequest, 40041, "ratings must be between 1 and 10")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to record check-in")
		return
	}

	utils.InvalidateByPrefix(homeStatsCachePrefix(user.ID))
	utils.Success(ctx, record)
}

// Today returns today's check-in, or a null payload when none exists yet.
func (c *CheckinController) Today(ctx *gin.Context) {
	user, ok := loadUser(ctx, c.db)
	if !ok {
		return
	}

	now := time.Now()
	record, err := c.checkins.GetCheckIn(user.ID, utils.DayKey(now, user.Location()))
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load check-in")
		return
	}

	utils.Success(ctx, gin.H{
		"day":      utils.DayKey(now, user.Location()),
		"check_in": record,
	})
}

// List returns the check-ins between ?from and ?to (YYYY-MM-DD, inclusive) for
// the calendar screen. Defaults to the last 30 days.
func (c *CheckinController) List(ctx *gin.Context) {
	user, ok := loadUser(ctx, c.db)
	if !ok {
		return
	}

	loc := user.Location()
	now := time.Now()
	fromDay := utils.DayKey(utils.StartOfDay(now, loc).AddDate(0, 0, -29), loc)
	toDay := utils.DayKey(now, loc)

	if v := ctx.Query("from"); v != "" {
		if _, err := utils.ParseDayKey(v, loc); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40042, "invalid from date")
			return
		}
		fromDay = v
	}
	if v := ctx.Query("to"); v != "" {
		if _, err := utils.ParseDayKey(v, loc); err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40043, "invalid to date")
			return
		}
		toDay = v
	}
	if fromDay > toDay {
		utils.Error(ctx, http.StatusBadRequest, 40044, "from must not be after to")
		return
	}

	records, err := c.checkins.CheckinsInRange(user.ID, fromDay, toDay)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50042, "failed to load check-ins")
		return
	}

	utils.Success(ctx, gin.H{
		"from":      fromDay,
		"to":        toDay,
		"check_ins": records,
	})
}
