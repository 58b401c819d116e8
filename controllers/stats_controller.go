package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ascent-app/ascent-backend/config"
	"github.com/ascent-app/ascent-backend/services"
	"github.com/ascent-app/ascent-backend/utils"
)

// StatsController serves the HomeStats projection every screen reads from.
type StatsController struct {
	db    *gorm.DB
	stats *services.StatsService
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB, stats *services.StatsService) *StatsController {
	return &StatsController{db: db, stats: stats}
}

// homeStatsCachePrefix is shared by every mutating endpoint so any engine
// write drops the user's cached snapshot.
func homeStatsCachePrefix(userID uint) string {
	return "cache:stats:home:" + strconv.Itoa(int(userID))
}

// Home returns the aggregate snapshot for the authenticated user. The JSON
// envelope is cached briefly per user; mutations invalidate it.
func (s *StatsController) Home(ctx *gin.Context) {
	user, ok := loadUser(ctx, s.db)
	if !ok {
		return
	}

	key := homeStatsCachePrefix(user.ID)
	if b, cached := utils.CacheGetBytes(key); cached {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	stats, err := s.stats.HomeStats(user, time.Now())
	if err != nil {
		if services.IsIntegrityError(err) {
			utils.Sugar.Errorw("active streak integrity violation", "user_id", user.ID, "err", err)
			utils.Error(ctx, http.StatusInternalServerError, 50051, "streak state inconsistent")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50050, "failed to build stats")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: stats}
	utils.CacheSetJSON(key, wrapper, time.Duration(config.Get().StatsCacheTTLSec)*time.Second)
	utils.Success(ctx, stats)
}
