package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ascent-app/ascent-backend/config"
	"github.com/ascent-app/ascent-backend/controllers"
	"github.com/ascent-app/ascent-backend/middleware"
	"github.com/ascent-app/ascent-backend/services"
	"github.com/ascent-app/ascent-backend/utils"
)

// SetupRouter wires routes, middlewares, services and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	// Engine services share the single writer-side DB handle.
	streakSvc := services.NewStreakService(db)
	checkinSvc := services.NewCheckinService(db)
	milestoneSvc := services.NewMilestoneService(db, services.NewRedisMilestoneNotifier(cfg.MilestoneNotifyChannel))
	statsSvc := services.NewStatsService(streakSvc, checkinSvc)

	authController := controllers.NewAuthController(db)
	commitmentController := controllers.NewCommitmentController(db, streakSvc)
	checkinController := controllers.NewCheckinController(db, checkinSvc)
	statsController := controllers.NewStatsController(db, statsSvc)
	milestoneController := controllers.NewMilestoneController(db, streakSvc, milestoneSvc)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public catalog; the definitions are immutable value snapshots.
	api.GET("/milestones", milestoneController.Catalog)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.POST("/commitment", commitmentController.Commit)
	protected.GET("/commitment", commitmentController.Status)
	protected.POST("/commitment/relapse", commitmentController.Relapse)
	protected.POST("/commitment/reset", commitmentController.ManualReset)

	protected.POST("/checkins", checkinController.Submit)
	protected.GET("/checkins/today", checkinController.Today)
	protected.GET("/checkins", checkinController.List)

	protected.GET("/stats/home", statsController.Home)
	protected.GET("/milestones/pending", milestoneController.Pending)
	protected.POST("/milestones/celebrate", milestoneController.Celebrate)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
