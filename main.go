package main

import (
	"github.com/ascent-app/ascent-backend/config"
	"github.com/ascent-app/ascent-backend/models"
	"github.com/ascent-app/ascent-backend/routes"
	"github.com/ascent-app/ascent-backend/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Streak{}, &models.CheckIn{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
