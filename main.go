package main

import (
	"errors"
	"net/http"

	"github.com/cppla/goblog/config"
	"github.com/cppla/goblog/models"
	"github.com/cppla/goblog/routes"
	"github.com/cppla/goblog/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{})

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil && !errors.Is(err, http.ErrServerClosed) {
		utils.Sugar.Errorf("server stopped with error: %v", err)
	}

	if err := config.CloseDatabase(); err != nil {
		utils.Sugar.Warnf("closing database failed: %v", err)
	}
}
