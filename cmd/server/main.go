package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/masna/backend/internal/config"
	"github.com/masna/backend/internal/middleware"
	"github.com/masna/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Server.LogLevel)

	app := bootstrap(cfg)
	defer app.shutdown()

	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(logger.GinLogger())
	r.Use(logger.GinRecovery())
	r.Use(middleware.CORS())
	r.Use(middleware.NewRateLimiter(20, 40).Middleware())

	setupRoutes(r, cfg, app)

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Server error: %v", err)
	}
}
