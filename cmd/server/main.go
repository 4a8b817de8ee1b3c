package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/youruser/cardforge/configs"
	"github.com/youruser/cardforge/internal/api"
	"github.com/youruser/cardforge/internal/cleanup"
	"github.com/youruser/cardforge/internal/style"
	"github.com/youruser/cardforge/internal/util"
)

func main() {
	configs.Logging("cardforge")

	cfg, err := configs.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	catalog, err := style.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load style catalog")
	}

	if err := util.EnsureDir(cfg.UploadDir); err != nil {
		log.WithError(err).Fatal("failed to create upload directory")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	janitor := &cleanup.Janitor{
		Dirs:   []string{cfg.UploadDir},
		MaxAge: time.Duration(cfg.CleanupMaxAge) * time.Second,
	}
	go janitor.Run(ctx)

	r := gin.Default()
	api.RegisterRoutes(r, catalog, cfg)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.WithField("addr", addr).Info("starting server")
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server stopped")
	}
}
