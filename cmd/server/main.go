package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/printpro/internal/config"
	"github.com/printpro/internal/db"
	"github.com/printpro/internal/logging"
	"github.com/printpro/internal/router"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	gdb, err := db.Open(cfg.DatabaseDriver, cfg.DatabaseDSN, logging.NewGormLogger(logger))
	if err != nil {
		logger.Error("failed to initialize database", "error", err, "driver", cfg.DatabaseDriver)
		os.Exit(1)
	}

	created, err := db.EnsureUser(gdb, cfg.AdminUsername, cfg.AdminPassword)
	if err != nil {
		logger.Error("failed to ensure admin user", "error", err)
		os.Exit(1)
	}
	if created {
		logger.Info("admin user created", "username", cfg.AdminUsername)
	}

	r := router.SetupRouter(gdb, router.Options{
		SessionSecret: cfg.SessionSecret,
		UploadDir:     cfg.UploadDir,
		UploadURL:     cfg.UploadURLPath,
		SecureCookie:  strings.HasPrefix(cfg.SiteBaseURL, "https://"),
		Logger:        logger,
	})

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", cfg.ListenAddr, "base_url", cfg.SiteBaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}
