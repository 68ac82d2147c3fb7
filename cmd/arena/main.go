package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/arena"
	"github.com/qianlnk/wolfgrid/config"
	"github.com/qianlnk/wolfgrid/logging"
	"github.com/qianlnk/wolfgrid/models"
)

// 参考服务端：实现 /inscription /deplacement /vision /tour，供本地联调
func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "arena config file (yaml/json/toml)")
	flag.Parse()

	cfg, err := config.LoadArena(configPath)
	if err != nil {
		panic(err)
	}
	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Name: "arena"})
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	gin.SetMode(gin.ReleaseMode)
	srv := arena.NewServer(arena.Settings{
		Width:        cfg.Width,
		Height:       cfg.Height,
		VisionRadius: cfg.VisionRadius,
		TurnDuration: cfg.TurnDuration,
		Obstacles:    cfg.Obstacles,
		Seed:         cfg.Seed,
	}, logger)

	for i := 0; i < cfg.BotWolves; i++ {
		if _, err := srv.World().AddBot(models.Wolf); err != nil {
			logger.Warn("添加机器人失败", zap.Error(err))
		}
	}
	for i := 0; i < cfg.BotVillagers; i++ {
		if _, err := srv.World().AddBot(models.Villager); err != nil {
			logger.Warn("添加机器人失败", zap.Error(err))
		}
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	srv.Start()
	go func() {
		logger.Info("服务器启动", zap.String("addr", cfg.Addr), zap.Duration("tour", cfg.TurnDuration))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("正在关闭...")

	srv.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Warn("关闭服务器失败", zap.Error(err))
	}
}
