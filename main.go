package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/qianlnk/wolfgrid/config"
	"github.com/qianlnk/wolfgrid/logging"
	"github.com/qianlnk/wolfgrid/services"
	"github.com/qianlnk/wolfgrid/tui"
)

func main() {
	os.Exit(run())
}

// run 返回进程退出码；所有 defer 在 os.Exit 之前执行，保证连接被释放
func run() int {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration:", err)
		return 1
	}

	// 终端留给界面，日志写文件
	logger, err := logging.New(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel, Name: "client"})
	if err != nil {
		fmt.Fprintln(os.Stderr, "journal:", err)
		return 1
	}
	defer logger.Sync()

	api := services.NewAPIClient(cfg.ServerURL, cfg.Timeout, logger)
	defer api.Close()
	logger.Info("客户端启动", zap.String("server", cfg.ServerURL), zap.Duration("timeout", cfg.Timeout))

	login, role, err := tui.PromptIdentity(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	loop := services.NewClientLoop(api, logger)
	if err := loop.Register(login, role); err != nil {
		fmt.Fprintln(os.Stderr, "Inscription impossible :", services.UserMessage(err))
		return 1
	}

	screen, err := tui.Open()
	if err != nil {
		fmt.Fprintln(os.Stderr, "terminal:", err)
		return 1
	}
	defer screen.Close()

	if err := loop.Run(screen, screen); err != nil {
		logger.Error("客户端异常退出", zap.Error(err))
		return 1
	}
	return 0
}
