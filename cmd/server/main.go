package main

import (
	"github.com/fundbridge/dealroom/internal/config"
	"github.com/fundbridge/dealroom/internal/database"
	"github.com/fundbridge/dealroom/internal/logger"
	"github.com/fundbridge/dealroom/internal/logic"
	"github.com/fundbridge/dealroom/internal/notify"
	"github.com/fundbridge/dealroom/internal/router"
	"github.com/fundbridge/dealroom/internal/scheduler"
	"github.com/fundbridge/dealroom/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(level, cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	} else if stdLogger, err := logger.New(level); err == nil {
		logger.SetDefaultLogger(stdLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 预置管理员账户
	if err := logic.NewAccountLogic(db).EnsureAdmin(cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		logger.Fatal("Failed to seed admin account: %v", err)
	}

	// 初始化附件存储
	store, err := storage.New(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage: %v", err)
	}

	// 初始化通知分发器
	notifier, err := notify.NewDispatcher(cfg.Notify)
	if err != nil {
		logger.Fatal("Failed to initialize notifier: %v", err)
	}
	defer notifier.Close()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, store, notifier, cfg)

	// 启动定时任务
	manager := scheduler.Start(db, notifier, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
