package main

import (
	"github.com/gin-gonic/gin"

	"github.com/blues/esl/internal/config"
	"github.com/blues/esl/internal/database"
	"github.com/blues/esl/internal/event"
	"github.com/blues/esl/internal/fund"
	"github.com/blues/esl/internal/logger"
	"github.com/blues/esl/internal/router"
	"github.com/blues/esl/internal/task"
	"github.com/blues/esl/internal/token"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	if cfg.Log.Output == "file" {
		fileLogger, err := logger.NewWithFileRotation(logger.ParseLogLevel(cfg.Log.Level), cfg.Log.File)
		if err != nil {
			logger.Fatal("Failed to initialize file logger: %v", err)
		}
		logger.SetDefaultLogger(fileLogger)
	}
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 初始化代币端口
	var tokenPort fund.TokenPort
	if cfg.Chain.Enabled {
		erc20, err := token.NewERC20Port(cfg.Chain)
		if err != nil {
			logger.Fatal("Failed to initialize erc20 token port: %v", err)
		}
		// 链上模式下托管账户就是服务自己的链上地址
		cfg.Fee.Custody = erc20.CustodyAddress()
		tokenPort = erc20
		logger.Info("Using erc20 token port, custody account: %s", cfg.Fee.Custody)
	} else {
		tokenPort = token.NewMemoryToken()
		logger.Info("Chain disabled, using in-memory token port")
	}

	// 初始化通知分发器与投影处理器
	dispatcher, err := event.NewDispatcher(4, 256)
	if err != nil {
		logger.Fatal("Failed to create notification dispatcher: %v", err)
	}
	dispatcher.Register(event.NewProjectProcessor(db, cfg.Fee))
	dispatcher.Start()
	defer dispatcher.Stop()

	// 初始化核心控制器
	service, err := fund.NewService(fund.Config{
		FeeRate:        cfg.Fee.Rate,
		FeeScaleFactor: cfg.Fee.ScaleFactor,
		FeeRecipient:   cfg.Fee.Recipient,
		CustodyAccount: cfg.Fee.Custody,
	}, tokenPort, dispatcher)
	if err != nil {
		logger.Fatal("Failed to create lifecycle service: %v", err)
	}

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db, service, cfg)

	// 启动定时任务
	manager := task.Start(db, service, tokenPort, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
