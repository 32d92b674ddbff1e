package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blues/esl/internal/config"
	"github.com/blues/esl/internal/fund"
	"github.com/blues/esl/internal/handler"
)

func Setup(db *gorm.DB, service *fund.Service, cfg *config.Config) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "escrow-ledger",
		})
	})

	// API版本组
	v1 := r.Group("/api/v1")
	{
		projectHandler := handler.NewProjectHandler(service, db)
		contributeHandler := handler.NewContributeRecordHandler(db)
		refundHandler := handler.NewRefundRecordHandler(db)
		eventHandler := handler.NewEventHandler(db)

		projects := v1.Group("/projects")
		{
			// 生命周期操作
			projects.POST("", projectHandler.CreateProject)
			projects.POST("/:id/fund", projectHandler.FundProject)
			projects.POST("/:id/end", projectHandler.EndProject)
			projects.POST("/:id/withdraw", projectHandler.WithdrawFunds)

			// 查询
			projects.GET("", projectHandler.GetProjects)
			projects.GET("/count", projectHandler.CountProjects)
			projects.GET("/:id", projectHandler.GetProject)
			projects.GET("/:id/stats", projectHandler.GetProjectStats)
			projects.GET("/:id/contributions", contributeHandler.GetProjectContributeRecords)
			projects.GET("/:id/contributions/stats", contributeHandler.GetContributeStats)
			projects.GET("/:id/contributions/:address", projectHandler.GetContribution)
			projects.GET("/:id/refunds", refundHandler.GetProjectRefunds)
			projects.GET("/:id/refunds/stats", refundHandler.GetRefundStats)
			projects.GET("/:id/events", eventHandler.GetProjectEvents)
		}

		v1.GET("/stats", projectHandler.GetAllProjectStats)
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
