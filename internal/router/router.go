package router

import (
	"github.com/fundbridge/dealroom/internal/config"
	"github.com/fundbridge/dealroom/internal/handler"
	"github.com/fundbridge/dealroom/internal/logic"
	"github.com/fundbridge/dealroom/internal/middleware"
	"github.com/fundbridge/dealroom/internal/model"
	"github.com/fundbridge/dealroom/internal/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(db *gorm.DB, store *storage.Store, notifier logic.Notifier, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.RequestId())
	r.Use(cors.Default())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "dealroom-service",
		})
	})

	// 附件静态访问
	r.Static(store.BaseURL(), store.Dir())

	authHandler := handler.NewAuthHandler(db, cfg.Auth)
	startupHandler := handler.NewStartupHandler(db, notifier, store)
	adminHandler := handler.NewAdminHandler(db, notifier)
	dealRoomHandler := handler.NewDealRoomHandler(db)
	introductionHandler := handler.NewIntroductionHandler(db, notifier)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		// 注册登录
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.Authenticate(db, cfg.Auth), authHandler.Me)
		}

		// 创始人侧
		startups := v1.Group("/startups",
			middleware.Authenticate(db, cfg.Auth),
			middleware.RequireRole(model.RoleStartup))
		{
			startups.POST("", startupHandler.CreateStartup)
			startups.GET("/me", startupHandler.GetOwnStartup)
			startups.PUT("/me", startupHandler.UpdateOwnStartup)
			startups.POST("/me/submit", startupHandler.SubmitStartup)
			startups.POST("/me/documents", startupHandler.UploadDocument)
			startups.GET("/me/documents", startupHandler.GetOwnDocuments)
		}

		// 投资人侧
		investor := v1.Group("", middleware.Authenticate(db, cfg.Auth),
			middleware.RequireRole(model.RoleInvestor))
		{
			investor.GET("/dealrooms", dealRoomHandler.GetMyDealRooms)
			investor.GET("/dealrooms/:id", dealRoomHandler.GetDealRoomView)
			investor.GET("/dealrooms/:id/startups/:startupId", dealRoomHandler.GetStartupView)
			investor.POST("/introductions", introductionHandler.CreateIntroduction)
			investor.GET("/introductions", introductionHandler.GetOwnIntroductions)
		}

		// 管理员侧
		admin := v1.Group("/admin", middleware.Authenticate(db, cfg.Auth),
			middleware.RequireRole(model.RoleAdmin))
		{
			admin.GET("/startups", adminHandler.GetStartups)
			admin.GET("/startups/:id", adminHandler.GetStartup)
			admin.PUT("/startups/:id/status", adminHandler.UpdateStatus)
			admin.PUT("/startups/:id/scores", adminHandler.SetScores)
			admin.PUT("/startups/:id/notes", adminHandler.SetNotes)
			admin.GET("/startups/:id/documents", adminHandler.GetStartupDocuments)
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/audit-log", adminHandler.GetAuditLog)

			admin.POST("/dealrooms", dealRoomHandler.CreateDealRoom)
			admin.GET("/dealrooms", dealRoomHandler.GetDealRooms)
			admin.GET("/dealrooms/:id", dealRoomHandler.GetDealRoom)
			admin.PUT("/dealrooms/:id", dealRoomHandler.UpdateDealRoom)
			admin.DELETE("/dealrooms/:id", dealRoomHandler.DeleteDealRoom)
			admin.POST("/dealrooms/:id/startups", dealRoomHandler.AddStartup)
			admin.DELETE("/dealrooms/:id/startups/:startupId", dealRoomHandler.RemoveStartup)
			admin.POST("/dealrooms/:id/investors", dealRoomHandler.AddInvestor)
			admin.DELETE("/dealrooms/:id/investors/:investorId", dealRoomHandler.RemoveInvestor)
			admin.PUT("/dealrooms/:id/visibility", dealRoomHandler.SetVisibility)

			admin.GET("/introductions", introductionHandler.GetIntroductions)
			admin.PUT("/introductions/:id/approve", introductionHandler.ApproveIntroduction)
			admin.PUT("/introductions/:id/decline", introductionHandler.DeclineIntroduction)
		}
	}

	return r
}
