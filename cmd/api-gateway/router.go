// Package main 是应用程序入口
package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/dumeirei/hotel-marketplace-backend/internal/common/config"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/jwt"
	"github.com/dumeirei/hotel-marketplace-backend/internal/common/metrics"
	adminHandler "github.com/dumeirei/hotel-marketplace-backend/internal/handler/admin"
	merchantHandler "github.com/dumeirei/hotel-marketplace-backend/internal/handler/merchant"
	searchHandler "github.com/dumeirei/hotel-marketplace-backend/internal/handler/search"
	"github.com/dumeirei/hotel-marketplace-backend/internal/middleware"
	"github.com/dumeirei/hotel-marketplace-backend/internal/repository"
	"github.com/dumeirei/hotel-marketplace-backend/internal/scheduler"
	adminService "github.com/dumeirei/hotel-marketplace-backend/internal/service/admin"
	"github.com/dumeirei/hotel-marketplace-backend/internal/service/inventory"
	merchantService "github.com/dumeirei/hotel-marketplace-backend/internal/service/merchant"
	searchService "github.com/dumeirei/hotel-marketplace-backend/internal/service/search"
)

// setupRouter 设置路由，返回待启动的后台调度器
func setupRouter(
	r *gin.Engine,
	cfg *config.Config,
	log *zap.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
) *scheduler.Scheduler {
	// 创建 JWT 管理器
	jwtManager := jwt.NewManager(&jwt.Config{
		Secret:            cfg.JWT.Secret,
		AccessExpireTime:  cfg.JWT.AccessTokenDuration(),
		RefreshExpireTime: cfg.JWT.RefreshTokenDuration(),
		Issuer:            cfg.JWT.Issuer,
	})

	// 初始化仓储
	hotelRepo := repository.NewHotelRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	stockRepo := repository.NewStockRepository(db)

	// 初始化服务
	horizonNights := cfg.Business.Stock.HorizonNights()
	stockSvc := inventory.NewStockService(stockRepo, roomRepo)
	priceSvc := inventory.NewPriceService(hotelRepo, roomRepo)
	searchSvc := searchService.NewSearchService(
		hotelRepo, roomRepo, stockRepo, redisClient,
		cfg.Business.Search.ScanLimit,
		time.Duration(cfg.Business.Search.CacheTTL)*time.Second,
	)
	hotelSvc := merchantService.NewHotelService(hotelRepo, roomRepo)
	roomSvc := merchantService.NewRoomService(roomRepo, hotelRepo, stockSvc, priceSvc, horizonNights)
	auditSvc := adminService.NewAuditService(hotelRepo, roomRepo, priceSvc)

	// 初始化处理器
	searchH := searchHandler.NewHandler(searchSvc)
	hotelH := merchantHandler.NewHotelHandler(hotelSvc)
	roomH := merchantHandler.NewRoomHandler(roomSvc)
	auditH := adminHandler.NewAuditHandler(auditSvc)

	// 全局中间件
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	r.Use(middleware.CORS(&middleware.CORSConfig{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           cfg.CORS.MaxAge,
	}))
	r.Use(middleware.AccessLog(log))

	// 监控指标
	if cfg.Metrics.Enabled {
		m := metrics.Init("")
		r.Use(m.Middleware())
		r.GET(cfg.Metrics.Path, metrics.Handler())
	}

	// 健康检查（不需要认证）
	r.GET("/health", healthHandler)
	r.GET("/ping", pingHandler)
	r.GET("/ready", readyHandler(db, redisClient))

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	rateWindow := time.Duration(cfg.RateLimit.Window) * time.Second

	// API v1 路由组
	v1 := r.Group("/api/v1")
	{
		// 公开接口（无需认证）
		public := v1.Group("")
		{
			searchGroup := public.Group("")
			if cfg.RateLimit.Enabled {
				searchGroup.Use(middleware.SearchRateLimit(redisClient, cfg.RateLimit.Limit, rateWindow))
			}
			searchGroup.GET("/search", searchH.Search)
			searchGroup.GET("/hotels/:id", searchH.GetHotelDetail)
		}

		// 商户接口
		merchant := v1.Group("/merchant")
		merchant.Use(middleware.MerchantAuth(jwtManager))
		if cfg.RateLimit.Enabled {
			merchant.Use(middleware.MerchantRateLimit(redisClient, cfg.RateLimit.Limit, rateWindow))
		}
		{
			merchant.POST("/hotels", hotelH.CreateHotel)
			merchant.GET("/hotels", hotelH.ListHotels)
			merchant.GET("/hotels/:id", hotelH.GetHotel)
			merchant.PUT("/hotels/:id", hotelH.UpdateHotel)
			merchant.DELETE("/hotels/:id", hotelH.DeleteHotel)

			merchant.POST("/hotels/:id/rooms", roomH.CreateRoom)
			merchant.GET("/hotels/:id/rooms", roomH.ListRooms)
			merchant.GET("/rooms/:id", roomH.GetRoom)
			merchant.PUT("/rooms/:id", roomH.UpdateRoom)
			merchant.DELETE("/rooms/:id", roomH.DeleteRoom)
			merchant.POST("/rooms/:id/toggle", roomH.ToggleRoom)
			merchant.GET("/rooms/:id/stocks", roomH.GetStock)
			merchant.PUT("/rooms/:id/stocks/price", roomH.SetDailyPrice)
		}

		// 平台接口
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(jwtManager))
		{
			admin.GET("/hotels/pending", auditH.ListPendingHotels)
			admin.POST("/hotels/:id/audit", auditH.AuditHotel)
			admin.POST("/hotels/:id/delist", auditH.DelistHotel)
			admin.GET("/rooms/pending", auditH.ListPendingRooms)
			admin.POST("/rooms/:id/audit", auditH.AuditRoom)
		}
	}

	// 后台调度器：每天滚动铺设库存窗口
	sched := scheduler.NewScheduler()
	taskHandler := scheduler.NewTaskHandler(roomRepo, stockSvc, redisClient, horizonNights)
	interval := time.Duration(cfg.Business.Stock.ExtendInterval) * time.Hour
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	sched.AddTask("ExtendStockHorizon", interval, taskHandler.ExtendStockHorizon)

	return sched
}
