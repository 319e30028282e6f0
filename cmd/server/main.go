package main

import (
	"context"
	"fmt"
	"log"

	"github.com/vbook/vbook_go_server/config"
	"github.com/vbook/vbook_go_server/internal/api"
	"github.com/vbook/vbook_go_server/internal/api/handler"
	"github.com/vbook/vbook_go_server/internal/database"
	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/pkg/email"
	"github.com/vbook/vbook_go_server/internal/pkg/oss"
	"github.com/vbook/vbook_go_server/internal/pkg/pubsub"
	"github.com/vbook/vbook_go_server/internal/pkg/ws"
	"github.com/vbook/vbook_go_server/internal/repository"
	"github.com/vbook/vbook_go_server/internal/service"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化身份提供方并确保内置角色存在
	provider := identity.NewGormProvider(db)
	if err := provider.EnsureRoles(); err != nil {
		log.Fatalf("Failed to ensure roles: %v", err)
	}

	// 初始化 OSS（未配置时跳过，上传接口返回错误）
	var ossClient *oss.Client
	if cfg.OSS.Endpoint != "" {
		ossClient, err = oss.NewClient(&cfg.OSS)
		if err != nil {
			log.Fatalf("Failed to init OSS client: %v", err)
		}
		log.Println("OSS client initialized")
	}

	// 初始化邮件服务（未配置时跳过回执邮件）
	var emailSvc *email.Service
	if cfg.Email.SMTPHost != "" {
		emailSvc = email.NewService(&cfg.Email)
	}

	// 初始化 WebSocket Hub 与转化消息转发
	wsHub := ws.NewHub()
	publisher := pubsub.NewPublisher(rdb)
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.ConversionMessage) {
			if err := wsHub.Broadcast(&ws.Message{Type: msg.Type, Data: msg}); err != nil {
				log.Printf("Failed to broadcast conversion: %v", err)
			}
		})
		if err != nil {
			log.Printf("Conversion subscriber stopped: %v", err)
		}
	}()
	log.Println("WebSocket hub started")

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	chapterRepo := repository.NewChapterRepository(db)
	txRepo := repository.NewTransactionRepository(db)
	historyRepo := repository.NewHistoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	mediaRepo := repository.NewMediaRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, provider, cfg)
	entitlementService := service.NewEntitlementService(provider)
	catalogService := service.NewCatalogService(bookRepo, chapterRepo, reviewRepo, favoriteRepo, mediaRepo, ossClient, cfg)
	readingService := service.NewReadingService(bookRepo, chapterRepo, historyRepo, entitlementService)
	subscriptionService := service.NewSubscriptionService(db, userRepo, txRepo, provider, emailSvc, publisher)
	reviewService := service.NewReviewService(bookRepo, reviewRepo)
	favoriteService := service.NewFavoriteService(bookRepo, favoriteRepo)
	adminService := service.NewAdminService(userRepo, provider)
	analyticsService := service.NewAnalyticsService(userRepo, bookRepo, txRepo, favoriteRepo, historyRepo)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	bookHandler := handler.NewBookHandler(catalogService)
	readingHandler := handler.NewReadingHandler(readingService)
	favoriteHandler := handler.NewFavoriteHandler(favoriteService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	paymentHandler := handler.NewPaymentHandler(subscriptionService)
	adminHandler := handler.NewAdminHandler(adminService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, provider, cfg.JWT.Secret)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		bookHandler,
		readingHandler,
		favoriteHandler,
		reviewHandler,
		paymentHandler,
		adminHandler,
		analyticsHandler,
		websocketHandler,
		provider,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
