package api

import (
	"github.com/gin-gonic/gin"

	"github.com/vbook/vbook_go_server/config"
	"github.com/vbook/vbook_go_server/internal/api/handler"
	"github.com/vbook/vbook_go_server/internal/api/middleware"
	"github.com/vbook/vbook_go_server/internal/identity"
	"github.com/vbook/vbook_go_server/internal/model"
)

type Router struct {
	authHandler      *handler.AuthHandler
	bookHandler      *handler.BookHandler
	readingHandler   *handler.ReadingHandler
	favoriteHandler  *handler.FavoriteHandler
	reviewHandler    *handler.ReviewHandler
	paymentHandler   *handler.PaymentHandler
	adminHandler     *handler.AdminHandler
	analyticsHandler *handler.AnalyticsHandler
	websocketHandler *handler.WebSocketHandler
	identity         identity.Provider
	cfg              *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	bookHandler *handler.BookHandler,
	readingHandler *handler.ReadingHandler,
	favoriteHandler *handler.FavoriteHandler,
	reviewHandler *handler.ReviewHandler,
	paymentHandler *handler.PaymentHandler,
	adminHandler *handler.AdminHandler,
	analyticsHandler *handler.AnalyticsHandler,
	websocketHandler *handler.WebSocketHandler,
	provider identity.Provider,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:      authHandler,
		bookHandler:      bookHandler,
		readingHandler:   readingHandler,
		favoriteHandler:  favoriteHandler,
		reviewHandler:    reviewHandler,
		paymentHandler:   paymentHandler,
		adminHandler:     adminHandler,
		analyticsHandler: analyticsHandler,
		websocketHandler: websocketHandler,
		identity:         provider,
		cfg:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
		}

		// 公开接口 - 书籍浏览（可选认证，登录后附带个人状态）
		public := api.Group("")
		public.Use(middleware.OptionalAuth(r.cfg.JWT.Secret))
		{
			public.GET("/home", r.bookHandler.Home)
			public.GET("/books", r.bookHandler.Search)
			public.GET("/books/:id", r.bookHandler.Detail)
			public.GET("/books/:id/chapters", r.bookHandler.Chapters)
			public.GET("/books/:id/reviews", r.reviewHandler.List)
			public.GET("/books/:id/comments", r.reviewHandler.Comments)
			// 免费章节未登录可读，VIP 章节在服务层拦截
			public.GET("/chapters/:id/read", r.readingHandler.ReadChapter)
		}

		// 公开接口 - VIP 套餐
		api.GET("/vip/packages", r.paymentHandler.Packages)

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			user := authenticated.Group("/user")
			{
				user.GET("/profile", r.authHandler.Profile)
				user.PUT("/profile", r.authHandler.UpdateProfile)
				user.PUT("/password", r.authHandler.ChangePassword)
				user.GET("/reading-history", r.readingHandler.History)
				user.GET("/favorites", r.favoriteHandler.List)
			}

			vip := authenticated.Group("/vip")
			{
				vip.POST("/purchase", r.paymentHandler.Purchase)
				vip.GET("/transactions", r.paymentHandler.History)
			}

			books := authenticated.Group("/books")
			{
				books.POST("/:id/favorite", r.favoriteHandler.Toggle)
				books.GET("/:id/favorite", r.favoriteHandler.Status)
				books.POST("/:id/reviews", r.reviewHandler.Submit)
				books.POST("/:id/comments", r.reviewHandler.Comment)
			}
		}

		// 管理后台（admin 或 super_admin）
		admin := api.Group("/admin")
		admin.GET("/analytics/live", r.websocketHandler.Handle)
		admin.Use(
			middleware.Auth(r.cfg.JWT.Secret),
			middleware.RequireRoles(r.identity, model.RoleAdmin, model.RoleSuperAdmin),
		)
		{
			admin.GET("/analytics/dashboard", r.analyticsHandler.Dashboard)
			admin.GET("/analytics/conversions", r.analyticsHandler.Conversions)

			admin.POST("/books", r.bookHandler.Create)
			admin.PUT("/books/:id", r.bookHandler.Update)
			admin.DELETE("/books/:id", r.bookHandler.Delete)
			admin.POST("/books/:id/chapters", r.bookHandler.CreateChapter)
			admin.PUT("/chapters/:id", r.bookHandler.UpdateChapter)
			admin.DELETE("/chapters/:id", r.bookHandler.DeleteChapter)
			admin.GET("/books/:id/media", r.bookHandler.ListMedia)
			admin.POST("/books/:id/media", r.bookHandler.AddMedia)
			admin.POST("/books/:id/media/upload", r.bookHandler.UploadMedia)
			admin.DELETE("/media/:id", r.bookHandler.DeleteMedia)

			admin.GET("/users", r.adminHandler.ListUsers)
			admin.GET("/users/:id", r.adminHandler.GetUser)
			admin.PUT("/users/:id", r.adminHandler.EditUser)
			admin.DELETE("/users/:id", r.adminHandler.DeleteUser)
			admin.POST("/users/:id/vip/extend", r.paymentHandler.AdminExtend)
			admin.DELETE("/users/:id/vip", r.paymentHandler.AdminRemoveVip)
			admin.GET("/users/:id/transactions", r.paymentHandler.AdminUserTransactions)

			admin.GET("/reviews", r.reviewHandler.AdminList)
			admin.PUT("/reviews/:id", r.reviewHandler.AdminUpdate)
			admin.DELETE("/reviews/:id", r.reviewHandler.AdminDelete)

			admin.GET("/favorites", r.favoriteHandler.AdminList)
		}

		// 管理员账号管理（仅超级管理员）
		super := api.Group("/admin/accounts")
		super.Use(
			middleware.Auth(r.cfg.JWT.Secret),
			middleware.RequireRoles(r.identity, model.RoleSuperAdmin),
		)
		{
			super.GET("", r.adminHandler.ListAdmins)
			super.POST("", r.adminHandler.CreateAdmin)
			super.PUT("/:id", r.adminHandler.UpdateAdmin)
			super.DELETE("/:id", r.adminHandler.DeleteAdmin)
		}
	}

	return engine
}
