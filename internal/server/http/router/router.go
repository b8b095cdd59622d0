package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/ordesk/backoffice/internal/domain/model"
	"github.com/ordesk/backoffice/internal/server/http/handlers"
	"github.com/ordesk/backoffice/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.BackofficeFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	registerValidators()
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	operatorHandler := handlers.NewOperatorHandler(facade, facade, facade)
	adminHandler := handlers.NewAdminHandler(facade, facade, facade, facade, facade)
	archiveHandler := handlers.NewArchiveHandler(facade)
	productHandler := handlers.NewProductHandler(facade)

	api := engine.Group("/api")
	api.Use(middleware.MarketSelector())
	api.POST("/login", authHandler.Login)

	session := api.Group("/session")
	session.Use(middleware.AuthRequired(facade))
	session.GET("", authHandler.Me)
	session.POST("/market", authHandler.SwitchMarket)

	products := api.Group("/products")
	products.Use(middleware.AuthRequired(facade))
	products.GET("", productHandler.List)

	operator := api.Group("/operator")
	operator.Use(middleware.AuthRequired(facade))
	operator.Use(middleware.RequireRole(model.RoleOperator, model.RoleAdmin))
	operator.GET("/queue", operatorHandler.Queue)
	operator.GET("/queue/stream", operatorHandler.StreamQueue)
	operator.POST("/orders", operatorHandler.Create)
	operator.POST("/orders/claim", operatorHandler.Claim)
	operator.GET("/orders/current", operatorHandler.Current)
	operator.PUT("/orders/:id", operatorHandler.Update)
	operator.POST("/orders/:id/confirm", operatorHandler.Confirm)
	operator.POST("/orders/:id/cancel", operatorHandler.Cancel)
	operator.POST("/orders/:id/call-later", operatorHandler.CallLater)
	operator.POST("/orders/:id/release", operatorHandler.Release)
	operator.POST("/orders/:id/close", operatorHandler.Close)

	archive := api.Group("/archive")
	archive.Use(middleware.AuthRequired(facade))
	archive.GET("/orders", archiveHandler.ByPhone)
	archive.GET("/awb/:code", archiveHandler.ByAWB)
	archive.POST("/orders/:orderId/awb",
		middleware.RequireRole(model.RolePacker, model.RoleAdmin), archiveHandler.AssignAWB)

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(facade))
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	admin.GET("/orders", adminHandler.ListOrders)
	admin.POST("/orders/:id/reset", adminHandler.ResetOrder)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.ChangeUserRole)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)
	admin.GET("/logs", adminHandler.Logs)
	admin.GET("/reports", adminHandler.Reports)

	return engine
}
