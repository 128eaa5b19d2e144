package router

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/config"
	"resto_pos_backend/internal/handlers"
	"resto_pos_backend/internal/middleware"
	"resto_pos_backend/internal/repositories"
	"resto_pos_backend/internal/services"
	"resto_pos_backend/pkg/utils"
)

// Setup wires repositories, services and handlers onto the engine.
func Setup(r *gin.Engine, db *sql.DB, cfg *config.Config) {
	tokenManager := utils.NewTokenManager(cfg.JWT.Secret)

	authRepo := repositories.NewAuthRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	menuRepo := repositories.NewMenuRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	settingsRepo := repositories.NewSettingsRepository(db)

	settingsService := services.NewSettingsService(settingsRepo, db)
	authService := services.NewAuthService(authRepo, tokenManager, db)
	staffService := services.NewStaffService(staffRepo, authRepo, db)
	menuService := services.NewMenuService(menuRepo, db)
	tableService := services.NewTableService(tableRepo, db)
	orderService := services.NewOrderService(orderRepo, menuRepo, tableRepo, db)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo, tableRepo, settingsService, db)
	reportService := services.NewReportService(paymentRepo, orderRepo, tableRepo, settingsService)

	authHandler := handlers.NewAuthHandler(authService)
	staffHandler := handlers.NewStaffHandler(staffService)
	menuHandler := handlers.NewMenuHandler(menuService)
	tableHandler := handlers.NewTableHandler(tableService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	settingHandler := handlers.NewSettingHandler(settingsService)
	reportHandler := handlers.NewReportHandler(reportService)

	api := r.Group("/api/v1")

	registerPublicRoutes(api, authHandler, tableHandler, menuHandler)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	registerStaffRoutes(protected, staffHandler)
	registerMenuRoutes(protected, menuHandler)
	registerTableRoutes(protected, tableHandler)
	registerOrderRoutes(protected, orderHandler, paymentHandler)
	registerPaymentRoutes(protected, paymentHandler)
	registerSettingRoutes(protected, settingHandler)
	registerReportRoutes(protected, reportHandler)
	registerProfileRoutes(protected, authHandler)
}
