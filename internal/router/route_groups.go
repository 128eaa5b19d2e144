package router

import (
	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/handlers"
	"resto_pos_backend/internal/middleware"
	"resto_pos_backend/internal/models"
)

// registerPublicRoutes mounts the endpoints that require no token:
// login, token refresh, and the customer-facing QR resolution and menu
// browsing used by the table ordering page.
func registerPublicRoutes(rg *gin.RouterGroup, ah *handlers.AuthHandler, th *handlers.TableHandler, mh *handlers.MenuHandler) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", ah.Register)
		auth.POST("/login", ah.Login)
		auth.POST("/refresh", ah.Refresh)
	}

	public := rg.Group("/public")
	{
		public.GET("/qr/:token", th.ResolveQRToken)
		public.GET("/menu/categories", mh.GetCategories)
		public.GET("/menu/items", mh.GetItems)
	}
}

func registerProfileRoutes(rg *gin.RouterGroup, ah *handlers.AuthHandler) {
	rg.GET("/profile", ah.Profile)
}

func registerStaffRoutes(rg *gin.RouterGroup, sh *handlers.StaffHandler) {
	staff := rg.Group("/staff")
	staff.Use(middleware.RequirePermission(models.PermStaffManage))
	{
		staff.POST("", sh.CreateStaffMember)
		staff.GET("", sh.GetStaffMembers)
		staff.GET("/:id", sh.GetStaffMember)
		staff.PUT("/:id", sh.UpdateStaffMember)
		staff.DELETE("/:id", sh.DeleteStaffMember)
		staff.PUT("/:id/permissions", sh.SetPermissions)
	}
}

func registerMenuRoutes(rg *gin.RouterGroup, mh *handlers.MenuHandler) {
	menu := rg.Group("/menu")
	menu.Use(middleware.RequirePermission(models.PermMenuManage))
	{
		menu.POST("/categories", mh.CreateCategory)
		menu.GET("/categories", mh.GetCategories)
		menu.GET("/categories/:id", mh.GetCategory)
		menu.PUT("/categories/:id", mh.UpdateCategory)
		menu.DELETE("/categories/:id", mh.DeleteCategory)

		menu.POST("/items", mh.CreateItem)
		menu.GET("/items", mh.GetItems)
		menu.GET("/items/:id", mh.GetItem)
		menu.PUT("/items/:id", mh.UpdateItem)
		menu.PATCH("/items/:id/availability", mh.SetItemAvailability)
		menu.DELETE("/items/:id", mh.DeleteItem)
	}
}

func registerTableRoutes(rg *gin.RouterGroup, th *handlers.TableHandler) {
	tables := rg.Group("/tables")
	tables.Use(middleware.RequirePermission(models.PermTablesManage))
	{
		tables.POST("", th.CreateTable)
		tables.GET("", th.GetTables)
		tables.GET("/:id", th.GetTable)
		tables.PUT("/:id", th.UpdateTable)
		tables.PATCH("/:id/status", th.UpdateTableStatus)
		tables.DELETE("/:id", th.DeleteTable)

		tables.POST("/:id/qr", th.GenerateQRCode)
		tables.DELETE("/:id/qr", th.ExpireQRCode)
	}
}

// Order routes also carry the billing preview and settlement endpoints
// since they address a specific order.
func registerOrderRoutes(rg *gin.RouterGroup, oh *handlers.OrderHandler, ph *handlers.PaymentHandler) {
	orders := rg.Group("/orders")
	orders.Use(middleware.RequirePermission(models.PermOrdersManage))
	{
		orders.POST("", oh.CreateOrder)
		orders.GET("", oh.GetOrders)
		orders.GET("/:id", oh.GetOrder)
		orders.POST("/:id/items", oh.AddItems)
		orders.PATCH("/:id/status", oh.UpdateOrderStatus)
		orders.DELETE("/:id", oh.DeleteOrder)
	}

	billing := rg.Group("/orders")
	billing.Use(middleware.RequirePermission(models.PermPaymentsProcess))
	{
		billing.POST("/:id/bill/preview", ph.PreviewBill)
		billing.POST("/:id/settle", ph.SettleOrder)
	}
}

func registerPaymentRoutes(rg *gin.RouterGroup, ph *handlers.PaymentHandler) {
	payments := rg.Group("/payments")
	payments.Use(middleware.RequirePermission(models.PermPaymentsProcess))
	{
		payments.GET("/bills", ph.GetGroupedBills)
		payments.GET("/:id", ph.GetPayment)
		payments.GET("/:id/receipt", ph.GetReceipt)
	}
}

func registerSettingRoutes(rg *gin.RouterGroup, sh *handlers.SettingHandler) {
	settings := rg.Group("/settings")
	settings.Use(middleware.RequirePermission(models.PermSettingsManage))
	{
		settings.GET("", sh.GetSettings)
		settings.GET("/tax", sh.GetTaxSettings)
		settings.GET("/:key", sh.GetSetting)
		settings.PUT("", sh.UpsertSetting)
		settings.DELETE("/:key", sh.DeleteSetting)
	}
}

func registerReportRoutes(rg *gin.RouterGroup, rh *handlers.ReportHandler) {
	reports := rg.Group("/reports")
	reports.Use(middleware.RequirePermission(models.PermReportsView))
	{
		reports.GET("/daily-sales", rh.DailySales)
		reports.GET("/item-sales", rh.ItemSales)
		reports.GET("/dashboard", rh.Dashboard)
	}
}
