package router

import (
	"retail_backend/internal/handlers"
	"retail_backend/internal/middleware"
	"retail_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupPublicAuthRoutes wires login and token refresh, which need no token.
func SetupPublicAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	rg.POST("/login", h.Login)
	rg.POST("/refresh-token", h.RefreshToken)
}

// SetupAuthenticatedAuthRoutes wires profile and logout.
func SetupAuthenticatedAuthRoutes(rg *gin.RouterGroup, h *handlers.AuthHandler) {
	rg.GET("/me", h.GetProfile)
	rg.POST("/logout", h.Logout)
}

// SetupShiftRoutes wires the seller shift endpoints.
func SetupShiftRoutes(rg *gin.RouterGroup, h *handlers.ShiftHandler) {
	shifts := rg.Group("/shifts")
	shifts.Use(middleware.RoleAuthMiddleware(models.RoleSeller))
	{
		shifts.POST("/open", h.OpenShift)
		shifts.GET("/current", h.CurrentShift)
		shifts.POST("/:id/close", h.CloseShift)
	}
}

// SetupSaleRoutes wires the POS endpoints a seller works with during a shift.
func SetupSaleRoutes(rg *gin.RouterGroup, sh *handlers.SaleHandler, sth *handlers.StockHandler) {
	pos := rg.Group("")
	pos.Use(middleware.RoleAuthMiddleware(models.RoleSeller))
	{
		pos.POST("/sales", sh.CreateSale)
		pos.GET("/sales/by-store-date", sh.ListOpenSales)
		pos.GET("/operations/:id/items", sh.GetSaleLines)
		pos.POST("/returns", sh.CreateReturn)
		pos.GET("/stock", sth.GetOwnStoreStock)
	}
}

// SetupSharedCatalogRoutes wires catalog reads both roles need. Sellers only
// get the product list, for the sale screen.
func SetupSharedCatalogRoutes(rg *gin.RouterGroup, ch *handlers.CatalogHandler) {
	rg.GET("/products",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleSeller), ch.GetProducts)
}

// SetupReportRoutes wires reporting. The shift report is reachable by both
// roles; its handler restricts sellers to their own shifts.
func SetupReportRoutes(rg *gin.RouterGroup, h *handlers.ReportHandler) {
	reports := rg.Group("/reports")
	{
		reports.GET("/summary", middleware.RoleAuthMiddleware(models.RoleAdmin), h.GetSummary)
		reports.GET("/sales", middleware.RoleAuthMiddleware(models.RoleAdmin), h.GetSalesReport)
	}
	rg.GET("/shifts/:id/report",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleSeller), h.GetShiftReport)
}

// SetupAdminRoutes wires catalog CRUD, employee management, stock movements
// and notifications.
func SetupAdminRoutes(
	rg *gin.RouterGroup,
	eh *handlers.EmployeeHandler,
	ch *handlers.CatalogHandler,
	sth *handlers.StockHandler,
	nh *handlers.NotificationHandler,
) {
	admin := rg.Group("")
	admin.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		admin.POST("/employees", eh.CreateEmployee)
		admin.GET("/employees", eh.GetEmployees)
		admin.GET("/employees/:id", eh.GetEmployee)
		admin.PUT("/employees/:id", eh.UpdateEmployee)
		admin.DELETE("/employees/:id", eh.DeleteEmployee)

		admin.POST("/stores", ch.CreateStore)
		admin.GET("/stores", ch.GetStores)
		admin.GET("/stores/:id", ch.GetStore)
		admin.PUT("/stores/:id", ch.UpdateStore)
		admin.DELETE("/stores/:id", ch.DeleteStore)
		admin.GET("/stores/:id/stock", sth.GetStoreStock)

		admin.POST("/warehouses", ch.CreateWarehouse)
		admin.GET("/warehouses", ch.GetWarehouses)
		admin.GET("/warehouses/:id", ch.GetWarehouse)
		admin.PUT("/warehouses/:id", ch.UpdateWarehouse)
		admin.DELETE("/warehouses/:id", ch.DeleteWarehouse)
		admin.GET("/warehouses/:id/stock", sth.GetWarehouseStock)

		admin.POST("/products", ch.CreateProduct)
		admin.GET("/products/:id", ch.GetProduct)
		admin.PUT("/products/:id", ch.UpdateProduct)
		admin.DELETE("/products/:id", ch.DeleteProduct)

		admin.POST("/categories", ch.CreateCategory)
		admin.GET("/categories", ch.GetCategories)

		admin.POST("/receipts", sth.ReceiveStock)
		admin.POST("/distributions", sth.DistributeStock)

		admin.GET("/notifications", nh.GetNotifications)
		admin.POST("/notifications/:id/read", nh.MarkNotificationRead)
		admin.GET("/dashboard/low-stock", nh.GetLowStock)
	}
}
