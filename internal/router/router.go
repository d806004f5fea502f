package router

import (
	"database/sql"

	"retail_backend/internal/config"
	"retail_backend/internal/handlers"
	"retail_backend/internal/middleware"
	"retail_backend/internal/repositories"
	"retail_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB, cfg *config.Config) {
	// Initialize Repositories
	employeeRepo := repositories.NewEmployeeRepository(db)
	locationRepo := repositories.NewLocationRepository(db)
	productRepo := repositories.NewProductRepository(db)
	stockRepo := repositories.NewStockRepository(db)
	shiftRepo := repositories.NewShiftRepository(db)
	operationRepo := repositories.NewOperationRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Initialize Services
	shiftService := services.NewShiftService(shiftRepo, db, cfg.Business.ShiftDuration)
	authService := services.NewAuthService(employeeRepo, shiftService)
	employeeService := services.NewEmployeeService(employeeRepo, db)
	catalogService := services.NewCatalogService(locationRepo, productRepo, db)
	stockService := services.NewStockService(stockRepo, db)
	saleService := services.NewSaleService(operationRepo, productRepo, stockRepo, notificationRepo, shiftService, db, cfg.Business)
	reportService := services.NewReportService(operationRepo, shiftRepo, employeeRepo, locationRepo, cfg.Business)
	notificationService := services.NewNotificationService(notificationRepo, db)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	stockHandler := handlers.NewStockHandler(stockService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	saleHandler := handlers.NewSaleHandler(saleService)
	reportHandler := handlers.NewReportHandler(reportService, shiftService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	apiV1 := engine.Group("/api/v1")

	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupShiftRoutes(authenticated, shiftHandler)
		SetupSaleRoutes(authenticated, saleHandler, stockHandler)
		SetupSharedCatalogRoutes(authenticated, catalogHandler)
		SetupReportRoutes(authenticated, reportHandler)
		SetupAdminRoutes(authenticated, employeeHandler, catalogHandler, stockHandler, notificationHandler)
	}
}
