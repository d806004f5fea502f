package main

import (
	"log"
	"net/http"

	"retail_backend/internal/config"
	"retail_backend/internal/database"
	routerpkg "retail_backend/internal/router"
	"retail_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize Logger
	utils.InitLogger()

	cfg := config.Load()
	utils.ConfigureJWT(cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

	// Initialize Database
	database.InitDB(
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Name,
		cfg.Database.SSLMode,
		cfg.Database.SchemaPath,
	)
	utils.LogInfo("Database initialized", map[string]interface{}{"host": cfg.Database.Host, "name": cfg.Database.Name})

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	engine.Use(cors.New(corsConfig))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Setup all application routes
	routerpkg.Setup(engine, database.GetDB(), cfg)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.Server.Port})

	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
