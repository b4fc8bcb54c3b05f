package main

import (
	"log"
	"net/http"
	"os"
	"strings"

	"jm_store_backend/internal/database"
	"jm_store_backend/internal/repositories"
	"jm_store_backend/internal/router"
	"jm_store_backend/internal/services"
	"jm_store_backend/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	utils.InitLogger()

	// Load database configuration from environment variables
	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "jm_store_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "jm_store_password")
	dbName := utils.Getenv("DB_NAME", "jm_store_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")
	dbSchemaPath := utils.Getenv("DB_SCHEMA_PATH", "")

	database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode, dbSchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"configured_from_env": true})

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	// CORS configuration
	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	dbConn := database.GetDB()
	router.Setup(engine, dbConn)

	// Expired stories stay invisible either way; the hourly sweep just keeps
	// the table from growing without bound.
	storyService := services.NewStoryService(repositories.NewStoryRepository(dbConn), dbConn)
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		if _, err := storyService.PurgeExpired(); err != nil {
			utils.LogError(err, "Scheduled story purge failed")
		}
	}); err != nil {
		utils.LogError(err, "Failed to schedule story purge")
	}
	scheduler.Start()
	defer scheduler.Stop()

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port, "configured_from_env": true})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
