package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"resto_pos_backend/internal/config"
	"resto_pos_backend/internal/database"
	appRouter "resto_pos_backend/internal/router"
	"resto_pos_backend/pkg/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLogger(cfg.Log.Pretty)

	database.InitDB(cfg.DB.Host, cfg.DB.Port, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.SSLMode, cfg.DB.SchemaPath)
	utils.LogInfo("Database initialized", map[string]interface{}{"host": cfg.DB.Host, "database": cfg.DB.Name})

	r := gin.Default()
	r.Use(utils.GinLogger())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.HTTP.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	appRouter.Setup(r, database.GetDB(), cfg)

	utils.LogInfo("Server starting", map[string]interface{}{"port": cfg.HTTP.Port})
	if err := r.Run(":" + cfg.HTTP.Port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}
