package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"realty/config"
	"realty/routes"
	"realty/services"
	"realty/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env not loaded, using ambient environment: %v", err)
	}

	router, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	backend := services.NewBackendClient(config.BackendBaseURL())

	routes.SetupRoutes(router, backend, config.RedisClient)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	utils.LogInfo("server starting on port %s, backend %s", port, config.BackendBaseURL())
	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		utils.LogError("server stopped: %v", err)
		log.Fatalf("Failed to start server: %v", err)
	}
}
