package main

import (
	"log"
	"time"

	"amparo-backend/config"
	"amparo-backend/database"
	routes "amparo-backend/internal/app/http"
	"amparo-backend/internal/app/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()
	database.InitDB()

	if config.IS_PRODUCTION {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ALLOWED_ORIGINS,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.Sessions())
	r.Use(middleware.OriginCheck())

	routes.RegisterRoutes(r)

	log.Printf("AMPARO API listening on :%s (production=%v)", config.PORT, config.IS_PRODUCTION)
	r.Run(":" + config.PORT)
}
