package main

import (
	"log"
	"net/http"
	"os"

	"bookstay/config"
	"bookstay/controllers"
	"bookstay/jobs"
	"bookstay/models"
	"bookstay/routes"
	"bookstay/services"
	"bookstay/services/notification"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func migrateTables() {
	if err := config.DB.AutoMigrate(
		&models.User{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Booking{},
		&models.Payment{},
		&models.Notification{},
	); err != nil {
		panic("Failed to migrate tables: " + err.Error())
	}
}

func main() {

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}

	router, m, c, err := config.InitApp()
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	migrateTables()

	dispatcher := notification.NewDispatcher(config.DB, notification.NewMelodyService(m))
	controllers.SetBookingNotifier(dispatcher)

	bookingService := services.NewBookingService(config.DB, dispatcher)
	jobs.SetBookingCompleter(bookingService)

	if err := jobs.InitCronJobs(c); err != nil {
		log.Fatalf("Failed to initialize cron jobs: %v", err)
	}

	config.InitWebSocket(router, m)

	routes.SetupRoutes(router, config.DB, config.RedisClient, config.Cloudinary, m)

	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	log.Println("Server starting on port " + port + "...")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
