package routes

import (
	"context"
	"net/http"

	"bookstay/config"
	"bookstay/controllers"
	middlewares "bookstay/middleware"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"github.com/redis/go-redis/v9"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, cld *cloudinary.Cloudinary, m *melody.Melody) {

	v1 := router.Group("/api/v1")

	v1.POST("/auth/login", controllers.Login)
	v1.DELETE("/auth/logout", controllers.Logout)
	v1.POST("/auth/register", controllers.RegisterUser)
	v1.POST("/auth/google", controllers.AuthGoogle)
	v1.GET("/profile", controllers.GetProfile)

	v1.GET("/hotelUser", controllers.GetAllHotelsForUser)
	v1.GET("/hotel/:id", controllers.GetHotelDetail)
	v1.POST("/hotel", middlewares.AuthMiddleware(1, 2), controllers.CreateHotel)
	v1.PUT("/hotelUpdate", middlewares.AuthMiddleware(1, 2), controllers.UpdateHotel)

	v1.GET("/hotelRoomTypes/:id", controllers.GetRoomTypesByHotel)
	v1.GET("/roomType/:id", controllers.GetRoomTypeDetail)
	v1.POST("/roomType", middlewares.AuthMiddleware(1, 2, 3), controllers.CreateRoomType)
	v1.PUT("/roomTypeUpdate", middlewares.AuthMiddleware(1, 2, 3), controllers.UpdateRoomType)
	v1.DELETE("/roomType/:id", middlewares.AuthMiddleware(1, 2), controllers.DeleteRoomType)
	v1.GET("/checkRoomType", controllers.CheckRoomAvailability)

	v1.GET("/booking", middlewares.AuthMiddleware(0, 1, 2, 3), controllers.GetBookings)
	v1.POST("/booking", controllers.CreateBooking)
	v1.GET("/booking/:id", controllers.GetBookingDetail)
	v1.GET("/bookingHistory", middlewares.AuthMiddleware(0, 1, 2, 3), controllers.GetBookingsByUserId)
	v1.PUT("/bookingConfirm", middlewares.AuthMiddleware(1, 2, 3), controllers.ConfirmBooking)
	v1.PUT("/bookingCancel", middlewares.AuthMiddleware(0, 1, 2, 3), controllers.CancelBooking)
	v1.PUT("/bookingComplete", middlewares.AuthMiddleware(1, 2, 3), controllers.CompleteBooking)
	v1.GET("/booking/:id/refundPreview", middlewares.AuthMiddleware(0), controllers.GetRefundPreview)

	v1.GET("/notifications", middlewares.AuthMiddleware(0, 1, 2, 3), controllers.GetNotifications)

	v1.POST("/img/multi-upload", func(c *gin.Context) {
		form, er := c.MultipartForm()
		if er != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		var urls []string
		for _, file := range files {
			src, err := file.Open()
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
				return
			}
			defer src.Close()

			ctx := context.Background()
			resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "uploads"})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
				return
			}
			urls = append(urls, resp.SecureURL)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload thành công",
			"urls":    urls,
		})
	})

	v1.POST("/img/upload", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Không có file"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lỗi khi mở file"})
			return
		}
		defer src.Close()

		ctx := context.Background()
		resp, err := config.Cloudinary.Upload.Upload(ctx, src, uploader.UploadParams{Folder: "avatars"})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload thất bại"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Upload avatar thành công",
			"url":     resp.SecureURL,
		})
	})

	//ws
	v1.GET("/test-broadcast", func(c *gin.Context) {
		message := []byte("Thông báo từ backend: Tin nhắn mới!")
		m.Broadcast(message)
		c.String(200, "Broadcast message sent!")
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
