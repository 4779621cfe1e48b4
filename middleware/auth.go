package middleware

import (
	"strings"

	"bookstay/response"
	"bookstay/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xử lý authentication, chỉ cho qua các role được liệt kê
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, userRole, err := services.GetUserIDFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		allowed := false
		for _, role := range roles {
			if userRole == role {
				allowed = true
				break
			}
		}
		if !allowed {
			response.Forbidden(c)
			c.Abort()
			return
		}

		c.Set("currentUserID", userID)
		c.Set("currentUserRole", userRole)
		c.Next()
	}
}
