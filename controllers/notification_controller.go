package controllers

import (
	"strconv"

	"bookstay/config"
	"bookstay/models"
	"bookstay/response"

	"github.com/gin-gonic/gin"
)

// GetNotifications trả về danh sách thông báo của user hiện tại, mới nhất trước
func GetNotifications(c *gin.Context) {
	currentUserID, _, ok := currentUser(c)
	if !ok {
		return
	}

	pageStr := c.Query("page")
	limitStr := c.Query("limit")
	page := 0
	limit := 10

	if pageStr != "" {
		if parsedPage, err := strconv.Atoi(pageStr); err == nil && parsedPage >= 0 {
			page = parsedPage
		}
	}
	if limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var total int64
	if err := config.DB.Model(&models.Notification{}).Where("user_id = ?", currentUserID).Count(&total).Error; err != nil {
		response.ServerError(c)
		return
	}

	var notifications []models.Notification
	if err := config.DB.Where("user_id = ?", currentUserID).
		Order("created_at DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&notifications).Error; err != nil {
		response.ServerError(c)
		return
	}

	response.SuccessWithPagination(c, notifications, page, limit, int(total))
}
