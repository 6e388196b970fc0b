package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetUserNotifications -> feed notifikasi reminder milik satu user,
// ?unread=true untuk yang belum dibaca saja
func (nc *NotificationController) GetUserNotifications(c *gin.Context) {
	userIDStr := c.Param("user_id")
	userID, _ := strconv.Atoi(userIDStr)

	query := nc.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if c.Query("unread") == "true" {
		query = query.Where("read_at IS NULL")
	}

	var notifs []models.Notification
	if err := query.Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "User notifications", notifs)
}

// GetUnreadCount
func (nc *NotificationController) GetUnreadCount(c *gin.Context) {
	userIDStr := c.Param("user_id")
	userID, _ := strconv.Atoi(userIDStr)

	var count int64
	err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Unread notification count", gin.H{"count": count})
}

// MarkNotificationRead -> isi read_at sekali saja; baca ulang tidak mengubahnya
func (nc *NotificationController) MarkNotificationRead(c *gin.Context) {
	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if notif.ReadAt == nil {
		now := time.Now()
		notif.ReadAt = &now
		if err := nc.DB.Save(&notif).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
	}

	utils.RespondJSON(c, http.StatusOK, "Notification marked as read", notif)
}
