package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/controllers"
	"github.com/yeremiapane/jobportal-app/middlewares"
	"github.com/yeremiapane/jobportal-app/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, reminderSvc *services.ReminderService, scheduler *services.ReminderScheduler) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi controller
	notificationCtrl := controllers.NewNotificationController(db)
	reminderCtrl := controllers.NewReminderController(reminderSvc, scheduler)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Feed notifikasi in-app (dibaca oleh UI portal)
	r.GET("/users/:user_id/notifications", notificationCtrl.GetUserNotifications)
	r.GET("/users/:user_id/notifications/count", notificationCtrl.GetUnreadCount)
	r.PATCH("/notifications/:notif_id/read", notificationCtrl.MarkNotificationRead)

	// Endpoint operasional reminder engine
	admin := r.Group("/admin")
	{
		admin.POST("/reminders/run", reminderCtrl.RunOnce)
		admin.GET("/reminders/status", reminderCtrl.GetStatus)
	}

	return r
}
