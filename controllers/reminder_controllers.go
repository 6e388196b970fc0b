package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

type ReminderController struct {
	Service   *services.ReminderService
	Scheduler *services.ReminderScheduler
}

func NewReminderController(service *services.ReminderService, scheduler *services.ReminderScheduler) *ReminderController {
	return &ReminderController{Service: service, Scheduler: scheduler}
}

// RunOnce -> jalankan satu pass reminder secara manual (operasional/debug)
func (rc *ReminderController) RunOnce(c *gin.Context) {
	stats, err := rc.Service.ProcessRemindersOnce(time.Now())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reminder pass completed", stats)
}

// GetStatus -> status scheduler + ringkasan cycle terakhir
func (rc *ReminderController) GetStatus(c *gin.Context) {
	cfg := rc.Service.Config()
	lastRun, lastStats := rc.Scheduler.LastResult()

	utils.RespondJSON(c, http.StatusOK, "Reminder scheduler status", gin.H{
		"started":          rc.Scheduler.IsStarted(),
		"running":          rc.Scheduler.IsRunning(),
		"interval_minutes": cfg.IntervalMinutes,
		"lead_days":        cfg.LeadDays,
		"max_email_items":  cfg.MaxEmailItems,
		"last_run":         lastRun,
		"last_stats":       lastStats,
	})
}
