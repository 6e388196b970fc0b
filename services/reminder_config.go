package services

import (
	"time"

	"github.com/yeremiapane/jobportal-app/utils"
)

// Sumber kandidat reminder
const (
	SourceTracked  = "tracked"
	SourceBookmark = "bookmark"
)

// Channel pengiriman reminder
const (
	ChannelInApp = "in_app"
	ChannelEmail = "email"
)

// Batas scan per cycle supaya biaya query tetap terkendali; sisa baris
// akan terambil di cycle berikutnya.
const (
	maxTrackedScan      = 400
	maxAnnouncementScan = 600
)

// ReminderConfig menyimpan konfigurasi engine reminder deadline
type ReminderConfig struct {
	IntervalMinutes int // cadence cycle scheduler
	LeadDays        int // seberapa jauh ke depan deadline memicu reminder
	MaxEmailItems   int // maksimum listing per email digest
}

// LoadReminderConfig membaca konfigurasi dari environment.
// Nilai tidak valid memakai default, nilai di luar rentang di-clamp.
func LoadReminderConfig() ReminderConfig {
	return ReminderConfig{
		IntervalMinutes: utils.GetEnvIntClamped("REMINDER_INTERVAL_MINUTES", 30, 1, 1440),
		LeadDays:        utils.GetEnvIntClamped("REMINDER_LEAD_DAYS", 3, 1, 14),
		MaxEmailItems:   utils.GetEnvIntClamped("REMINDER_MAX_EMAIL_ITEMS", 10, 1, 30),
	}
}

// Interval mengembalikan cadence scheduler sebagai time.Duration
func (c ReminderConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}
