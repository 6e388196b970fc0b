package database

import (
	"fmt"

	"github.com/yeremiapane/jobportal-app/models"
	"gorm.io/gorm"
)

// EnsureReminderIndexes memverifikasi bahwa index unik penopang jaminan
// at-most-once benar-benar ada di storage. Reservasi dispatch log hanya aman
// kalau keunikan dedupe_key ditegakkan oleh database, bukan oleh aplikasi,
// jadi proses harus gagal start kalau index-nya hilang.
func EnsureReminderIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasIndex(&models.ReminderDispatchLog{}, "idx_dispatch_dedupe_key") {
		return fmt.Errorf("unique index idx_dispatch_dedupe_key is missing on reminder_dispatch_logs")
	}

	if !migrator.HasIndex(&models.Notification{}, "idx_notification_user_ann_source") {
		return fmt.Errorf("unique index idx_notification_user_ann_source is missing on notifications")
	}

	return nil
}
