package models

import (
	"time"
)

// ReminderDispatchLog adalah ledger append-only untuk pengiriman reminder.
// DedupeKey unik secara global; index unik inilah satu-satunya mekanisme
// mutual exclusion antar proses/replica, jadi harus ditegakkan di storage
// (lihat database.EnsureReminderIndexes), bukan di aplikasi.
type ReminderDispatchLog struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	DedupeKey      string    `json:"dedupe_key" gorm:"type:varchar(191);uniqueIndex:idx_dispatch_dedupe_key;not null"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	Channel        string    `json:"channel" gorm:"type:varchar(20);not null"` // in_app, email
	Source         string    `json:"source" gorm:"type:varchar(20);not null"`  // tracked, bookmark
	AnnouncementID uint      `json:"announcement_id" gorm:"not null"`
	DeadlineDate   string    `json:"deadline_date" gorm:"type:varchar(10)"` // YYYY-MM-DD, kosong jika tanpa deadline
	SentAt         time.Time `json:"sent_at" gorm:"not null"`
}
