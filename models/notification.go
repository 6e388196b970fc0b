package models

import (
	"time"
)

// Notification adalah notifikasi in-app untuk user.
// Kombinasi (user_id, announcement_id, source) bersifat unik supaya
// reminder yang sama tidak muncul dua kali di feed walaupun cycle
// berjalan berulang.
type Notification struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user_id" gorm:"uniqueIndex:idx_notification_user_ann_source;not null"`
	User           User       `json:"user" gorm:"foreignKey:UserID"`
	AnnouncementID uint       `json:"announcement_id" gorm:"uniqueIndex:idx_notification_user_ann_source;not null"`
	Title          string     `json:"title" gorm:"type:varchar(255)"`
	Type           string     `json:"type" gorm:"type:varchar(50)"`
	Slug           string     `json:"slug" gorm:"type:varchar(255)"`
	Organization   string     `json:"organization" gorm:"type:varchar(255)"`
	Source         string     `json:"source" gorm:"type:varchar(20);uniqueIndex:idx_notification_user_ann_source;not null"`
	CreatedAt      time.Time  `json:"created_at" gorm:"not null"`
	ReadAt         *time.Time `json:"read_at"` // Diisi oleh UI saat user membaca
}
