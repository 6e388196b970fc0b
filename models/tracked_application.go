package models

import (
	"time"
)

// TrackedApplication menyimpan lamaran yang dilacak oleh user
type TrackedApplication struct {
	ID             uint          `json:"id" gorm:"primaryKey"`
	UserID         uint          `json:"user_id" gorm:"index;not null"`
	User           User          `json:"user" gorm:"foreignKey:UserID"`
	AnnouncementID *uint         `json:"announcement_id" gorm:"index"` // Nullable untuk entri lama tanpa relasi
	Announcement   *Announcement `json:"announcement,omitempty" gorm:"foreignKey:AnnouncementID"`
	Slug           string        `json:"slug" gorm:"type:varchar(255)"`
	Type           string        `json:"type" gorm:"type:varchar(50)"`
	Title          string        `json:"title" gorm:"type:varchar(255)"`
	Organization   string        `json:"organization" gorm:"type:varchar(255)"`
	Deadline       *time.Time    `json:"deadline" gorm:"index"`
	ReminderAt     *time.Time    `json:"reminder_at"` // Gating lama, tidak diubah oleh engine
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
