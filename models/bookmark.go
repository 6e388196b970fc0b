package models

import (
	"time"
)

// Bookmark adalah relasi many-to-many antara user dan announcement
type Bookmark struct {
	ID             uint         `json:"id" gorm:"primaryKey"`
	UserID         uint         `json:"user_id" gorm:"uniqueIndex:idx_bookmark_user_announcement;not null"`
	User           User         `json:"user" gorm:"foreignKey:UserID"`
	AnnouncementID uint         `json:"announcement_id" gorm:"uniqueIndex:idx_bookmark_user_announcement;not null"`
	Announcement   Announcement `json:"announcement" gorm:"foreignKey:AnnouncementID"`
	CreatedAt      time.Time    `json:"created_at"`
}
