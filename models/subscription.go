package models

import (
	"time"
)

// Subscription menyimpan persetujuan email digest beserta token unsubscribe
type Subscription struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	Email            string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	IsActive         bool      `json:"is_active" gorm:"not null;default:true"`
	Verified         bool      `json:"verified" gorm:"not null;default:false"`
	UnsubscribeToken string    `json:"unsubscribe_token" gorm:"type:varchar(255);not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
