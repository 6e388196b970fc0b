package models

import "time"

type User struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"type:varchar(255);not null"`
	Email     string `json:"email" gorm:"type:varchar(255);unique;not null"`
	IsActive  *bool  `json:"is_active"` // NULL dianggap aktif (data lama)
	CreatedAt time.Time
	UpdatedAt time.Time
}
