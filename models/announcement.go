package models

import (
	"time"
)

// Announcement merepresentasikan lowongan/pengumuman instansi pemerintah
type Announcement struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Title        string     `json:"title" gorm:"type:varchar(255);not null"`
	Slug         string     `json:"slug" gorm:"type:varchar(255);uniqueIndex;not null"`
	Type         string     `json:"type" gorm:"type:varchar(50);not null"` // cpns, pppk, bumn, dll.
	Organization string     `json:"organization" gorm:"type:varchar(255)"`
	Deadline     *time.Time `json:"deadline" gorm:"index"` // Batas akhir pendaftaran (nullable)
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
