package services

import (
	"time"

	"github.com/yeremiapane/jobportal-app/models"
	"gorm.io/gorm"
)

// AnnouncementCatalog adalah kontrak read-only ke katalog pengumuman.
// Engine reminder hanya butuh query rentang deadline.
type AnnouncementCatalog interface {
	GetByDeadlineRange(start, end time.Time, limit int) ([]models.Announcement, error)
}

// AnnouncementService adalah implementasi katalog di atas database portal
type AnnouncementService struct {
	db *gorm.DB
}

// NewAnnouncementService membuat instance baru AnnouncementService
func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{db: db}
}

// GetByDeadlineRange mengambil pengumuman dengan deadline di rentang [start, end]
func (s *AnnouncementService) GetByDeadlineRange(start, end time.Time, limit int) ([]models.Announcement, error) {
	var announcements []models.Announcement
	err := s.db.
		Where("deadline IS NOT NULL AND deadline >= ? AND deadline <= ?", start, end).
		Order("deadline ASC").
		Limit(limit).
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}
	return announcements, nil
}
