package services

import (
	"fmt"
	"time"

	"github.com/yeremiapane/jobportal-app/models"
	"gorm.io/gorm"
)

// ReminderCandidate adalah kandidat reminder yang diturunkan per cycle.
// Hidup di memori saja, dibuang setelah cycle selesai.
type ReminderCandidate struct {
	UserID         uint
	Source         string
	AnnouncementID uint
	Title          string
	Type           string
	Slug           string
	Organization   string
	Deadline       *time.Time
}

// ReminderCollector mengumpulkan kandidat dari dua sumber independen:
// tracked application milik user dan announcement yang di-bookmark.
type ReminderCollector struct {
	db      *gorm.DB
	catalog AnnouncementCatalog
}

// NewReminderCollector membuat instance baru ReminderCollector
func NewReminderCollector(db *gorm.DB, catalog AnnouncementCatalog) *ReminderCollector {
	return &ReminderCollector{db: db, catalog: catalog}
}

// CollectTracked mengambil tracked application dengan deadline di [now, horizon]
// yang belum digate oleh reminder_at. Entri tanpa announcement_id dilewati
// karena identitas reminder butuh id pengumuman.
func (rc *ReminderCollector) CollectTracked(now, horizon time.Time) ([]ReminderCandidate, error) {
	var apps []models.TrackedApplication
	err := rc.db.
		Where("deadline IS NOT NULL AND deadline >= ? AND deadline <= ?", now, horizon).
		Where("announcement_id IS NOT NULL").
		Where("reminder_at IS NULL OR reminder_at <= ?", now).
		Order("deadline ASC").
		Limit(maxTrackedScan).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked applications: %w", err)
	}

	candidates := make([]ReminderCandidate, 0, len(apps))
	for _, app := range apps {
		candidates = append(candidates, ReminderCandidate{
			UserID:         app.UserID,
			Source:         SourceTracked,
			AnnouncementID: *app.AnnouncementID,
			Title:          app.Title,
			Type:           app.Type,
			Slug:           app.Slug,
			Organization:   app.Organization,
			Deadline:       app.Deadline,
		})
	}
	return candidates, nil
}

// CollectBookmarks mengambil announcement dengan deadline di [now, horizon]
// lewat katalog, lalu join dengan bookmark user di memori.
func (rc *ReminderCollector) CollectBookmarks(now, horizon time.Time) ([]ReminderCandidate, error) {
	announcements, err := rc.catalog.GetByDeadlineRange(now, horizon, maxAnnouncementScan)
	if err != nil {
		return nil, fmt.Errorf("failed to query announcements by deadline: %w", err)
	}
	if len(announcements) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(announcements))
	byID := make(map[uint]models.Announcement, len(announcements))
	for _, ann := range announcements {
		ids = append(ids, ann.ID)
		byID[ann.ID] = ann
	}

	var bookmarks []models.Bookmark
	if err := rc.db.Where("announcement_id IN ?", ids).Find(&bookmarks).Error; err != nil {
		return nil, fmt.Errorf("failed to query bookmarks: %w", err)
	}

	candidates := make([]ReminderCandidate, 0, len(bookmarks))
	for _, bm := range bookmarks {
		ann, ok := byID[bm.AnnouncementID]
		if !ok {
			continue
		}
		candidates = append(candidates, ReminderCandidate{
			UserID:         bm.UserID,
			Source:         SourceBookmark,
			AnnouncementID: ann.ID,
			Title:          ann.Title,
			Type:           ann.Type,
			Slug:           ann.Slug,
			Organization:   ann.Organization,
			Deadline:       ann.Deadline,
		})
	}
	return candidates, nil
}

// MergeCandidates menggabungkan daftar kandidat dan membuang duplikat persis
// (user + announcement + source). Kemunculan pertama menang; duplikat dihitung
// untuk observability. Kandidat tracked dan bookmark untuk announcement yang
// sama sengaja TIDAK digabung karena mewakili intent user yang berbeda.
func MergeCandidates(lists ...[]ReminderCandidate) ([]ReminderCandidate, int) {
	seen := make(map[string]bool)
	unique := make([]ReminderCandidate, 0)
	deduped := 0

	for _, list := range lists {
		for _, c := range list {
			key := fmt.Sprintf("%d:%d:%s", c.UserID, c.AnnouncementID, c.Source)
			if seen[key] {
				deduped++
				continue
			}
			seen[key] = true
			unique = append(unique, c)
		}
	}
	return unique, deduped
}
