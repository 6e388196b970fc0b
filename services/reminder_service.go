package services

import (
	"fmt"
	"log"
	"time"

	"github.com/yeremiapane/jobportal-app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReminderStats adalah ringkasan satu cycle reminder
type ReminderStats struct {
	Candidates                 int `json:"candidates"`
	InAppSent                  int `json:"in_app_sent"`
	EmailSent                  int `json:"email_sent"`
	EmailSkippedNoSubscription int `json:"email_skipped_no_subscription"`
	Deduped                    int `json:"deduped"`
	ReserveErrors              int `json:"reserve_errors"`
	InAppErrors                int `json:"in_app_errors"`
	EmailErrors                int `json:"email_errors"`
}

// ReminderService menangani satu pass penuh reminder deadline:
// kumpulkan kandidat, reservasi per channel di dispatch log, lalu
// kirim notifikasi in-app dan email digest.
type ReminderService struct {
	db        *gorm.DB
	collector *ReminderCollector
	mailer    DigestSender
	config    ReminderConfig
}

// NewReminderService membuat ReminderService dengan katalog database
// dan mailer default.
func NewReminderService(db *gorm.DB, config ReminderConfig) *ReminderService {
	return NewReminderServiceWith(db, NewAnnouncementService(db), GetMailerService(), config)
}

// NewReminderServiceWith membuat ReminderService dengan kolaborator eksplisit
func NewReminderServiceWith(db *gorm.DB, catalog AnnouncementCatalog, mailer DigestSender, config ReminderConfig) *ReminderService {
	return &ReminderService{
		db:        db,
		collector: NewReminderCollector(db, catalog),
		mailer:    mailer,
		config:    config,
	}
}

// Config mengembalikan konfigurasi engine yang sedang dipakai
func (s *ReminderService) Config() ReminderConfig {
	return s.config
}

// deadlineDatePart menormalkan deadline ke tanggal kalender UTC supaya
// dedupe berlaku per hari, bukan per instant.
func deadlineDatePart(deadline *time.Time) string {
	if deadline == nil {
		return "none"
	}
	return deadline.UTC().Format("2006-01-02")
}

// buildDedupeKey membentuk identitas logis reminder sebagai string unik.
// Channel dan source adalah konstanta, user/announcement id numerik, jadi
// delimiter ':' tidak mungkin muncul di dalam komponen.
func buildDedupeKey(channel, source string, userID, announcementID uint, deadline *time.Time) string {
	return fmt.Sprintf("%s:%s:%d:%d:%s", channel, source, userID, announcementID, deadlineDatePart(deadline))
}

// reserve mencoba mengklaim (channel, kandidat, hari-deadline) di dispatch log.
// Insert dengan ON CONFLICT DO NOTHING: tepat satu insert yang menang walaupun
// ada cycle lain (proses yang sama ataupun replica lain) berjalan bersamaan.
// RowsAffected 0 berarti reminder ini sudah pernah diklaim.
func (s *ReminderService) reserve(c ReminderCandidate, channel string, now time.Time) (bool, error) {
	entry := models.ReminderDispatchLog{
		DedupeKey:      buildDedupeKey(channel, c.Source, c.UserID, c.AnnouncementID, c.Deadline),
		UserID:         c.UserID,
		Channel:        channel,
		Source:         c.Source,
		AnnouncementID: c.AnnouncementID,
		SentAt:         now,
	}
	if c.Deadline != nil {
		entry.DeadlineDate = deadlineDatePart(c.Deadline)
	}

	result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// upsertInApp menyimpan notifikasi in-app kalau belum ada (insert on conflict
// do nothing pada triple user+announcement+source). created_at hanya terisi
// pada insert pertama.
func (s *ReminderService) upsertInApp(c ReminderCandidate, now time.Time) error {
	notif := models.Notification{
		UserID:         c.UserID,
		AnnouncementID: c.AnnouncementID,
		Title:          c.Title,
		Type:           c.Type,
		Slug:           c.Slug,
		Organization:   c.Organization,
		Source:         c.Source,
		CreatedAt:      now,
	}
	result := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "announcement_id"},
			{Name: "source"},
		},
		DoNothing: true,
	}).Create(&notif)
	return result.Error
}

// ProcessRemindersOnce menjalankan tepat satu pass reminder dan mengembalikan
// counter-nya. Error level cycle (query sumber gagal) dikembalikan ke caller;
// kegagalan per item hanya dihitung dan di-log supaya tidak menggugurkan cycle.
func (s *ReminderService) ProcessRemindersOnce(now time.Time) (ReminderStats, error) {
	var stats ReminderStats
	horizon := now.Add(time.Duration(s.config.LeadDays) * 24 * time.Hour)

	tracked, err := s.collector.CollectTracked(now, horizon)
	if err != nil {
		return stats, fmt.Errorf("failed to collect tracked candidates: %w", err)
	}

	bookmarked, err := s.collector.CollectBookmarks(now, horizon)
	if err != nil {
		return stats, fmt.Errorf("failed to collect bookmark candidates: %w", err)
	}

	candidates, deduped := MergeCandidates(tracked, bookmarked)
	stats.Candidates = len(candidates)
	stats.Deduped += deduped

	// Antrian email per user; hanya diisi oleh kandidat yang memenangkan
	// reservasi channel email.
	emailQueue := make(map[uint][]ReminderCandidate)

	for _, c := range candidates {
		// Reservasi in_app selalu dicoba sebelum email
		won, err := s.reserve(c, ChannelInApp, now)
		if err != nil {
			// Store bermasalah: tidak ada entri yang tersimpan, item tetap
			// eligible di cycle berikutnya.
			log.Printf("Error reserving in_app reminder for user %d announcement %d: %v",
				c.UserID, c.AnnouncementID, err)
			stats.ReserveErrors++
		} else if !won {
			stats.Deduped++
		} else if err := s.upsertInApp(c, now); err != nil {
			// Reservasi sudah tercatat, jadi item ini tidak diulang walaupun
			// notifikasinya gagal tersimpan.
			log.Printf("Error storing in-app notification for user %d announcement %d: %v",
				c.UserID, c.AnnouncementID, err)
			stats.InAppErrors++
		} else {
			stats.InAppSent++
		}

		won, err = s.reserve(c, ChannelEmail, now)
		if err != nil {
			log.Printf("Error reserving email reminder for user %d announcement %d: %v",
				c.UserID, c.AnnouncementID, err)
			stats.ReserveErrors++
		} else if !won {
			stats.Deduped++
		} else {
			emailQueue[c.UserID] = append(emailQueue[c.UserID], c)
		}
	}

	s.flushEmailQueue(emailQueue, &stats)

	return stats, nil
}
