package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yeremiapane/jobportal-app/models"
)

// DigestItem adalah satu baris listing pada email digest
type DigestItem struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Type         string     `json:"type"`
	Category     string     `json:"category"`
	Organization string     `json:"organization"`
	Deadline     *time.Time `json:"deadline"`
}

// DigestPayload adalah payload yang dikirim ke mail delivery service
type DigestPayload struct {
	Email            string       `json:"email"`
	Announcements    []DigestItem `json:"announcements"`
	UnsubscribeToken string       `json:"unsubscribe_token"`
	Frequency        string       `json:"frequency"`
	WindowLabel      string       `json:"window_label"`
}

// DigestSender adalah kontrak ke mail transport. true berarti digest
// diterima untuk dikirim.
type DigestSender interface {
	SendDigest(payload DigestPayload) (bool, error)
}

// sourceCategoryLabel memetakan source kandidat ke label tampilan email
func sourceCategoryLabel(source string) string {
	if source == SourceTracked {
		return "Tracked application"
	}
	return "Bookmarked listing"
}

// flushEmailQueue mengirim satu digest per user untuk semua item yang
// memenangkan reservasi email di cycle ini. Resolusi alamat dan consent
// dilakukan batch: user aktif dulu, lalu subscription yang aktif dan
// terverifikasi (token unsubscribe wajib ada untuk pengiriman compliant).
func (s *ReminderService) flushEmailQueue(queue map[uint][]ReminderCandidate, stats *ReminderStats) {
	if len(queue) == 0 {
		return
	}

	userIDs := make([]uint, 0, len(queue))
	for id := range queue {
		userIDs = append(userIDs, id)
	}

	var users []models.User
	err := s.db.
		Where("id IN ?", userIDs).
		Where("is_active IS NULL OR is_active = ?", true).
		Find(&users).Error
	if err != nil {
		// Reservasi email sudah terlanjur diklaim; item-item ini hilang.
		// Konsekuensi at-most-once yang disengaja.
		log.Printf("Error resolving users for email digest: %v", err)
		stats.EmailErrors++
		return
	}

	emailByUser := make(map[uint]string, len(users))
	emails := make([]string, 0, len(users))
	for _, u := range users {
		addr := strings.ToLower(u.Email)
		if addr == "" {
			continue
		}
		emailByUser[u.ID] = addr
		emails = append(emails, addr)
	}

	tokenByEmail := make(map[string]string)
	if len(emails) > 0 {
		var subs []models.Subscription
		err = s.db.
			Where("email IN ?", emails).
			Where("is_active = ? AND verified = ?", true, true).
			Find(&subs).Error
		if err != nil {
			log.Printf("Error resolving subscriptions for email digest: %v", err)
			stats.EmailErrors++
			return
		}
		for _, sub := range subs {
			tokenByEmail[strings.ToLower(sub.Email)] = sub.UnsubscribeToken
		}
	}

	windowLabel := fmt.Sprintf("Deadline reminders for the next %d day(s)", s.config.LeadDays)

	for _, userID := range userIDs {
		items := queue[userID]

		email, hasEmail := emailByUser[userID]
		token, hasToken := tokenByEmail[email]
		if !hasEmail || !hasToken {
			// Item yang sudah direservasi tidak dicoba ulang di cycle
			// berikutnya walaupun emailnya batal terkirim.
			log.Printf("Skipping email digest for user %d: no verified active subscription", userID)
			stats.EmailSkippedNoSubscription++
			continue
		}

		if len(items) > s.config.MaxEmailItems {
			items = items[:s.config.MaxEmailItems]
		}

		digest := make([]DigestItem, 0, len(items))
		for _, c := range items {
			digest = append(digest, DigestItem{
				Title:        c.Title,
				Slug:         c.Slug,
				Type:         c.Type,
				Category:     sourceCategoryLabel(c.Source),
				Organization: c.Organization,
				Deadline:     c.Deadline,
			})
		}

		accepted, err := s.mailer.SendDigest(DigestPayload{
			Email:            email,
			Announcements:    digest,
			UnsubscribeToken: token,
			Frequency:        "daily",
			WindowLabel:      windowLabel,
		})
		if err != nil {
			log.Printf("Error sending digest email to %s: %v", email, err)
			stats.EmailErrors++
			continue
		}
		if !accepted {
			log.Printf("Digest email for %s was not accepted by mail transport", email)
			stats.EmailErrors++
			continue
		}

		stats.EmailSent++
	}
}
