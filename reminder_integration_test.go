package main

import (
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yeremiapane/jobportal-app/models"
	"github.com/yeremiapane/jobportal-app/router"
	"github.com/yeremiapane/jobportal-app/services"
	"github.com/yeremiapane/jobportal-app/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

type recordingDigestSender struct {
	calls []services.DigestPayload
}

func (r *recordingDigestSender) SendDigest(payload services.DigestPayload) (bool, error) {
	r.calls = append(r.calls, payload)
	return true, nil
}

// setupIntegrationDB -> migrasi model di SQLite in-memory + seed data
func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	// Migrasi model
	err = db.AutoMigrate(
		&models.User{},
		&models.Announcement{},
		&models.TrackedApplication{},
		&models.Bookmark{},
		&models.Subscription{},
		&models.Notification{},
		&models.ReminderDispatchLog{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	return db
}

// TestReminderEndToEnd menguji flow utama:
// 1. Seed user + subscription + tracked application + bookmark
// 2. Jalankan satu pass reminder
// 3. Cek dispatch log, feed notifikasi, dan digest email
// 4. Jalankan ulang pass dengan waktu sama -> murni dedupe
func TestReminderEndToEnd(t *testing.T) {
	db := setupIntegrationDB()
	sender := &recordingDigestSender{}

	cfg := services.ReminderConfig{IntervalMinutes: 30, LeadDays: 3, MaxEmailItems: 10}
	reminderSvc := services.NewReminderServiceWith(db, services.NewAnnouncementService(db), sender, cfg)
	scheduler := services.NewReminderScheduler(reminderSvc, cfg.Interval())
	r := router.SetupRouter(db, reminderSvc, scheduler)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	deadlineTracked := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	deadlineBookmark := time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)

	// Seed user dengan subscription verified + aktif
	user := models.User{Name: "Pelamar", Email: "Pelamar@Example.com"}
	db.Create(&user)
	db.Create(&models.Subscription{
		Email:            "pelamar@example.com",
		IsActive:         true,
		Verified:         true,
		UnsubscribeToken: "tok123",
	})

	// Satu tracked application dan satu bookmark untuk announcement berbeda
	tracked := models.Announcement{
		Title:        "Penerimaan CPNS Kemenkeu 2024",
		Slug:         "cpns-kemenkeu-2024",
		Type:         "cpns",
		Organization: "Kementerian Keuangan",
		Deadline:     &deadlineTracked,
	}
	db.Create(&tracked)
	db.Create(&models.TrackedApplication{
		UserID:         user.ID,
		AnnouncementID: &tracked.ID,
		Slug:           tracked.Slug,
		Type:           tracked.Type,
		Title:          tracked.Title,
		Organization:   tracked.Organization,
		Deadline:       tracked.Deadline,
	})

	bookmarked := models.Announcement{
		Title:        "Rekrutmen BUMN Batch 2",
		Slug:         "rekrutmen-bumn-batch-2",
		Type:         "bumn",
		Organization: "FHCI",
		Deadline:     &deadlineBookmark,
	}
	db.Create(&bookmarked)
	db.Create(&models.Bookmark{UserID: user.ID, AnnouncementID: bookmarked.ID})

	// Pass pertama
	stats, err := reminderSvc.ProcessRemindersOnce(now)
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Candidates)
	assert.Equal(t, 2, stats.InAppSent)
	assert.Equal(t, 1, stats.EmailSent)
	assert.Equal(t, 0, stats.EmailSkippedNoSubscription)
	assert.Equal(t, 0, stats.Deduped)

	// Email digest: satu call berisi dua listing, alamat dinormalkan lowercase
	assert.Len(t, sender.calls, 1)
	assert.Equal(t, "pelamar@example.com", sender.calls[0].Email)
	assert.Equal(t, "tok123", sender.calls[0].UnsubscribeToken)
	assert.Len(t, sender.calls[0].Announcements, 2)

	// Ledger: 2 kandidat x 2 channel
	var logCount int64
	db.Model(&models.ReminderDispatchLog{}).Count(&logCount)
	assert.Equal(t, int64(4), logCount)

	// Feed notifikasi lewat API
	req := httptest.NewRequest(http.MethodGet, "/users/1/notifications", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var feedResp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &feedResp))
	feed := feedResp["data"].([]interface{})
	assert.Len(t, feed, 2)

	// Pass kedua dengan `now` sama: semua reservasi konflik
	stats, err = reminderSvc.ProcessRemindersOnce(now)
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.Candidates)
	assert.Equal(t, 0, stats.InAppSent)
	assert.Equal(t, 0, stats.EmailSent)
	assert.Equal(t, 4, stats.Deduped)
	assert.Len(t, sender.calls, 1)

	db.Model(&models.ReminderDispatchLog{}).Count(&logCount)
	assert.Equal(t, int64(4), logCount)
}
