package services

import (
	"log"
	"sync"
	"time"
)

// ReminderScheduler menjalankan cycle reminder pada interval tetap.
// Latch `running` mencegah dua cycle tumpang tindih di dalam satu proses;
// antar proses/replica, mutual exclusion sepenuhnya mengandalkan unique
// index pada reminder_dispatch_logs.
type ReminderScheduler struct {
	service  *ReminderService
	interval time.Duration

	mutex     sync.Mutex
	running   bool // ada cycle yang sedang berjalan
	started   bool // scheduler sudah dijadwalkan
	stopChan  chan struct{}
	lastRun   time.Time
	lastStats ReminderStats
}

// NewReminderScheduler membuat instance baru ReminderScheduler
func NewReminderScheduler(service *ReminderService, interval time.Duration) *ReminderScheduler {
	return &ReminderScheduler{
		service:  service,
		interval: interval,
	}
}

// Start memulai scheduler (idempotent): satu cycle langsung dijalankan,
// lalu cycle berikutnya mengikuti ticker.
func (rs *ReminderScheduler) Start() {
	rs.mutex.Lock()
	if rs.started {
		rs.mutex.Unlock()
		return
	}
	rs.started = true
	rs.stopChan = make(chan struct{})
	stopChan := rs.stopChan
	rs.mutex.Unlock()

	go func() {
		rs.RunCycle()

		ticker := time.NewTicker(rs.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rs.RunCycle()
			case <-stopChan:
				return
			}
		}
	}()

	log.Printf("Reminder scheduler started (interval %s)", rs.interval)
}

// Stop menghentikan scheduler (idempotent)
func (rs *ReminderScheduler) Stop() {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	if !rs.started {
		return
	}
	rs.started = false
	close(rs.stopChan)
	log.Println("Reminder scheduler stopped")
}

// IsStarted melaporkan apakah scheduler sedang terjadwal
func (rs *ReminderScheduler) IsStarted() bool {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()
	return rs.started
}

// IsRunning melaporkan apakah ada cycle yang sedang berjalan
func (rs *ReminderScheduler) IsRunning() bool {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()
	return rs.running
}

// LastResult mengembalikan waktu dan ringkasan cycle terakhir
func (rs *ReminderScheduler) LastResult() (time.Time, ReminderStats) {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()
	return rs.lastRun, rs.lastStats
}

// RunCycle menjalankan satu cycle penuh. Tick yang datang saat cycle lain
// masih berjalan langsung di-skip. Error dan panic ditangkap di sini supaya
// tidak pernah menjatuhkan proses ataupun mengganggu tick berikutnya.
func (rs *ReminderScheduler) RunCycle() {
	rs.mutex.Lock()
	if rs.running {
		rs.mutex.Unlock()
		log.Println("Reminder cycle still in progress, skipping tick")
		return
	}
	rs.running = true
	rs.mutex.Unlock()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic in reminder cycle: %v", r)
		}
		rs.mutex.Lock()
		rs.running = false
		rs.mutex.Unlock()
	}()

	stats, err := rs.service.ProcessRemindersOnce(time.Now())

	rs.mutex.Lock()
	rs.lastRun = time.Now()
	rs.lastStats = stats
	rs.mutex.Unlock()

	if err != nil {
		log.Printf("Error processing reminders: %v", err)
		return
	}

	log.Printf("Reminder cycle done: candidates=%d in_app_sent=%d email_sent=%d deduped=%d",
		stats.Candidates, stats.InAppSent, stats.EmailSent, stats.Deduped)
}
