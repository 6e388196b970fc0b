package utils

import (
	"sync"

	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
	mu   sync.RWMutex
)

// InitDB menyimpan koneksi database agar bisa diambil dari mana saja.
// Pemanggilan kedua dan seterusnya diabaikan.
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

// GetDB mengembalikan koneksi database yang tersimpan
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
