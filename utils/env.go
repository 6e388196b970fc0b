package utils

import (
	"log"
	"os"
	"strconv"
)

// GetEnvIntClamped membaca variabel lingkungan bertipe integer.
// Nilai yang kosong atau tidak bisa diparse memakai default, nilai di luar
// rentang di-clamp ke batas terdekat (tidak ditolak).
func GetEnvIntClamped(key string, def, min, max int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("Warning: invalid value %q for %s, using default %d", raw, key, def)
		return def
	}

	if val < min {
		log.Printf("Warning: %s=%d below minimum, clamped to %d", key, val, min)
		return min
	}
	if val > max {
		log.Printf("Warning: %s=%d above maximum, clamped to %d", key, val, max)
		return max
	}

	return val
}

// GetEnvDefault membaca variabel lingkungan string dengan nilai default
func GetEnvDefault(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}
