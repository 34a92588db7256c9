package utils

import (
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	db   *gorm.DB
	once sync.Once
	mu   sync.RWMutex
)

// OpenStore opens the local sqlite store used for the persisted credential
// and the cached directory snapshots.
func OpenStore(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// InitDB initializes the shared store handle
func InitDB(database *gorm.DB) {
	once.Do(func() {
		db = database
	})
}

// GetDB returns the shared store handle
func GetDB() *gorm.DB {
	mu.RLock()
	defer mu.RUnlock()
	return db
}
