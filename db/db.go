// Package db provides PostgreSQL persistence for users and saved maps.
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// User is an account that can save maps.
type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	Email        string `json:"email"`
}

// SavedMap is a stored map document. Data holds the exported JSON
// document verbatim; Palette carries the theme colors chosen for it.
type SavedMap struct {
	gorm.Model
	OwnerID uint           `json:"ownerId" gorm:"index;not null"`
	Name    string         `json:"name" gorm:"not null"`
	Data    string         `json:"data" gorm:"type:jsonb"`
	Palette pq.StringArray `json:"palette" gorm:"type:text[]"`
}

// Open connects to PostgreSQL using DB_* environment variables and
// migrates the schema. The connection is retried for a while so the
// server can start before the database in containerized deployments.
func Open() (*gorm.DB, error) {
	host := envOrDefault("DB_HOST", "localhost")
	port := envOrDefault("DB_PORT", "5432")
	user := envOrDefault("DB_USER", "metromap")
	password := envOrDefault("DB_PASSWORD", "metromap")
	dbname := envOrDefault("DB_NAME", "metromap")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	var (
		conn *gorm.DB
		err  error
	)
	const maxRetries = 15
	for i := 0; i < maxRetries; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		log.Printf("db: waiting for database (%d/%d): %v", i+1, maxRetries, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := conn.AutoMigrate(&User{}, &SavedMap{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return conn, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
