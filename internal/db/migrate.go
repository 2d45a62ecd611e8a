package db

import (
	"ecocampus/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/sqlite" // Embedded sqlite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
)

// Open opens (creating if necessary) the local sqlite database file.
func Open(path string) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// Migrate performs automatic migration for the database schema
func Migrate(path string) {
	db, err := Open(path) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.User{}, &domain.Wallet{}, &domain.Order{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}
