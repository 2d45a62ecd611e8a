package main

import (
	"ecocampus/internal/config" // Configuration
	"ecocampus/internal/db"     // Database setup
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DBPath)     // Create the sqlite schema
}
