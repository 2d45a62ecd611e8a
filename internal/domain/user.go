package domain

// User Model
type User struct {
	ID            uint   `gorm:"primaryKey"`           // Primary key
	Name          string `gorm:"not null"`             // Display name
	Email         string `gorm:"uniqueIndex;not null"` // Login identifier, unique at the storage layer
	StudentNumber string // Student number (free text)
	PasswordHash  string `gorm:"not null"`          // Bcrypt hash, never returned to callers
	Wallet        Wallet `gorm:"foreignKey:UserID"` // One-to-one relationship with Wallet
}
