package domain

import "github.com/shopspring/decimal"

// Wallet Model
//
// The wallet shares its primary key with the owning user: one wallet per
// user, created together with it, never deleted independently.
type Wallet struct {
	UserID  uint            `gorm:"primaryKey"`                          // Same id as the owning User
	Balance decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"` // Current balance, never negative
}

// TableName keeps the original singular table name.
func (Wallet) TableName() string { return "wallet" }
