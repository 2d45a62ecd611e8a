package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Category tags an order as a canteen or bar purchase. It is a closed set:
// values reach storage only through ParseCategory or the constants below.
type Category string

const (
	CategoryCantina Category = "CANTINA" // Canteen purchase
	CategoryBar     Category = "BAR"     // Bar purchase
)

// ParseCategory converts a raw string into a Category, rejecting anything
// outside the closed set.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryCantina, CategoryBar:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown order category %q", s)
}

// Order Model: append-only ledger entry for one completed purchase.
type Order struct {
	ID       uint            `gorm:"primaryKey"`             // Primary key
	UserID   uint            `gorm:"index;not null"`         // Owning user
	ItemName string          `gorm:"not null"`               // Purchased item (free text)
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null"` // Amount debited
	Date     int64           `gorm:"autoCreateTime:milli"`   // Creation instant in milliseconds
	Type     Category        `gorm:"type:varchar(16);not null"`   // CANTINA or BAR
}
