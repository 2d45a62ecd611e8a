package domain

import "github.com/shopspring/decimal"

// Remote catalogue shapes, decoded as-is from the published JSON documents.

// Dish is one slot of the daily canteen menu.
type Dish struct {
	Name        string          `json:"name"`
	Ingredients string          `json:"ingredients"`
	Price       decimal.Decimal `json:"price"`
}

// Menu is the daily canteen menu: four fixed dish slots.
type Menu struct {
	Soup Dish `json:"soup"`
	Meat Dish `json:"meat"`
	Fish Dish `json:"fish"`
	Diet Dish `json:"diet"`
}

// Product is one entry of the bar catalogue.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Image    *string         `json:"image,omitempty"` // Optional image reference
}
