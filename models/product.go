package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the canonical catalog snapshot record. The upstream API owns
// the authoritative values; a product is immutable once fetched and is only
// ever replaced wholesale by a newer fetch.
type Product struct {
	ID            int             `json:"id" validate:"required"`
	ProductName   string          `json:"productName" validate:"required"`
	Description   string          `json:"description"`
	Sku           string          `json:"sku"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit"`
	StockQuantity int             `json:"stockQuantity" validate:"gte=0"`
	ReorderLevel  int             `json:"reorderLevel" validate:"gte=0"`
	CategoryId    int             `json:"categoryId"`
	SupplierId    int             `json:"supplierId"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

type Category struct {
	ID          int       `json:"id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DecodeProducts parses and validates an upstream product listing.
// Non-conforming payloads fail fast at the boundary instead of leaking
// half-shaped records into the cart core.
func DecodeProducts(data []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	for i := range products {
		if err := Validate(&products[i]); err != nil {
			return nil, fmt.Errorf("invalid product at index %d: %w", i, err)
		}
	}
	return products, nil
}

func DecodeCategories(data []byte) ([]Category, error) {
	var categories []Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	for i := range categories {
		if err := Validate(&categories[i]); err != nil {
			return nil, fmt.Errorf("invalid category at index %d: %w", i, err)
		}
	}
	return categories, nil
}
