package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash    PaymentMethod = "Cash"
	PaymentMethodCard    PaymentMethod = "Card"
	PaymentMethodDigital PaymentMethod = "Digital"
)

// Sale is a list row as returned by GET /Sale.
type Sale struct {
	SaleId        int             `json:"saleId" validate:"required"`
	InvoiceNo     string          `json:"invoiceNo" validate:"required"`
	SaleDate      time.Time       `json:"saleDate"`
	CustomerName  *string         `json:"customerName"`
	CustomerPhone *string         `json:"customerPhone"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	Status        string          `json:"status"`
	ItemCount     int             `json:"itemCount"`
}

type SaleItemDetail struct {
	ProductName  string          `json:"productName"`
	Quantity     int             `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	TotalPrice   decimal.Decimal `json:"totalPrice"`
}

type UserInfo struct {
	FullName string `json:"fullName"`
}

// DetailedSale carries the server-computed totals. The client's own totals
// are for display only; these are the authoritative figures.
type DetailedSale struct {
	SaleId          int              `json:"saleId" validate:"required"`
	InvoiceNo       string           `json:"invoiceNo" validate:"required"`
	SaleDate        time.Time        `json:"saleDate"`
	CustomerName    *string          `json:"customerName"`
	CustomerPhone   *string          `json:"customerPhone"`
	CustomerEmail   *string          `json:"customerEmail"`
	CustomerAddress *string          `json:"customerAddress"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	SubTotal        decimal.Decimal  `json:"subTotal"`
	Discount        decimal.Decimal  `json:"discount"`
	Tax             decimal.Decimal  `json:"tax"`
	PaymentMethod   string           `json:"paymentMethod"`
	User            UserInfo         `json:"user"`
	SaleItems       []SaleItemDetail `json:"saleItems"`
}

// NewSaleItem references a product purely by id. Unit prices are never sent;
// the server reprices from its own catalog state at commit time.
type NewSaleItem struct {
	ProductId int `json:"productId" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"required,gt=0"`
}

// NewSale is the submission payload for POST /Sale.
type NewSale struct {
	CustomerName  string          `json:"customerName,omitempty"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Items         []NewSaleItem   `json:"items" validate:"required,min=1,dive"`
	Discount      decimal.Decimal `json:"discount"`
	Tax           decimal.Decimal `json:"tax"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" validate:"required,oneof=Cash Card Digital"`
}

// SaleConfirmation is the created-sale response from a successful submission.
type SaleConfirmation struct {
	SaleId      int             `json:"saleId"`
	InvoiceNo   string          `json:"invoiceNo" validate:"required"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// DecodeSales parses, validates and orders a sales listing newest first.
func DecodeSales(data []byte) ([]Sale, error) {
	var sales []Sale
	if err := json.Unmarshal(data, &sales); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	for i := range sales {
		if err := Validate(&sales[i]); err != nil {
			return nil, fmt.Errorf("invalid sale at index %d: %w", i, err)
		}
	}
	sort.Slice(sales, func(i, j int) bool {
		return sales[i].SaleDate.After(sales[j].SaleDate)
	})
	return sales, nil
}

func DecodeDetailedSale(data []byte) (*DetailedSale, error) {
	var sale DetailedSale
	if err := json.Unmarshal(data, &sale); err != nil {
		return nil, fmt.Errorf("decode sale detail: %w", err)
	}
	if err := Validate(&sale); err != nil {
		return nil, fmt.Errorf("invalid sale detail: %w", err)
	}
	return &sale, nil
}
