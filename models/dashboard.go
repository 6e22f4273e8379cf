package models

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TodaysRevenue decimal.Decimal `json:"todaysRevenue"`
	TodaysSales   int             `json:"todaysSales"`
	LowStockItems int             `json:"lowStockItems"`
	TotalProducts int             `json:"totalProducts"`
}

type TopSellingProduct struct {
	ProductName string          `json:"productName" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
}

type UrgencyLevel string

const (
	UrgencyHigh   UrgencyLevel = "HIGH"
	UrgencyMedium UrgencyLevel = "MEDIUM"
	UrgencyLow    UrgencyLevel = "LOW"
)

// ReorderAlert flags a product whose stock fell to or below its reorder
// point. Alerting only; the cart core never enforces reorder levels.
type ReorderAlert struct {
	ProductId         int          `json:"productId" validate:"required"`
	ProductName       string       `json:"productName" validate:"required"`
	CurrentStock      int          `json:"currentStock" validate:"gte=0"`
	ReorderPoint      int          `json:"reorderPoint" validate:"gte=0"`
	AverageDailySales float64      `json:"averageDailySales"`
	LeadTimeDays      int          `json:"leadTimeDays"`
	SafetyStock       int          `json:"safetyStock"`
	SuggestedOrderQty int          `json:"suggestedOrderQty"`
	UrgencyLevel      UrgencyLevel `json:"urgencyLevel" validate:"required,oneof=HIGH MEDIUM LOW"`
}

func DecodeDashboardStats(data []byte) (*DashboardStats, error) {
	var stats DashboardStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("decode dashboard stats: %w", err)
	}
	return &stats, nil
}

func DecodeTopSelling(data []byte) ([]TopSellingProduct, error) {
	var top []TopSellingProduct
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, fmt.Errorf("decode top selling: %w", err)
	}
	for i := range top {
		if err := Validate(&top[i]); err != nil {
			return nil, fmt.Errorf("invalid top selling entry at index %d: %w", i, err)
		}
	}
	return top, nil
}

func DecodeReorderAlerts(data []byte) ([]ReorderAlert, error) {
	var alerts []ReorderAlert
	if err := json.Unmarshal(data, &alerts); err != nil {
		return nil, fmt.Errorf("decode reorder alerts: %w", err)
	}
	for i := range alerts {
		if err := Validate(&alerts[i]); err != nil {
			return nil, fmt.Errorf("invalid reorder alert at index %d: %w", i, err)
		}
	}
	return alerts, nil
}
