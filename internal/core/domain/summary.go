package domain

import "github.com/shopspring/decimal"

// DashboardSummary is the computed view of the active inventory.
type DashboardSummary struct {
	ItemCount  int
	TotalValue decimal.Decimal
	Categories []string
}

// ItemAge is the whole number of days an item has been held.
type ItemAge struct {
	ItemID string
	Name   string
	Days   int
}

// ExportHeader is the fixed column order of inventory exports.
var ExportHeader = []string{"Name", "Category", "Quantity", "Price", "Unit", "AddedAt"}
