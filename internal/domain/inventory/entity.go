package inventory

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	OutOfStock StockStatus = "out-of-stock"
	LowStock   StockStatus = "low-stock"
	InStock    StockStatus = "in-stock"
	Overstock  StockStatus = "overstock"
)

// Part is an inventory line item.
type Part struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	PartNumber   string          `gorm:"size:100;uniqueIndex;not null" json:"part_number"`
	Category     string          `gorm:"size:100;index" json:"category"`
	Supplier     string          `gorm:"size:255;index" json:"supplier"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	ReorderPoint int             `gorm:"not null" json:"reorder_point"`
	MaxStock     int             `gorm:"not null" json:"max_stock"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_cost"`
	Location     string          `gorm:"size:100" json:"location"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Part) TableName() string { return "parts" }

// Classify derives the stock status from quantity and thresholds.
func Classify(quantity, reorderPoint, maxStock int) StockStatus {
	switch {
	case quantity <= 0:
		return OutOfStock
	case quantity <= reorderPoint:
		return LowStock
	case quantity > maxStock:
		return Overstock
	default:
		return InStock
	}
}

func (p Part) StockStatus() StockStatus {
	return Classify(p.Quantity, p.ReorderPoint, p.MaxStock)
}

// StockValue is quantity times unit cost.
func (p Part) StockValue() decimal.Decimal {
	return p.UnitCost.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

// View adds derived fields to the JSON shape.
type View struct {
	Part
	StockStatus StockStatus     `json:"stock_status"`
	StockValue  decimal.Decimal `json:"stock_value"`
}

func (p Part) View() View {
	return View{Part: p, StockStatus: p.StockStatus(), StockValue: p.StockValue()}
}

func needsReorder(s StockStatus) bool {
	return s == LowStock || s == OutOfStock
}
