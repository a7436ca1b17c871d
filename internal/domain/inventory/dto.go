package inventory

import "github.com/shopspring/decimal"

type CreatePartRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	PartNumber   string          `json:"part_number" validate:"required,max=100"`
	Category     string          `json:"category" validate:"max=100"`
	Supplier     string          `json:"supplier" validate:"max=255"`
	Quantity     int             `json:"quantity" validate:"gte=0"`
	ReorderPoint int             `json:"reorder_point" validate:"gte=0"`
	MaxStock     int             `json:"max_stock" validate:"gte=0,gtefield=ReorderPoint"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	Location     string          `json:"location" validate:"max=100"`
}

type AdjustStockRequest struct {
	Delta  int    `json:"delta" validate:"ne=0"`
	Reason string `json:"reason" validate:"max=255"`
}

type LowStockEvent struct {
	PartID       int64       `json:"part_id"`
	PartNumber   string      `json:"part_number"`
	Name         string      `json:"name"`
	Quantity     int         `json:"quantity"`
	ReorderPoint int         `json:"reorder_point"`
	Status       StockStatus `json:"stock_status"`
}
