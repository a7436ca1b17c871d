package document

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateRequest struct {
	Kind         Kind            `json:"kind" validate:"required,oneof=estimate invoice"`
	CustomerName string          `json:"customer_name" validate:"required,max=255"`
	Vehicle      string          `json:"vehicle" validate:"max=255"`
	Total        decimal.Decimal `json:"total"`
	IssuedAt     *time.Time      `json:"issued_at"`
	DueAt        *time.Time      `json:"due_at"`
	Notes        string          `json:"notes"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required"`
}
