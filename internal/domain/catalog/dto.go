package catalog

import "github.com/shopspring/decimal"

type CreateServiceRequest struct {
	Name             string           `json:"name" validate:"required,max=255"`
	ShortDescription string           `json:"short_description" validate:"max=500"`
	Description      string           `json:"description"`
	Category         string           `json:"category" validate:"required,max=100"`
	Price            decimal.Decimal  `json:"price"`
	Unit             string           `json:"unit" validate:"max=50"`
	DurationMinutes  *int             `json:"duration_minutes" validate:"omitempty,gte=0"`
	Discount         *decimal.Decimal `json:"discount"`
	IsActive         *bool            `json:"is_active"`
}

// UpdateServiceRequest carries only the fields to change.
type UpdateServiceRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=255"`
	ShortDescription *string          `json:"short_description" validate:"omitempty,max=500"`
	Description      *string          `json:"description"`
	Category         *string          `json:"category" validate:"omitempty,min=1,max=100"`
	Price            *decimal.Decimal `json:"price"`
	Unit             *string          `json:"unit" validate:"omitempty,max=50"`
	DurationMinutes  *int             `json:"duration_minutes" validate:"omitempty,gte=0"`
	Discount         *decimal.Decimal `json:"discount"`
}
