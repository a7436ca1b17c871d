package refund

import (
	"time"

	"github.com/shopspring/decimal"
)

type EvaluateRequest struct {
	DaysBeforeCheckIn *int            `json:"days_before_check_in" validate:"omitempty,gte=0"`
	CancelledAt       *time.Time      `json:"cancelled_at"`
	CheckInAt         *time.Time      `json:"check_in_at"`
	AdvanceAmount     decimal.Decimal `json:"advance_amount"`
}

type CreateRequest struct {
	BookingRef    string          `json:"booking_ref" validate:"required,max=64"`
	CustomerName  string          `json:"customer_name" validate:"required,max=255"`
	CustomerEmail string          `json:"customer_email" validate:"omitempty,email"`
	ServiceCenter string          `json:"service_center" validate:"required,max=255"`
	ServiceName   string          `json:"service_name" validate:"max=255"`
	Vehicle       string          `json:"vehicle" validate:"max=255"`
	CancelledAt   time.Time       `json:"cancelled_at" validate:"required"`
	CheckInAt     time.Time       `json:"check_in_at" validate:"required"`
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
}

type UpdateAdvanceRequest struct {
	AdvanceAmount decimal.Decimal `json:"advance_amount"`
}

type TransitionRequest struct {
	Status Status `json:"status" validate:"required"`
}

type PolicyResponse struct {
	Tiers []Tier   `json:"tiers"`
	Lines []string `json:"lines"`
}
