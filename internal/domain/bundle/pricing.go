package bundle

import (
	"github.com/shopspring/decimal"

	"autoshop/internal/pkg/money"
)

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type Discount struct {
	Type  DiscountType    `json:"type"`
	Value decimal.Decimal `json:"value"`
}

type PricedService struct {
	ID    int64           `json:"id"`
	Price decimal.Decimal `json:"price"`
}

type Quote struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	CalculatedTotal decimal.Decimal `json:"calculated_total"`
	DisplayTotal    decimal.Decimal `json:"display_total"`
}

// Amount is the reduction d applies to subtotal. A fixed discount never
// exceeds the subtotal and negative values count as no discount.
func (d Discount) Amount(subtotal decimal.Decimal) decimal.Decimal {
	if d.Value.IsNegative() {
		return decimal.Zero
	}
	if d.Type == DiscountPercent {
		return money.Round(money.Percent(subtotal, d.Value))
	}
	return money.Min(d.Value, subtotal)
}

// Calculate prices a package. The calculated total is clamped at zero and
// customTotal, when set, replaces it for display.
func Calculate(services []PricedService, d Discount, customTotal *decimal.Decimal) Quote {
	subtotal := decimal.Zero
	for _, s := range services {
		subtotal = subtotal.Add(s.Price)
	}

	amount := d.Amount(subtotal)
	calculated := money.Max(decimal.Zero, subtotal.Sub(amount))

	display := calculated
	if customTotal != nil {
		display = *customTotal
	}

	return Quote{
		Subtotal:        subtotal,
		DiscountAmount:  amount,
		CalculatedTotal: calculated,
		DisplayTotal:    display,
	}
}
