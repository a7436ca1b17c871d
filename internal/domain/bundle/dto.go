package bundle

import "github.com/shopspring/decimal"

// SaveRequest is the package form payload for create and update.
type SaveRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ImageURL    string           `json:"image_url"`
	ServiceIDs  []int64          `json:"service_ids"`
	Discount    *Discount        `json:"discount"`
	CustomTotal *decimal.Decimal `json:"custom_total"`
}

// apply replaces the draft content with the request.
func (r SaveRequest) apply(d *Draft) {
	d.Name = r.Name
	d.Description = r.Description
	d.ImageURL = r.ImageURL
	d.Services = NewSelection(r.ServiceIDs...)
	d.Discount = normalizeDiscount(r.Discount)
	d.CustomTotal = r.CustomTotal
}

type QuoteRequest struct {
	ServiceIDs  []int64          `json:"service_ids"`
	Discount    *Discount        `json:"discount"`
	CustomTotal *decimal.Decimal `json:"custom_total"`
}

// normalizeDiscount treats a missing discount as a zero fixed reduction.
func normalizeDiscount(d *Discount) Discount {
	if d == nil || (d.Type == "" && d.Value.IsZero()) {
		return Discount{Type: DiscountFixed, Value: decimal.Zero}
	}
	return *d
}
