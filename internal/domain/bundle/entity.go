package bundle

import (
	"time"

	"github.com/shopspring/decimal"
)

// Package bundles services under one discounted price.
type Package struct {
	ID              int64            `gorm:"primaryKey" json:"id"`
	Name            string           `gorm:"size:255;not null" json:"name"`
	Description     string           `gorm:"type:text" json:"description"`
	ImageURL        string           `gorm:"size:500" json:"image_url"`
	DiscountType    DiscountType     `gorm:"size:16;not null" json:"-"`
	DiscountValue   decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"-"`
	Subtotal        decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	DiscountAmount  decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"discount_amount"`
	CalculatedTotal decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"calculated_total"`
	CustomTotal     *decimal.Decimal `gorm:"type:decimal(12,2)" json:"custom_total,omitempty"`
	Total           decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"total"`
	Items           []PackageItem    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

func (Package) TableName() string { return "packages" }

// PackageItem links a package to one included service.
type PackageItem struct {
	ID        int64 `gorm:"primaryKey"`
	PackageID int64 `gorm:"not null;uniqueIndex:idx_package_service"`
	ServiceID int64 `gorm:"not null;uniqueIndex:idx_package_service"`
	Position  int   `gorm:"not null"`
}

func (PackageItem) TableName() string { return "package_services" }

func (p Package) Discount() Discount {
	return Discount{Type: p.DiscountType, Value: p.DiscountValue}
}

func (p Package) ServiceIDs() []int64 {
	ids := make([]int64, len(p.Items))
	for i, it := range p.Items {
		ids[i] = it.ServiceID
	}
	return ids
}

// Draft returns the editable content of p.
func (p Package) Draft() Draft {
	return Draft{
		Name:        p.Name,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Services:    NewSelection(p.ServiceIDs()...),
		Discount:    p.Discount(),
		CustomTotal: p.CustomTotal,
	}
}

// apply stores a committed draft and its quote on p.
func (p *Package) apply(d Draft, q Quote) {
	p.Name = d.Name
	p.Description = d.Description
	p.ImageURL = d.ImageURL
	p.DiscountType = d.Discount.Type
	p.DiscountValue = d.Discount.Value
	p.CustomTotal = d.CustomTotal
	p.Subtotal = q.Subtotal
	p.DiscountAmount = q.DiscountAmount
	p.CalculatedTotal = q.CalculatedTotal
	p.Total = q.DisplayTotal

	p.Items = p.Items[:0]
	for i, id := range d.Services.IDs() {
		p.Items = append(p.Items, PackageItem{PackageID: p.ID, ServiceID: id, Position: i})
	}
}

// View is the JSON shape of a package.
type View struct {
	Package
	ServiceIDs []int64  `json:"service_ids"`
	Discount   Discount `json:"discount"`
}

func (p Package) View() View {
	return View{Package: p, ServiceIDs: p.ServiceIDs(), Discount: p.Discount()}
}
