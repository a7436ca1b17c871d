package bundle

import (
	"time"

	"github.com/shopspring/decimal"

	"autoshop/internal/pkg/listing"
)

var ListSpec = listing.Spec[Package]{
	Search: []func(Package) string{
		func(p Package) string { return p.Name },
		func(p Package) string { return p.Description },
	},
	Filters: map[string]func(Package) string{
		"discount_type": func(p Package) string { return string(p.DiscountType) },
	},
	Sorts: map[string]listing.Comparator[Package]{
		"Name (A-Z)":          listing.ByText(func(p Package) string { return p.Name }),
		"Price (Low to High)": listing.ByDecimal(func(p Package) decimal.Decimal { return p.Total }),
		"Price (High to Low)": listing.Desc(listing.ByDecimal(func(p Package) decimal.Decimal { return p.Total })),
		"Savings (Highest)":   listing.Desc(listing.ByDecimal(func(p Package) decimal.Decimal { return p.DiscountAmount })),
		"Newest":              listing.Desc(listing.ByTime(func(p Package) time.Time { return p.CreatedAt })),
	},
}
