package inventory

import (
	"github.com/shopspring/decimal"

	"autoshop/internal/pkg/listing"
)

var ListSpec = listing.Spec[Part]{
	Search: []func(Part) string{
		func(p Part) string { return p.Name },
		func(p Part) string { return p.PartNumber },
		func(p Part) string { return p.Supplier },
	},
	Filters: map[string]func(Part) string{
		"category":     func(p Part) string { return p.Category },
		"supplier":     func(p Part) string { return p.Supplier },
		"stock_status": func(p Part) string { return string(p.StockStatus()) },
	},
	Sorts: map[string]listing.Comparator[Part]{
		"Name (A-Z)":              listing.ByText(func(p Part) string { return p.Name }),
		"Quantity (Low to High)":  listing.ByNumber(func(p Part) int { return p.Quantity }),
		"Quantity (High to Low)":  listing.Desc(listing.ByNumber(func(p Part) int { return p.Quantity })),
		"Unit Cost (Low to High)": listing.ByDecimal(func(p Part) decimal.Decimal { return p.UnitCost }),
		"Unit Cost (High to Low)": listing.Desc(listing.ByDecimal(func(p Part) decimal.Decimal { return p.UnitCost })),
	},
}
