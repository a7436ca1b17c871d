package document

import (
	"time"

	"github.com/shopspring/decimal"

	"autoshop/internal/pkg/listing"
)

var ListSpec = listing.Spec[Document]{
	Search: []func(Document) string{
		func(d Document) string { return d.Number },
		func(d Document) string { return d.CustomerName },
		func(d Document) string { return d.Vehicle },
	},
	Filters: map[string]func(Document) string{
		"kind":   func(d Document) string { return string(d.Kind) },
		"status": func(d Document) string { return string(d.Status) },
	},
	Sorts: map[string]listing.Comparator[Document]{
		"Newest":               listing.Desc(listing.ByTime(func(d Document) time.Time { return d.IssuedAt })),
		"Oldest":               listing.ByTime(func(d Document) time.Time { return d.IssuedAt }),
		"Amount (High to Low)": listing.Desc(listing.ByDecimal(func(d Document) decimal.Decimal { return d.Total })),
		"Amount (Low to High)": listing.ByDecimal(func(d Document) decimal.Decimal { return d.Total }),
		"Customer (A-Z)":       listing.ByText(func(d Document) string { return d.CustomerName }),
	},
}
