package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	"autoshop/internal/pkg/listing"
)

var ListSpec = listing.Spec[RepairService]{
	Search: []func(RepairService) string{
		func(s RepairService) string { return s.Name },
		func(s RepairService) string { return s.ShortDescription },
		func(s RepairService) string { return s.Category },
	},
	Filters: map[string]func(RepairService) string{
		"category": func(s RepairService) string { return s.Category },
		"status":   RepairService.StatusLabel,
	},
	Sorts: map[string]listing.Comparator[RepairService]{
		"Name (A-Z)":          listing.ByText(func(s RepairService) string { return s.Name }),
		"Name (Z-A)":          listing.Desc(listing.ByText(func(s RepairService) string { return s.Name })),
		"Price (Low to High)": listing.ByDecimal(func(s RepairService) decimal.Decimal { return s.Price }),
		"Price (High to Low)": listing.Desc(listing.ByDecimal(func(s RepairService) decimal.Decimal { return s.Price })),
		"Duration (Shortest)": listing.ByNumber(func(s RepairService) int {
			if s.DurationMinutes == nil {
				return 0
			}
			return *s.DurationMinutes
		}),
		"Newest": listing.Desc(listing.ByTime(func(s RepairService) time.Time { return s.CreatedAt })),
	},
}
