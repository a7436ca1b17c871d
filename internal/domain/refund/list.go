package refund

import (
	"time"

	"github.com/shopspring/decimal"

	"autoshop/internal/pkg/listing"
)

// ListSpec drives search, filtering and ordering of the refunds table.
var ListSpec = listing.Spec[Booking]{
	Search: []func(Booking) string{
		func(b Booking) string { return b.BookingRef },
		func(b Booking) string { return b.CustomerName },
		func(b Booking) string { return b.ServiceCenter },
		func(b Booking) string { return b.ServiceName },
		func(b Booking) string { return b.Vehicle },
	},
	Filters: map[string]func(Booking) string{
		"status":         func(b Booking) string { return string(b.Status) },
		"eligibility":    func(b Booking) string { return string(b.Eligibility) },
		"service_center": func(b Booking) string { return b.ServiceCenter },
	},
	Sorts: map[string]listing.Comparator[Booking]{
		"Newest":                listing.Desc(listing.ByTime(func(b Booking) time.Time { return b.CancelledAt })),
		"Oldest":                listing.ByTime(func(b Booking) time.Time { return b.CancelledAt }),
		"Check-in (Soonest)":    listing.ByTime(func(b Booking) time.Time { return b.CheckInAt }),
		"Advance (High to Low)": listing.Desc(listing.ByDecimal(func(b Booking) decimal.Decimal { return b.AdvanceAmount })),
		"Advance (Low to High)": listing.ByDecimal(func(b Booking) decimal.Decimal { return b.AdvanceAmount }),
		"Customer (A-Z)":        listing.ByText(func(b Booking) string { return b.CustomerName }),
	},
}
