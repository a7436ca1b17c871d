package refund

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"autoshop/internal/pkg/money"
)

// Eligibility is the refund tier a cancellation falls into.
type Eligibility string

const (
	EligibilityFull Eligibility = "100%"
	EligibilityHalf Eligibility = "50%"
	EligibilityNone Eligibility = "0%"
)

// Tier is one row of the refund policy. A cancellation made at least MinDays
// before check-in refunds CustomerPercent of the advance and retains
// PlatformPercent as commission; the rest goes to the service center.
type Tier struct {
	Eligibility     Eligibility     `json:"eligibility"`
	MinDays         int             `json:"min_days"`
	CustomerPercent decimal.Decimal `json:"customer_percent"`
	PlatformPercent decimal.Decimal `json:"platform_percent"`
}

// ServiceCenterPercent is the share left after the customer refund and commission.
func (t Tier) ServiceCenterPercent() decimal.Decimal {
	return decimal.NewFromInt(100).Sub(t.CustomerPercent).Sub(t.PlatformPercent)
}

// Policy holds tiers ordered by MinDays, highest first. The last tier must
// have MinDays 0.
type Policy struct {
	Tiers []Tier `json:"tiers"`
}

// DefaultPolicy is the shop's refund schedule.
var DefaultPolicy = Policy{Tiers: []Tier{
	{Eligibility: EligibilityFull, MinDays: 7, CustomerPercent: decimal.NewFromInt(100), PlatformPercent: decimal.Zero},
	{Eligibility: EligibilityHalf, MinDays: 3, CustomerPercent: decimal.NewFromInt(50), PlatformPercent: decimal.NewFromInt(8)},
	{Eligibility: EligibilityNone, MinDays: 0, CustomerPercent: decimal.Zero, PlatformPercent: decimal.NewFromInt(8)},
}}

// Breakdown is the three-way split of an advance amount.
type Breakdown struct {
	CustomerRefund      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"customer_refund"`
	PlatformCommission  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"platform_commission"`
	ServiceCenterPayout decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"service_center_payout"`
}

func (b Breakdown) Total() decimal.Decimal {
	return money.Sum(b.CustomerRefund, b.PlatformCommission, b.ServiceCenterPayout)
}

type Result struct {
	DaysBeforeCheckIn int         `json:"days_before_check_in"`
	Eligibility       Eligibility `json:"eligibility"`
	Breakdown
	Explanation string `json:"explanation"`
}

// TierFor returns the tier for days. Negative days count as zero.
func (p Policy) TierFor(days int) Tier {
	if days < 0 {
		days = 0
	}
	for _, t := range p.Tiers {
		if days >= t.MinDays {
			return t
		}
	}
	return p.Tiers[len(p.Tiers)-1]
}

// Evaluate maps lead time and advance onto a tier and its split. The advance
// is normalized to cents, the two computed shares are rounded once and the
// service center receives the remainder, so the parts always sum to the advance.
func (p Policy) Evaluate(days int, advance decimal.Decimal) Result {
	if days < 0 {
		days = 0
	}
	if advance.IsNegative() {
		advance = decimal.Zero
	}
	advance = money.Round(advance)

	t := p.TierFor(days)
	customer := money.Round(money.Percent(advance, t.CustomerPercent))
	platform := money.Round(money.Percent(advance, t.PlatformPercent))
	if customer.Add(platform).GreaterThan(advance) {
		platform = advance.Sub(customer)
	}

	return Result{
		DaysBeforeCheckIn: days,
		Eligibility:       t.Eligibility,
		Breakdown: Breakdown{
			CustomerRefund:      customer,
			PlatformCommission:  platform,
			ServiceCenterPayout: advance.Sub(customer).Sub(platform),
		},
		Explanation: p.Explain(t.Eligibility),
	}
}

// Explain renders the policy text for one tier.
func (p Policy) Explain(e Eligibility) string {
	for i, t := range p.Tiers {
		if t.Eligibility != e {
			continue
		}
		return fmt.Sprintf("%s: %s", p.window(i), describe(t))
	}
	return ""
}

// Lines renders every tier, highest first.
func (p Policy) Lines() []string {
	lines := make([]string, 0, len(p.Tiers))
	for _, t := range p.Tiers {
		lines = append(lines, p.Explain(t.Eligibility))
	}
	return lines
}

func (p Policy) window(i int) string {
	t := p.Tiers[i]
	switch {
	case i == 0:
		return fmt.Sprintf("Cancelled %d or more days before check-in", t.MinDays)
	case t.MinDays == 0:
		return fmt.Sprintf("Cancelled less than %d days before check-in", p.Tiers[i-1].MinDays)
	default:
		return fmt.Sprintf("Cancelled %d to %d days before check-in", t.MinDays, p.Tiers[i-1].MinDays-1)
	}
}

func describe(t Tier) string {
	var refund string
	if t.CustomerPercent.IsZero() {
		refund = "no refund to the customer"
	} else {
		refund = fmt.Sprintf("%s%% of the advance is refunded to the customer", t.CustomerPercent)
	}
	if t.PlatformPercent.IsZero() && t.ServiceCenterPercent().IsZero() {
		return refund + "."
	}
	return fmt.Sprintf("%s, %s%% platform commission is retained and the remaining %s%% is paid to the service center.",
		refund, t.PlatformPercent, t.ServiceCenterPercent())
}

// Evaluate applies DefaultPolicy.
func Evaluate(days int, advance decimal.Decimal) Result {
	return DefaultPolicy.Evaluate(days, advance)
}

// DaysBetween counts whole calendar days from cancellation to check-in in loc.
// The result is negative when the cancellation falls after check-in.
func DaysBetween(cancelledAt, checkInAt time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}
	from := calendarDay(cancelledAt.In(loc))
	to := calendarDay(checkInAt.In(loc))
	return int(to.Sub(from).Hours() / 24)
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
