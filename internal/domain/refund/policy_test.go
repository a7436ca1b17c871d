package refund

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestEvaluate_FullRefundScenario(t *testing.T) {
	r := Evaluate(11, dec("10000"))

	assert.Equal(t, EligibilityFull, r.Eligibility)
	assert.True(t, r.CustomerRefund.Equal(dec("10000")))
	assert.True(t, r.PlatformCommission.IsZero())
	assert.True(t, r.ServiceCenterPayout.IsZero())
}

func TestEvaluate_HalfRefundScenario(t *testing.T) {
	r := Evaluate(5, dec("2125"))

	assert.Equal(t, EligibilityHalf, r.Eligibility)
	assert.Equal(t, "1062.5", r.CustomerRefund.String())
	assert.Equal(t, "170", r.PlatformCommission.String())
	assert.Equal(t, "892.5", r.ServiceCenterPayout.String())
}

func TestEvaluate_Thresholds(t *testing.T) {
	cases := []struct {
		days int
		want Eligibility
	}{
		{-4, EligibilityNone},
		{0, EligibilityNone},
		{2, EligibilityNone},
		{3, EligibilityHalf},
		{6, EligibilityHalf},
		{7, EligibilityFull},
		{365, EligibilityFull},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Evaluate(tc.days, dec("100")).Eligibility, "days=%d", tc.days)
	}
}

func TestEvaluate_SharesAlwaysSumToAdvance(t *testing.T) {
	advances := []string{"0", "0.01", "0.02", "0.03", "0.07", "1", "99.99", "333.33", "2125", "12345.67", "1000000"}
	for days := 0; days <= 10; days++ {
		for _, a := range advances {
			advance := dec(a)
			r := Evaluate(days, advance)

			assert.True(t, r.Total().Equal(advance), "days=%d advance=%s total=%s", days, a, r.Total())
			assert.False(t, r.CustomerRefund.IsNegative())
			assert.False(t, r.PlatformCommission.IsNegative())
			assert.False(t, r.ServiceCenterPayout.IsNegative())

			switch {
			case days >= 7:
				assert.True(t, r.CustomerRefund.Equal(advance))
				assert.True(t, r.PlatformCommission.IsZero())
			case days >= 3:
				assert.True(t, r.CustomerRefund.Equal(advance.Mul(dec("0.5")).Round(2)))
			default:
				assert.True(t, r.CustomerRefund.IsZero())
			}
		}
	}
}

func TestEvaluate_NegativeAdvanceTreatedAsZero(t *testing.T) {
	r := Evaluate(5, dec("-10"))
	assert.True(t, r.Total().IsZero())
}

func TestPolicy_ExplanationMatchesTable(t *testing.T) {
	lines := DefaultPolicy.Lines()
	require.Len(t, lines, 3)

	assert.Equal(t, "Cancelled 7 or more days before check-in: 100% of the advance is refunded to the customer.", lines[0])
	assert.Equal(t, "Cancelled 3 to 6 days before check-in: 50% of the advance is refunded to the customer, 8% platform commission is retained and the remaining 42% is paid to the service center.", lines[1])
	assert.Equal(t, "Cancelled less than 3 days before check-in: no refund to the customer, 8% platform commission is retained and the remaining 92% is paid to the service center.", lines[2])

	assert.Equal(t, lines[1], Evaluate(4, dec("50")).Explanation)
}

func TestDaysBetween(t *testing.T) {
	almaty := time.FixedZone("UTC+5", 5*3600)

	cancelled := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)
	checkIn := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(cancelled, checkIn, time.UTC))
	// 04:30 on the 2nd in UTC+5, so one calendar day less.
	assert.Equal(t, 2, DaysBetween(cancelled, checkIn, almaty))
	assert.Equal(t, -3, DaysBetween(checkIn, cancelled, time.UTC))
	assert.Equal(t, 0, DaysBetween(cancelled, cancelled.Add(10*time.Minute), nil))
}
