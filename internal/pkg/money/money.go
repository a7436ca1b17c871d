package money

import "github.com/shopspring/decimal"

// Places is the number of fractional digits amounts are rounded to.
const Places = 2

var hundred = decimal.NewFromInt(100)

func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Percent returns pct percent of amount, unrounded.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
