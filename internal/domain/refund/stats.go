package refund

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type StatusTotals struct {
	Status              Status          `db:"status" json:"status"`
	Count               int64           `db:"count" json:"count"`
	AdvanceAmount       decimal.Decimal `db:"advance_amount" json:"advance_amount"`
	CustomerRefund      decimal.Decimal `db:"customer_refund" json:"customer_refund"`
	PlatformCommission  decimal.Decimal `db:"platform_commission" json:"platform_commission"`
	ServiceCenterPayout decimal.Decimal `db:"service_center_payout" json:"service_center_payout"`
}

type Stats struct {
	ByStatus []StatusTotals `json:"by_status"`
	Total    StatusTotals   `json:"total"`
}

type StatsReader interface {
	Totals(ctx context.Context) ([]StatusTotals, error)
}

// StatsRepository aggregates refunds with plain SQL.
type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

const totalsQuery = `
	SELECT status,
	       COUNT(*) AS count,
	       COALESCE(SUM(advance_amount), 0) AS advance_amount,
	       COALESCE(SUM(customer_refund), 0) AS customer_refund,
	       COALESCE(SUM(platform_commission), 0) AS platform_commission,
	       COALESCE(SUM(service_center_payout), 0) AS service_center_payout
	FROM refund_bookings
	WHERE status IN (?, ?, ?)
	GROUP BY status
`

func (r *StatsRepository) Totals(ctx context.Context) ([]StatusTotals, error) {
	var rows []StatusTotals
	query := r.db.Rebind(totalsQuery)
	err := r.db.SelectContext(ctx, &rows, query, StatusPending, StatusProcessed, StatusCompleted)
	return rows, err
}

// summarize orders totals Pending, Processed, Completed and fills missing statuses with zeros.
func summarize(rows []StatusTotals) Stats {
	byStatus := make(map[Status]StatusTotals, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
	}

	var stats Stats
	for _, s := range []Status{StatusPending, StatusProcessed, StatusCompleted} {
		row, ok := byStatus[s]
		if !ok {
			row = StatusTotals{Status: s}
		}
		stats.ByStatus = append(stats.ByStatus, row)
		stats.Total.Count += row.Count
		stats.Total.AdvanceAmount = stats.Total.AdvanceAmount.Add(row.AdvanceAmount)
		stats.Total.CustomerRefund = stats.Total.CustomerRefund.Add(row.CustomerRefund)
		stats.Total.PlatformCommission = stats.Total.PlatformCommission.Add(row.PlatformCommission)
		stats.Total.ServiceCenterPayout = stats.Total.ServiceCenterPayout.Add(row.ServiceCenterPayout)
	}
	return stats
}
