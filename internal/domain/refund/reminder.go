package refund

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ScheduleReminder registers the overdue-refund scan on c.
func ScheduleReminder(c *cron.Cron, spec string, svc *Service, sla time.Duration, log *zap.Logger) (cron.EntryID, error) {
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		start := time.Now()
		n, err := svc.RemindOverdue(ctx, sla)
		if err != nil {
			log.Error("refund reminder job failed", zap.Error(err))
			return
		}
		log.Info("refund reminder job finished", zap.Int("overdue", n), zap.Duration("took", time.Since(start)))
	})
}
