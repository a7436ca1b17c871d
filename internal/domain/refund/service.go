package refund

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"autoshop/internal/pkg/listing"
	"autoshop/internal/pkg/validator"
)

const (
	TopicStatusChanged = "refund.status_changed"
	TopicOverdue       = "refund.overdue"
)

// Publisher fans domain events out to connected dashboards.
type Publisher interface {
	Publish(topic string, payload any)
}

type Config struct {
	Location *time.Location
	PageSize int
	Policy   Policy
}

type Service struct {
	repo   Repository
	stats  StatsReader
	events Publisher
	log    *zap.Logger
	cfg    Config
	now    func() time.Time
}

func NewService(repo Repository, stats StatsReader, events Publisher, log *zap.Logger, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if len(cfg.Policy.Tiers) == 0 {
		cfg.Policy = DefaultPolicy
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, stats: stats, events: events, log: log, cfg: cfg, now: time.Now}
}

func (s *Service) Policy() Policy {
	return s.cfg.Policy
}

// Quote evaluates a cancellation without recording it. Lead time is taken
// from DaysBeforeCheckIn or derived from the two timestamps.
func (s *Service) Quote(req EvaluateRequest) (Result, error) {
	var errs validator.Errors
	errs.Amount("advance_amount", req.AdvanceAmount)

	days := 0
	switch {
	case req.DaysBeforeCheckIn != nil:
		days = *req.DaysBeforeCheckIn
	case req.CancelledAt != nil && req.CheckInAt != nil:
		days = DaysBetween(*req.CancelledAt, *req.CheckInAt, s.cfg.Location)
	default:
		errs.Add("days_before_check_in", validator.MissingRequiredField, "is required unless cancelled_at and check_in_at are given")
	}
	if err := errs.Err(); err != nil {
		return Result{}, err
	}
	return s.cfg.Policy.Evaluate(days, req.AdvanceAmount), nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	errs := validator.Validate(&req)
	errs.Amount("advance_amount", req.AdvanceAmount)
	if req.CancelledAt.IsZero() && !hasField(errs, "cancelled_at") {
		errs.Add("cancelled_at", validator.MissingRequiredField, "is required")
	}
	if req.CheckInAt.IsZero() && !hasField(errs, "check_in_at") {
		errs.Add("check_in_at", validator.MissingRequiredField, "is required")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	b := &Booking{
		BookingRef:    req.BookingRef,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		ServiceCenter: req.ServiceCenter,
		ServiceName:   req.ServiceName,
		Vehicle:       req.Vehicle,
		CancelledAt:   req.CancelledAt.UTC(),
		CheckInAt:     req.CheckInAt.UTC(),
		AdvanceAmount: req.AdvanceAmount,
		Status:        StatusPending,
	}
	b.apply(s.cfg.Policy.Evaluate(DaysBetween(req.CancelledAt, req.CheckInAt, s.cfg.Location), req.AdvanceAmount))

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("refund recorded",
		zap.Int64("refund_id", b.ID),
		zap.String("booking_ref", b.BookingRef),
		zap.String("eligibility", string(b.Eligibility)),
	)
	return b, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, q listing.Query) (listing.Result[Booking], error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return listing.Result[Booking]{}, err
	}
	return ListSpec.Apply(items, q, s.cfg.PageSize), nil
}

// UpdateAdvance corrects the advance amount and recomputes the split.
// Rejected once the refund has been processed.
func (s *Service) UpdateAdvance(ctx context.Context, id int64, amount decimal.Decimal) (*Booking, error) {
	var errs validator.Errors
	errs.Amount("advance_amount", amount)
	if err := errs.Err(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.BreakdownLocked {
		return nil, ErrBreakdownLocked
	}

	b.AdvanceAmount = amount
	b.apply(s.cfg.Policy.Evaluate(b.DaysBeforeCheckIn, amount))
	if err := s.repo.UpdateBreakdown(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Transition moves a refund along Pending -> Processed -> Completed.
// Processing locks the breakdown.
func (s *Service) Transition(ctx context.Context, id int64, to Status) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := b.Status
	if !ValidTransition(from, to) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}

	now := s.now().UTC()
	b.Status = to
	switch to {
	case StatusProcessed:
		b.BreakdownLocked = true
		b.ProcessedAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}

	if err := s.repo.UpdateStatus(ctx, b, from); err != nil {
		return nil, err
	}

	s.log.Info("refund status changed",
		zap.Int64("refund_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)
	s.publish(TopicStatusChanged, StatusEvent{ID: b.ID, BookingRef: b.BookingRef, From: from, To: to})
	return b, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.stats.Totals(ctx)
	if err != nil {
		return Stats{}, err
	}
	return summarize(rows), nil
}

// RemindOverdue reports refunds that have been pending longer than sla.
func (s *Service) RemindOverdue(ctx context.Context, sla time.Duration) (int, error) {
	cutoff := s.now().Add(-sla)
	items, err := s.repo.ListPendingSince(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	for _, b := range items {
		s.log.Warn("refund pending past SLA",
			zap.Int64("refund_id", b.ID),
			zap.String("booking_ref", b.BookingRef),
			zap.Time("cancelled_at", b.CancelledAt),
			zap.Duration("sla", sla),
		)
		s.publish(TopicOverdue, OverdueEvent{ID: b.ID, BookingRef: b.BookingRef, CancelledAt: b.CancelledAt})
	}
	return len(items), nil
}

func hasField(errs validator.Errors, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func (s *Service) publish(topic string, payload any) {
	if s.events != nil {
		s.events.Publish(topic, payload)
	}
}

type StatusEvent struct {
	ID         int64  `json:"id"`
	BookingRef string `json:"booking_ref"`
	From       Status `json:"from"`
	To         Status `json:"to"`
}

type OverdueEvent struct {
	ID          int64     `json:"id"`
	BookingRef  string    `json:"booking_ref"`
	CancelledAt time.Time `json:"cancelled_at"`
}
