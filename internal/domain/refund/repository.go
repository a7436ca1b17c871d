package refund

import (
	"context"
	"time"

	"gorm.io/gorm"

	"autoshop/internal/database"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context) ([]Booking, error)
	ListPendingSince(ctx context.Context, cutoff time.Time) ([]Booking, error)
	// UpdateBreakdown stores a recomputed split unless the breakdown is locked.
	UpdateBreakdown(ctx context.Context, b *Booking) error
	// UpdateStatus moves b to its current Status only if the stored status is still from.
	UpdateStatus(ctx context.Context, b *Booking, from Status) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, b *Booking) error {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateBooking
		}
		return err
	}
	return nil
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *GormRepository) List(ctx context.Context) ([]Booking, error) {
	var items []Booking
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormRepository) ListPendingSince(ctx context.Context, cutoff time.Time) ([]Booking, error) {
	var items []Booking
	err := r.db.WithContext(ctx).
		Where("status = ? AND cancelled_at < ?", StatusPending, cutoff.UTC()).
		Order("cancelled_at ASC").
		Find(&items).Error
	return items, err
}

func (r *GormRepository) UpdateBreakdown(ctx context.Context, b *Booking) error {
	res := r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND breakdown_locked = ?", b.ID, false).
		Updates(map[string]any{
			"advance_amount":        b.AdvanceAmount,
			"days_before_check_in":  b.DaysBeforeCheckIn,
			"eligibility":           b.Eligibility,
			"customer_refund":       b.Breakdown.CustomerRefund,
			"platform_commission":   b.Breakdown.PlatformCommission,
			"service_center_payout": b.Breakdown.ServiceCenterPayout,
			"updated_at":            time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBreakdownLocked
	}
	return nil
}

func (r *GormRepository) UpdateStatus(ctx context.Context, b *Booking, from Status) error {
	res := r.db.WithContext(ctx).Model(&Booking{}).
		Where("id = ? AND status = ?", b.ID, from).
		Updates(map[string]any{
			"status":           b.Status,
			"breakdown_locked": b.BreakdownLocked,
			"processed_at":     b.ProcessedAt,
			"completed_at":     b.CompletedAt,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
