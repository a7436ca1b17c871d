package inventory

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"autoshop/internal/database"
)

type Repository interface {
	Create(ctx context.Context, p *Part) error
	GetByID(ctx context.Context, id int64) (*Part, error)
	List(ctx context.Context) ([]Part, error)
	// AdjustQuantity changes stock by delta atomically and returns the part
	// before and after the change.
	AdjustQuantity(ctx context.Context, id int64, delta int) (before, after *Part, err error)
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, p *Part) error {
	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicatePart
		}
		return err
	}
	return nil
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*Part, error) {
	var p Part
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) List(ctx context.Context) ([]Part, error) {
	var items []Part
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormRepository) AdjustQuantity(ctx context.Context, id int64, delta int) (*Part, *Part, error) {
	var before, after Part
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&before, id).Error; err != nil {
			if database.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if before.Quantity+delta < 0 {
			return ErrInsufficientStock
		}

		res := tx.Model(&Part{}).
			Where("id = ? AND quantity + ? >= 0", id, delta).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}
		return tx.First(&after, id).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return &before, &after, nil
}
