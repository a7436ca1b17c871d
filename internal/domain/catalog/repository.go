package catalog

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/database"
)

type Repository interface {
	Create(ctx context.Context, s *RepairService) error
	GetByID(ctx context.Context, id int64) (*RepairService, error)
	GetByIDs(ctx context.Context, ids []int64) ([]RepairService, error)
	List(ctx context.Context) ([]RepairService, error)
	Save(ctx context.Context, s *RepairService) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64, hard bool) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, s *RepairService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*RepairService, error) {
	var s RepairService
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *GormRepository) GetByIDs(ctx context.Context, ids []int64) ([]RepairService, error) {
	var items []RepairService
	if len(ids) == 0 {
		return items, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error
	return items, err
}

func (r *GormRepository) List(ctx context.Context) ([]RepairService, error) {
	var items []RepairService
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormRepository) Save(ctx context.Context, s *RepairService) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// SetActive flips availability without touching any other column.
func (r *GormRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&RepairService{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id int64, hard bool) error {
	q := r.db.WithContext(ctx)
	if hard {
		q = q.Unscoped()
	}
	res := q.Delete(&RepairService{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
