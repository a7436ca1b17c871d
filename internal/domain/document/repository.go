package document

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/database"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id int64) (*Document, error)
	List(ctx context.Context) ([]Document, error)
	UpdateStatus(ctx context.Context, id int64, from, to Status) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*Document, error) {
	var d Document
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *GormRepository) List(ctx context.Context) ([]Document, error) {
	var items []Document
	err := r.db.WithContext(ctx).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *GormRepository) UpdateStatus(ctx context.Context, id int64, from, to Status) error {
	res := r.db.WithContext(ctx).Model(&Document{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
