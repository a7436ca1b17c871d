package bundle

import (
	"context"

	"gorm.io/gorm"

	"autoshop/internal/database"
)

type Repository interface {
	Create(ctx context.Context, p *Package) error
	GetByID(ctx context.Context, id int64) (*Package, error)
	List(ctx context.Context) ([]Package, error)
	Update(ctx context.Context, p *Package) error
	Delete(ctx context.Context, id int64) error
}

type GormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

func (r *GormRepository) Create(ctx context.Context, p *Package) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*Package, error) {
	var p Package
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).First(&p, id).Error
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormRepository) List(ctx context.Context) ([]Package, error) {
	var items []Package
	err := r.db.WithContext(ctx).Preload("Items", orderedItems).Order("id ASC").Find(&items).Error
	return items, err
}

// Update rewrites the package row and replaces its service list.
func (r *GormRepository) Update(ctx context.Context, p *Package) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", p.ID).Delete(&PackageItem{}).Error; err != nil {
			return err
		}
		if err := tx.Omit("Items").Save(p).Error; err != nil {
			return err
		}
		for i := range p.Items {
			p.Items[i].ID = 0
			p.Items[i].PackageID = p.ID
		}
		if len(p.Items) == 0 {
			return nil
		}
		return tx.Create(&p.Items).Error
	})
}

func (r *GormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).Delete(&PackageItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&Package{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
