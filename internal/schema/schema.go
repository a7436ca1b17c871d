// Package schema lists the tables owned by the API.
package schema

import (
	"gorm.io/gorm"

	"autoshop/internal/domain/auth"
	"autoshop/internal/domain/bundle"
	"autoshop/internal/domain/catalog"
	"autoshop/internal/domain/document"
	"autoshop/internal/domain/inventory"
	"autoshop/internal/domain/refund"
)

// Models is in dependency order: parents before children.
func Models() []any {
	return []any{
		&auth.User{},
		&catalog.RepairService{},
		&bundle.Package{},
		&bundle.PackageItem{},
		&inventory.Part{},
		&document.Document{},
		&refund.Booking{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// Reset empties every table, children first.
func Reset(db *gorm.DB) error {
	models := Models()
	for i := len(models) - 1; i >= 0; i-- {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(models[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
