package catalog

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RepairService is an individually orderable offering.
type RepairService struct {
	ID               int64            `gorm:"primaryKey" json:"id"`
	Name             string           `gorm:"size:255;not null" json:"name"`
	ShortDescription string           `gorm:"size:500" json:"short_description"`
	Description      string           `gorm:"type:text" json:"description"`
	Category         string           `gorm:"size:100;index;not null" json:"category"`
	Price            decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	Unit             string           `gorm:"size:50;not null;default:'per job'" json:"unit"`
	DurationMinutes  *int             `json:"duration_minutes,omitempty"`
	Discount         *decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount,omitempty"`
	IsActive         bool             `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	DeletedAt        gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (RepairService) TableName() string { return "repair_services" }

// StatusLabel is the value matched by the "status" list filter.
func (s RepairService) StatusLabel() string {
	if s.IsActive {
		return "active"
	}
	return "inactive"
}
