package refund

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusProcessed Status = "Processed"
	StatusCompleted Status = "Completed"
)

var transitionMap = map[Status][]Status{
	StatusPending:   {StatusProcessed},
	StatusProcessed: {StatusCompleted},
}

// ValidTransition reports whether a refund may move from one status to another.
func ValidTransition(from, to Status) bool {
	for _, s := range transitionMap[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessed, StatusCompleted:
		return true
	}
	return false
}

// Booking is a cancelled appointment and its refund. Rows are never deleted.
type Booking struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	BookingRef string `gorm:"size:64;uniqueIndex;not null" json:"booking_ref"`

	CustomerName  string `gorm:"size:255" json:"customer_name"`
	CustomerEmail string `gorm:"size:255" json:"customer_email"`
	ServiceCenter string `gorm:"size:255;index" json:"service_center"`
	ServiceName   string `gorm:"size:255" json:"service_name"`
	Vehicle       string `gorm:"size:255" json:"vehicle"`

	CancelledAt       time.Time       `gorm:"not null" json:"cancelled_at"`
	CheckInAt         time.Time       `gorm:"not null" json:"check_in_at"`
	DaysBeforeCheckIn int             `gorm:"not null" json:"days_before_check_in"`
	AdvanceAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"advance_amount"`

	Eligibility     Eligibility `gorm:"size:8;not null" json:"refund_eligibility"`
	Status          Status      `gorm:"size:16;index;not null" json:"refund_status"`
	Breakdown       Breakdown   `gorm:"embedded" json:"breakdown"`
	BreakdownLocked bool        `gorm:"not null;default:false" json:"breakdown_locked"`

	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Booking) TableName() string { return "refund_bookings" }

// apply copies an evaluation onto the booking.
func (b *Booking) apply(r Result) {
	b.DaysBeforeCheckIn = r.DaysBeforeCheckIn
	b.Eligibility = r.Eligibility
	b.Breakdown = r.Breakdown
}
