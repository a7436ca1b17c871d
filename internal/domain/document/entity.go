package document

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindEstimate Kind = "estimate"
	KindInvoice  Kind = "invoice"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
	StatusPaid     Status = "paid"
	StatusOverdue  Status = "overdue"
	StatusVoid     Status = "void"
)

var transitionMap = map[Kind]map[Status][]Status{
	KindEstimate: {
		StatusDraft: {StatusSent},
		StatusSent:  {StatusApproved, StatusDeclined},
	},
	KindInvoice: {
		StatusDraft:   {StatusSent, StatusVoid},
		StatusSent:    {StatusPaid, StatusOverdue, StatusVoid},
		StatusOverdue: {StatusPaid, StatusVoid},
	},
}

func ValidTransition(kind Kind, from, to Status) bool {
	for _, s := range transitionMap[kind][from] {
		if s == to {
			return true
		}
	}
	return false
}

// Document is an estimate or an invoice.
type Document struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	Number       string          `gorm:"size:32;uniqueIndex;not null" json:"number"`
	Kind         Kind            `gorm:"size:16;index;not null" json:"kind"`
	Status       Status          `gorm:"size:16;index;not null" json:"status"`
	CustomerName string          `gorm:"size:255;not null" json:"customer_name"`
	Vehicle      string          `gorm:"size:255" json:"vehicle"`
	Total        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	IssuedAt     time.Time       `gorm:"not null" json:"issued_at"`
	DueAt        *time.Time      `json:"due_at,omitempty"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// NewNumber builds a document number such as "INV-1A2B3C4D".
func NewNumber(kind Kind) string {
	prefix := "EST"
	if kind == KindInvoice {
		prefix = "INV"
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + strings.ToUpper(id[:8])
}
