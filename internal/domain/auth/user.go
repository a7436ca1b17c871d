package auth

import "time"

type Role string

const (
	RoleAdmin         Role = "admin"
	RoleServiceCenter Role = "service_center"
	RoleCustomer      Role = "customer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleServiceCenter, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID                  int64      `gorm:"primaryKey" json:"id"`
	Email               string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash        string     `gorm:"size:255;not null" json:"-"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	Phone               string     `gorm:"size:32" json:"phone,omitempty"`
	Role                Role       `gorm:"size:32;index;not null" json:"role"`
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockedUntil         *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (User) TableName() string { return "users" }
