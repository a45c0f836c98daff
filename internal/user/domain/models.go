package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role separates storefront customers from processing agents and
// back-office admins.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAgent    Role = "agent"
	RoleAdmin    Role = "admin"
)

// User is a storefront account. Balance is the wallet balance in minor
// units. CommissionRate applies to agents only, in basis points.
type User struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Username       string       `gorm:"type:text;not null;uniqueIndex" json:"username"`
	Email          string       `gorm:"type:text;not null" json:"email"`
	Role           Role         `gorm:"type:text;not null;default:customer" json:"role"`
	Balance        int64        `gorm:"not null;default:0" json:"balance"`
	CommissionRate int64        `gorm:"not null;default:0" json:"commission_rate"`
	Disabled       bool         `gorm:"not null;default:false" json:"disabled"`
	CreatedAt      time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }
