package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// BusinessType is a sellable recharge product: a carrier face value or
// data bundle the storefront offers. FaceValue and Price are in minor
// units; Price is what the buyer pays.
type BusinessType struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Code      string       `gorm:"type:text;not null;uniqueIndex" json:"code"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Carrier   string       `gorm:"type:text" json:"carrier,omitempty"`
	FaceValue int64        `gorm:"not null" json:"face_value"`
	Price     int64        `gorm:"not null" json:"price"`
	// No gorm default: a default tag makes gorm omit the zero value on
	// insert, which would turn an explicitly inactive product active.
	Active    bool         `gorm:"not null" json:"active"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (BusinessType) TableName() string { return "business_types" }
