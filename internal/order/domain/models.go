package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// OrderStatus tracks the unidirectional recharge lifecycle. Completed
// and failed are terminal, an order never regresses.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusFailed     OrderStatus = "failed"
)

// PaymentMethod enumerates how an order was paid.
type PaymentMethod string

const (
	PaymentMethodWallet          PaymentMethod = "wallet"
	PaymentMethodPlatformBalance PaymentMethod = "platform_balance"
	PaymentMethodPlatformWallet  PaymentMethod = "platform_wallet"
	PaymentMethodBankTransfer    PaymentMethod = "bank_transfer"
	PaymentMethodCrypto          PaymentMethod = "crypto"
)

// Carrier identifies the mobile network a phone number belongs to.
type Carrier string

const (
	CarrierMobile  Carrier = "mobile"
	CarrierUnicom  Carrier = "unicom"
	CarrierTelecom Carrier = "telecom"
	CarrierUnknown Carrier = "unknown"
)

// Order is a single recharge transaction in the ledger. Amounts are in
// minor units. PaidAmount is nullable until payment settles; readers
// must coalesce it to zero.
type Order struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID        snowflake.ID  `gorm:"not null;index" json:"user_id"`
	ProductID     snowflake.ID  `gorm:"not null;index" json:"product_id"`
	Phone         string        `gorm:"type:text;not null" json:"phone"`
	Amount        int64         `gorm:"not null" json:"amount"`
	PaidAmount    *int64        `json:"paid_amount,omitempty"`
	PaymentMethod PaymentMethod `gorm:"type:text;not null" json:"payment_method"`
	Carrier       Carrier       `gorm:"type:text;not null;default:unknown" json:"carrier"`
	Status        OrderStatus   `gorm:"type:text;not null;index" json:"status"`
	ProcessorID   *snowflake.ID `gorm:"index" json:"processor_id,omitempty"`
	CreateTime    time.Time     `gorm:"not null;index" json:"create_time"`
	CompleteTime  *time.Time    `gorm:"index" json:"complete_time,omitempty"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Order) TableName() string { return "orders" }

// CanTransition reports whether the status progression is legal.
// pending -> processing -> completed|failed; terminal states are final.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCompleted || next == OrderStatusFailed
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusFailed
	default:
		return false
	}
}

// ValidPaymentMethod reports whether m is a known payment method.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentMethodWallet, PaymentMethodPlatformBalance, PaymentMethodPlatformWallet,
		PaymentMethodBankTransfer, PaymentMethodCrypto:
		return true
	}
	return false
}
