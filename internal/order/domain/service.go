package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// CreateRequest carries a new recharge order.
type CreateRequest struct {
	UserID        string
	ProductID     string
	Phone         string
	Amount        int64
	PaymentMethod PaymentMethod
}

// UpdateStatusRequest advances an order along its lifecycle. PaidAmount
// is recorded on either terminal transition (the sale on completed, the
// refundable sum on failed); ProcessorID only when the order completes.
type UpdateStatusRequest struct {
	Status      OrderStatus
	PaidAmount  *int64
	ProcessorID *string
}

// ListRequest filters the admin order listing.
type ListRequest struct {
	UserID  string
	Status  OrderStatus
	Phone   string
	Limit   int
	Offset  int
	OrderBy string
}

// ListResponse is one page of orders plus the unpaged total.
type ListResponse struct {
	Orders []Order `json:"orders"`
	Total  int64   `json:"total"`
}

// Service manages the order ledger for the admin back office.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Order, error)
	Get(ctx context.Context, id snowflake.ID) (*Order, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, req UpdateStatusRequest) (*Order, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrOrderNotFound        = errors.New("order_not_found")
	ErrInvalidUser          = errors.New("invalid_user")
	ErrInvalidProduct       = errors.New("invalid_product")
	ErrInvalidPhone         = errors.New("invalid_phone")
	ErrInvalidAmount        = errors.New("invalid_amount")
	ErrInvalidPaymentMethod = errors.New("invalid_payment_method")
	ErrInvalidStatus        = errors.New("invalid_status")
	ErrStatusRegression     = errors.New("status_regression")
)
