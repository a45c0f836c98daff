package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// CreateRequest adds a recharge product.
type CreateRequest struct {
	Code      string
	Name      string
	Carrier   string
	FaceValue int64
	Price     int64
	Active    *bool
}

// UpdateRequest patches a recharge product.
type UpdateRequest struct {
	Name      *string
	Carrier   *string
	FaceValue *int64
	Price     *int64
	Active    *bool
}

// ListRequest filters the product listing.
type ListRequest struct {
	Carrier string
	Active  *bool
}

// Service manages the recharge product catalog.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*BusinessType, error)
	Get(ctx context.Context, id snowflake.ID) (*BusinessType, error)
	List(ctx context.Context, req ListRequest) ([]BusinessType, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*BusinessType, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrBusinessTypeNotFound = errors.New("business_type_not_found")
	ErrInvalidCode          = errors.New("invalid_code")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidFaceValue     = errors.New("invalid_face_value")
	ErrInvalidPrice         = errors.New("invalid_price")
	ErrCodeTaken            = errors.New("code_taken")
)
