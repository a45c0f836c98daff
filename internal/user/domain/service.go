package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// CreateRequest registers a new account from the admin back office.
type CreateRequest struct {
	Username       string
	Email          string
	Role           Role
	Balance        *int64
	CommissionRate *int64
}

// UpdateRequest patches mutable account fields.
type UpdateRequest struct {
	Email          *string
	Role           *Role
	Balance        *int64
	CommissionRate *int64
	Disabled       *bool
}

// ListRequest filters the admin user listing.
type ListRequest struct {
	Role     Role
	Username string
	Limit    int
	Offset   int
}

// ListResponse is one page of users plus the unpaged total.
type ListResponse struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
}

// Service manages storefront accounts.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Get(ctx context.Context, id snowflake.ID) (*User, error)
	List(ctx context.Context, req ListRequest) (*ListResponse, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id snowflake.ID) error
}

var (
	ErrUserNotFound    = errors.New("user_not_found")
	ErrInvalidUsername = errors.New("invalid_username")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidRole     = errors.New("invalid_role")
	ErrInvalidBalance  = errors.New("invalid_balance")
	ErrUsernameTaken   = errors.New("username_taken")
)
