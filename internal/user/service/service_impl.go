package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	userdomain "github.com/haixin886/recharge-hub-system-sub001/internal/user/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
}

func NewService(p ServiceParam) userdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("user.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req userdomain.CreateRequest) (*userdomain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, userdomain.ErrInvalidUsername
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, userdomain.ErrInvalidEmail
	}
	role := req.Role
	if role == "" {
		role = userdomain.RoleCustomer
	}
	if !validRole(role) {
		return nil, userdomain.ErrInvalidRole
	}

	now := s.clock.Now()
	user := userdomain.User{
		ID:        s.genID.Generate(),
		Username:  username,
		Email:     email,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Balance != nil {
		if *req.Balance < 0 {
			return nil, userdomain.ErrInvalidBalance
		}
		user.Balance = *req.Balance
	}
	if req.CommissionRate != nil && *req.CommissionRate >= 0 {
		user.CommissionRate = *req.CommissionRate
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userdomain.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return userdomain.ErrUsernameTaken
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
	)
	return &user, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*userdomain.User, error) {
	var user userdomain.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userdomain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) List(ctx context.Context, req userdomain.ListRequest) (*userdomain.ListResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).Model(&userdomain.User{})
	if req.Role != "" {
		query = query.Where("role = ?", req.Role)
	}
	if username := strings.TrimSpace(req.Username); username != "" {
		query = query.Where("username LIKE ?", username+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []userdomain.User
	if err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, err
	}

	return &userdomain.ListResponse{Users: users, Total: total}, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req userdomain.UpdateRequest) (*userdomain.User, error) {
	var user userdomain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return userdomain.ErrUserNotFound
			}
			return err
		}

		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if email == "" || !strings.Contains(email, "@") {
				return userdomain.ErrInvalidEmail
			}
			user.Email = email
		}
		if req.Role != nil {
			if !validRole(*req.Role) {
				return userdomain.ErrInvalidRole
			}
			user.Role = *req.Role
		}
		if req.Balance != nil {
			if *req.Balance < 0 {
				return userdomain.ErrInvalidBalance
			}
			user.Balance = *req.Balance
		}
		if req.CommissionRate != nil && *req.CommissionRate >= 0 {
			user.CommissionRate = *req.CommissionRate
		}
		if req.Disabled != nil {
			user.Disabled = *req.Disabled
		}

		user.UpdatedAt = s.clock.Now()
		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	result := s.db.WithContext(ctx).Delete(&userdomain.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return userdomain.ErrUserNotFound
	}
	return nil
}

func validRole(role userdomain.Role) bool {
	switch role {
	case userdomain.RoleCustomer, userdomain.RoleAgent, userdomain.RoleAdmin:
		return true
	}
	return false
}
