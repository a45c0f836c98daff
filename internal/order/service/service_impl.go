package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	"github.com/haixin886/recharge-hub-system-sub001/internal/observability/logger"
	orderdomain "github.com/haixin886/recharge-hub-system-sub001/internal/order/domain"
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

func NewService(p ServiceParam) orderdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("order.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req orderdomain.CreateRequest) (*orderdomain.Order, error) {
	userID, err := parseID(req.UserID, orderdomain.ErrInvalidUser)
	if err != nil {
		return nil, err
	}
	productID, err := parseID(req.ProductID, orderdomain.ErrInvalidProduct)
	if err != nil {
		return nil, err
	}

	phone := strings.TrimSpace(req.Phone)
	if len(phone) < 8 {
		return nil, orderdomain.ErrInvalidPhone
	}
	if req.Amount <= 0 {
		return nil, orderdomain.ErrInvalidAmount
	}
	if !orderdomain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, orderdomain.ErrInvalidPaymentMethod
	}

	now := s.clock.Now()
	order := orderdomain.Order{
		ID:            s.genID.Generate(),
		UserID:        userID,
		ProductID:     productID,
		Phone:         phone,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		Carrier:       orderdomain.DetectCarrier(phone),
		Status:        orderdomain.OrderStatusPending,
		CreateTime:    now,
		UpdatedAt:     now,
	}
	if err := s.db.WithContext(ctx).Create(&order).Error; err != nil {
		return nil, err
	}

	s.log.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("phone", logger.MaskPhone(order.Phone)),
		zap.Int64("amount", order.Amount),
	)
	return &order, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*orderdomain.Order, error) {
	var order orderdomain.Order
	err := s.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, orderdomain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (s *Service) List(ctx context.Context, req orderdomain.ListRequest) (*orderdomain.ListResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	query := s.db.WithContext(ctx).Model(&orderdomain.Order{})
	if userID := strings.TrimSpace(req.UserID); userID != "" {
		id, err := parseID(userID, orderdomain.ErrInvalidUser)
		if err != nil {
			return nil, err
		}
		query = query.Where("user_id = ?", id)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if phone := strings.TrimSpace(req.Phone); phone != "" {
		query = query.Where("phone LIKE ?", phone+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	orderBy := "create_time DESC"
	if strings.EqualFold(strings.TrimSpace(req.OrderBy), "asc") {
		orderBy = "create_time ASC"
	}

	var orders []orderdomain.Order
	if err := query.Order(orderBy).Limit(limit).Offset(offset).Find(&orders).Error; err != nil {
		return nil, err
	}

	return &orderdomain.ListResponse{Orders: orders, Total: total}, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id snowflake.ID, req orderdomain.UpdateStatusRequest) (*orderdomain.Order, error) {
	switch req.Status {
	case orderdomain.OrderStatusProcessing, orderdomain.OrderStatusCompleted, orderdomain.OrderStatusFailed:
	default:
		return nil, orderdomain.ErrInvalidStatus
	}

	var order orderdomain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return orderdomain.ErrOrderNotFound
			}
			return err
		}
		if !order.Status.CanTransition(req.Status) {
			return orderdomain.ErrStatusRegression
		}

		now := s.clock.Now()
		order.Status = req.Status
		order.UpdatedAt = now
		// A settled amount is recorded on both terminal transitions: on
		// completed it is the sale, on failed it is the refundable sum.
		if req.PaidAmount != nil && *req.PaidAmount >= 0 {
			switch req.Status {
			case orderdomain.OrderStatusCompleted, orderdomain.OrderStatusFailed:
				order.PaidAmount = req.PaidAmount
			}
		}
		if req.Status == orderdomain.OrderStatusCompleted {
			order.CompleteTime = &now
			if req.ProcessorID != nil {
				processorID, err := parseID(*req.ProcessorID, orderdomain.ErrInvalidUser)
				if err != nil {
					return err
				}
				order.ProcessorID = &processorID
			}
		}
		return tx.Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order status updated",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(order.Status)),
	)
	return &order, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	result := s.db.WithContext(ctx).Delete(&orderdomain.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return orderdomain.ErrOrderNotFound
	}
	return nil
}

func parseID(raw string, invalid error) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(raw))
	if err != nil {
		return 0, invalid
	}
	return id, nil
}
