package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	biztypedomain "github.com/haixin886/recharge-hub-system-sub001/internal/biztype/domain"
	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
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

func NewService(p ServiceParam) biztypedomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("biztype.service"),
		genID: p.GenID,
		clock: p.Clock,
	}
}

func (s *Service) Create(ctx context.Context, req biztypedomain.CreateRequest) (*biztypedomain.BusinessType, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, biztypedomain.ErrInvalidCode
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, biztypedomain.ErrInvalidName
	}
	if req.FaceValue <= 0 {
		return nil, biztypedomain.ErrInvalidFaceValue
	}
	if req.Price <= 0 {
		return nil, biztypedomain.ErrInvalidPrice
	}

	now := s.clock.Now()
	record := biztypedomain.BusinessType{
		ID:        s.genID.Generate(),
		Code:      code,
		Name:      name,
		Carrier:   strings.TrimSpace(req.Carrier),
		FaceValue: req.FaceValue,
		Price:     req.Price,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if req.Active != nil {
		record.Active = *req.Active
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&biztypedomain.BusinessType{}).Where("code = ?", code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return biztypedomain.ErrCodeTaken
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("business type created", zap.String("id", record.ID.String()), zap.String("code", record.Code))
	return &record, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*biztypedomain.BusinessType, error) {
	var record biztypedomain.BusinessType
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, biztypedomain.ErrBusinessTypeNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *Service) List(ctx context.Context, req biztypedomain.ListRequest) ([]biztypedomain.BusinessType, error) {
	query := s.db.WithContext(ctx).Model(&biztypedomain.BusinessType{})
	if carrier := strings.TrimSpace(req.Carrier); carrier != "" {
		query = query.Where("carrier = ?", carrier)
	}
	if req.Active != nil {
		query = query.Where("active = ?", *req.Active)
	}

	var records []biztypedomain.BusinessType
	if err := query.Order("face_value ASC, code ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req biztypedomain.UpdateRequest) (*biztypedomain.BusinessType, error) {
	var record biztypedomain.BusinessType
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return biztypedomain.ErrBusinessTypeNotFound
			}
			return err
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return biztypedomain.ErrInvalidName
			}
			record.Name = name
		}
		if req.Carrier != nil {
			record.Carrier = strings.TrimSpace(*req.Carrier)
		}
		if req.FaceValue != nil {
			if *req.FaceValue <= 0 {
				return biztypedomain.ErrInvalidFaceValue
			}
			record.FaceValue = *req.FaceValue
		}
		if req.Price != nil {
			if *req.Price <= 0 {
				return biztypedomain.ErrInvalidPrice
			}
			record.Price = *req.Price
		}
		if req.Active != nil {
			record.Active = *req.Active
		}

		record.UpdatedAt = s.clock.Now()
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	result := s.db.WithContext(ctx).Delete(&biztypedomain.BusinessType{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return biztypedomain.ErrBusinessTypeNotFound
	}
	return nil
}
