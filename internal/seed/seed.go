package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	biztypedomain "github.com/haixin886/recharge-hub-system-sub001/internal/biztype/domain"
	userdomain "github.com/haixin886/recharge-hub-system-sub001/internal/user/domain"
	"gorm.io/gorm"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminEmail    = "admin@rechargehub.local"
)

var defaultCatalog = []struct {
	Code      string
	Name      string
	Carrier   string
	FaceValue int64
	Price     int64
}{
	{Code: "cmcc-30", Name: "30 CNY Fast Recharge", Carrier: "mobile", FaceValue: 3000, Price: 2940},
	{Code: "cmcc-50", Name: "50 CNY Fast Recharge", Carrier: "mobile", FaceValue: 5000, Price: 4900},
	{Code: "cmcc-100", Name: "100 CNY Fast Recharge", Carrier: "mobile", FaceValue: 10000, Price: 9800},
	{Code: "cucc-50", Name: "50 CNY Unicom Recharge", Carrier: "unicom", FaceValue: 5000, Price: 4920},
	{Code: "ctcc-100", Name: "100 CNY Telecom Recharge", Carrier: "telecom", FaceValue: 10000, Price: 9850},
}

// EnsureAdminAndCatalog bootstraps the default admin account and the
// starter recharge catalog. Safe to run on every startup.
func EnsureAdminAndCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()

		var admin userdomain.User
		err := tx.Where("username = ?", defaultAdminUsername).First(&admin).Error
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			admin = userdomain.User{
				ID:        node.Generate(),
				Username:  defaultAdminUsername,
				Email:     defaultAdminEmail,
				Role:      userdomain.RoleAdmin,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&admin).Error; err != nil {
				return err
			}
		}

		for _, item := range defaultCatalog {
			var existing biztypedomain.BusinessType
			err := tx.Where("code = ?", item.Code).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			record := biztypedomain.BusinessType{
				ID:        node.Generate(),
				Code:      item.Code,
				Name:      item.Name,
				Carrier:   item.Carrier,
				FaceValue: item.FaceValue,
				Price:     item.Price,
				Active:    true,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
