package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	biztypedomain "github.com/haixin886/recharge-hub-system-sub001/internal/biztype/domain"
	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupBiztypeService(t *testing.T) biztypedomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&biztypedomain.BusinessType{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	return NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.Fixed{Instant: time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)},
	})
}

func TestCreateBusinessType(t *testing.T) {
	svc := setupBiztypeService(t)

	record, err := svc.Create(context.Background(), biztypedomain.CreateRequest{
		Code:      "cmcc-50",
		Name:      "50 CNY Fast Recharge",
		Carrier:   "mobile",
		FaceValue: 5_000,
		Price:     4_900,
	})
	if err != nil {
		t.Fatalf("create business type: %v", err)
	}
	if !record.Active {
		t.Fatal("expected active by default")
	}
}

func TestCreateBusinessTypeInactive(t *testing.T) {
	svc := setupBiztypeService(t)

	inactive := false
	record, err := svc.Create(context.Background(), biztypedomain.CreateRequest{
		Code:      "cmcc-200",
		Name:      "200 CNY Fast Recharge",
		Carrier:   "mobile",
		FaceValue: 20_000,
		Price:     19_600,
		Active:    &inactive,
	})
	if err != nil {
		t.Fatalf("create inactive: %v", err)
	}
	if record.Active {
		t.Fatal("expected inactive product")
	}

	// The false must survive the round trip to the store, not just the
	// in-memory struct.
	stored, err := svc.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Active {
		t.Fatal("inactive flag was lost on insert")
	}
}

func TestCreateBusinessTypeRejectsDuplicateCode(t *testing.T) {
	svc := setupBiztypeService(t)

	req := biztypedomain.CreateRequest{
		Code:      "cmcc-50",
		Name:      "50 CNY Fast Recharge",
		FaceValue: 5_000,
		Price:     4_900,
	}
	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, biztypedomain.ErrCodeTaken) {
		t.Fatalf("expected ErrCodeTaken, got %v", err)
	}
}

func TestCreateBusinessTypeValidation(t *testing.T) {
	svc := setupBiztypeService(t)

	if _, err := svc.Create(context.Background(), biztypedomain.CreateRequest{
		Name: "x", FaceValue: 1, Price: 1,
	}); !errors.Is(err, biztypedomain.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if _, err := svc.Create(context.Background(), biztypedomain.CreateRequest{
		Code: "c", FaceValue: 1, Price: 1,
	}); !errors.Is(err, biztypedomain.ErrInvalidName) {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.Create(context.Background(), biztypedomain.CreateRequest{
		Code: "c", Name: "x", FaceValue: 0, Price: 1,
	}); !errors.Is(err, biztypedomain.ErrInvalidFaceValue) {
		t.Fatalf("expected ErrInvalidFaceValue, got %v", err)
	}
	if _, err := svc.Create(context.Background(), biztypedomain.CreateRequest{
		Code: "c", Name: "x", FaceValue: 1, Price: 0,
	}); !errors.Is(err, biztypedomain.ErrInvalidPrice) {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestListBusinessTypesFilters(t *testing.T) {
	svc := setupBiztypeService(t)

	inactive := false
	for _, req := range []biztypedomain.CreateRequest{
		{Code: "cmcc-30", Name: "30 CNY", Carrier: "mobile", FaceValue: 3_000, Price: 2_950},
		{Code: "cmcc-100", Name: "100 CNY", Carrier: "mobile", FaceValue: 10_000, Price: 9_800},
		{Code: "ctcc-100", Name: "100 CNY", Carrier: "telecom", FaceValue: 10_000, Price: 9_800, Active: &inactive},
	} {
		if _, err := svc.Create(context.Background(), req); err != nil {
			t.Fatalf("create %s: %v", req.Code, err)
		}
	}

	records, err := svc.List(context.Background(), biztypedomain.ListRequest{Carrier: "mobile"})
	if err != nil {
		t.Fatalf("list by carrier: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 mobile entries, got %d", len(records))
	}
	// Ordered by face value ascending.
	if records[0].Code != "cmcc-30" {
		t.Fatalf("expected cmcc-30 first, got %s", records[0].Code)
	}

	active := true
	records, err = svc.List(context.Background(), biztypedomain.ListRequest{Active: &active})
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 active entries, got %d", len(records))
	}
}

func TestUpdateBusinessType(t *testing.T) {
	svc := setupBiztypeService(t)

	record, err := svc.Create(context.Background(), biztypedomain.CreateRequest{
		Code: "cucc-50", Name: "50 CNY", Carrier: "unicom", FaceValue: 5_000, Price: 4_900,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	price := int64(4_800)
	inactive := false
	updated, err := svc.Update(context.Background(), record.ID, biztypedomain.UpdateRequest{
		Price:  &price,
		Active: &inactive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 4_800 || updated.Active {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}
