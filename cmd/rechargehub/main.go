package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/haixin886/recharge-hub-system-sub001/internal/biztype"
	"github.com/haixin886/recharge-hub-system-sub001/internal/clock"
	"github.com/haixin886/recharge-hub-system-sub001/internal/config"
	"github.com/haixin886/recharge-hub-system-sub001/internal/events"
	"github.com/haixin886/recharge-hub-system-sub001/internal/migration"
	"github.com/haixin886/recharge-hub-system-sub001/internal/observability/logger"
	"github.com/haixin886/recharge-hub-system-sub001/internal/order"
	"github.com/haixin886/recharge-hub-system-sub001/internal/seed"
	"github.com/haixin886/recharge-hub-system-sub001/internal/server"
	"github.com/haixin886/recharge-hub-system-sub001/internal/stats"
	"github.com/haixin886/recharge-hub-system-sub001/internal/user"
	"github.com/haixin886/recharge-hub-system-sub001/pkg/db"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		events.Module,

		order.Module,
		user.Module,
		biztype.Module,
		stats.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if !cfg.IsProduction() {
				return seed.EnsureAdminAndCatalog(conn)
			}
			return nil
		}),

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
