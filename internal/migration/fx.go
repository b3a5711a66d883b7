package migration

import (
	catalogdomain "github.com/retailhub/pos-api/internal/catalog/domain"
	"github.com/retailhub/pos-api/internal/config"
	purchasedomain "github.com/retailhub/pos-api/internal/purchase/domain"
	"github.com/retailhub/pos-api/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql are development conveniences; the schema
			// is small enough for AutoMigrate to stay faithful to the SQL
			if err := conn.AutoMigrate(
				&catalogdomain.Product{},
				&purchasedomain.Transaction{},
				&purchasedomain.TransactionDetail{},
			); err != nil {
				return err
			}
		}

		if cfg.IsDevelopment() {
			return seed.EnsureSampleCatalog(conn)
		}
		return nil
	}),
)
