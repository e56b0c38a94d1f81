package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const dbSetupTimeout = 2 * time.Minute

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, log, err := connectDB()
			if err != nil {
				return err
			}
			defer config.CloseDB()

			ctx, cancel := config.WithCustomTimeout(dbSetupTimeout)
			defer cancel()

			if err := config.CatalogGorm.WithContext(ctx).AutoMigrate(
				&models.Brand{},
				&models.Category{},
				&models.Product{},
				&models.Order{},
				&models.OrderItem{},
				&models.WishlistItem{},
			); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			log.Info("✅ schema up to date", zap.String("database", config.CatalogGorm.Migrator().CurrentDatabase()))
			return nil
		},
	}
}
