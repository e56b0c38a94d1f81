package order_controller

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

var errOrderNotFound = errors.New("order not found")

func loadOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := config.CatalogGorm.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}
