package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem links a visitor to a saved product.
type WishlistItem struct {
	VisitorID uuid.UUID `json:"visitor_id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID `json:"product_id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

type AddWishlistItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}
