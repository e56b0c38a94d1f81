package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Brand represents a product brand. Products reference it by Slug.
type Brand struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"not null;uniqueIndex"`
	Description string    `json:"description" gorm:"not null;default:''"`
	LogoURL     string    `json:"logo_url" gorm:"not null;default:''"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Brand) TableName() string {
	return "brands"
}

type BrandRequest struct {
	Name        string `json:"name" binding:"required" example:"Nike"`
	Slug        string `json:"slug" example:"nike"`
	Description string `json:"description" example:"Sportswear"`
	LogoURL     string `json:"logo_url" example:"https://cdn.modeva.com/brands/nike.png"`
}

type UpdateBrandRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
}
