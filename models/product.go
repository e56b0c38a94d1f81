package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ═══════════════════════════════════════════════════════════
// Main Product Model (GORM)
// ═══════════════════════════════════════════════════════════

// Product is the catalog document. Category and Brand hold slugs so a product
// can be matched against storefront facets without joins.
type Product struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Name         string                      `json:"name" gorm:"not null;index"`
	Slug         string                      `json:"slug" gorm:"not null;uniqueIndex"`
	Description  string                      `json:"description" gorm:"not null;default:''"`
	ImageURL     string                      `json:"image_url" gorm:"column:image_url;not null;default:''"`
	Price        float64                     `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	ListPrice    *float64                    `json:"list_price,omitempty" gorm:"type:numeric(12,2)"`
	Category     string                      `json:"category" gorm:"not null;index"`
	Brand        string                      `json:"brand" gorm:"not null;index"`
	Tags         datatypes.JSONSlice[string] `json:"tags" gorm:"type:jsonb;not null;default:'[]'"`
	AvgRating    float64                     `json:"avg_rating" gorm:"not null;default:0"`
	NumReviews   int                         `json:"num_reviews" gorm:"not null;default:0"`
	CountInStock int                         `json:"count_in_stock" gorm:"not null;default:0;check:count_in_stock >= 0"`
	NumSales     int                         `json:"num_sales" gorm:"not null;default:0;index"`
	Views        int                         `json:"views" gorm:"default:0"`
	IsPublished  bool                        `json:"is_published" gorm:"not null;default:true;index"`
	CreatedAt    time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// BeforeCreate hook - auto-generate UUID v7
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV7())
	}
	if p.Tags == nil {
		p.Tags = datatypes.JSONSlice[string]{}
	}
	return nil
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Card converts the document into the storefront record shape.
func (p Product) Card() ProductCard {
	card := ProductCard{
		ID:        p.ID.String(),
		Name:      p.Name,
		Slug:      p.Slug,
		ImageURL:  p.ImageURL,
		Price:     p.Price,
		ListPrice: p.ListPrice,
		Category:  p.Category,
		Brand:     p.Brand,
	}
	rating, reviews, stock := p.AvgRating, p.NumReviews, p.CountInStock
	card.AvgRating = &rating
	card.NumReviews = &reviews
	card.CountInStock = &stock
	return card
}

// ═══════════════════════════════════════════════════════════
// Request Models
// ═══════════════════════════════════════════════════════════

type ProductRequest struct {
	Name         string   `json:"name" binding:"required" example:"Classic Runner"`
	Slug         string   `json:"slug" example:"classic-runner"`
	Description  string   `json:"description" example:"Lightweight running shoe"`
	ImageURL     string   `json:"image_url" binding:"required" example:"https://cdn.modeva.com/p/classic-runner.jpg"`
	Price        float64  `json:"price" binding:"required,min=0" example:"49.99"`
	ListPrice    *float64 `json:"list_price,omitempty" binding:"omitempty,min=0" example:"59.99"`
	Category     string   `json:"category" binding:"required" example:"shoes"`
	Brand        string   `json:"brand" binding:"required" example:"nike"`
	Tags         []string `json:"tags" example:"['new-arrival', 'summer']"`
	CountInStock int      `json:"count_in_stock" binding:"min=0" example:"25"`
	IsPublished  *bool    `json:"is_published,omitempty"`
}

type UpdateProductRequest struct {
	Name         *string   `json:"name"`
	Slug         *string   `json:"slug"`
	Description  *string   `json:"description"`
	ImageURL     *string   `json:"image_url"`
	Price        *float64  `json:"price" binding:"omitempty,min=0"`
	ListPrice    *float64  `json:"list_price" binding:"omitempty,min=0"`
	Category     *string   `json:"category"`
	Brand        *string   `json:"brand"`
	Tags         *[]string `json:"tags"`
	CountInStock *int      `json:"count_in_stock" binding:"omitempty,min=0"`
	IsPublished  *bool     `json:"is_published"`
}
