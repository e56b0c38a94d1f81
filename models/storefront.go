// ════════════════════════════════════════════════════════════
// STOREFRONT MODELS
// File: models/storefront.go
// ════════════════════════════════════════════════════════════

package models

// ProductCard is the product record exchanged by the storefront read paths
// (search results, browsing-history rails, wishlist).
type ProductCard struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	ImageURL     string   `json:"imageUrl"`
	Price        float64  `json:"price"`
	ListPrice    *float64 `json:"listPrice,omitempty"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
	AvgRating    *float64 `json:"avgRating,omitempty"`
	NumReviews   *int     `json:"numReviews,omitempty"`
	CountInStock *int     `json:"countInStock,omitempty"`
}

// StorefrontProduct is the product detail page payload.
type StorefrontProduct struct {
	ProductCard
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// StorefrontCategory represents a category in the storefront
type StorefrontCategory struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Slug          string               `json:"slug"`
	Description   string               `json:"description"`
	ParentID      *string              `json:"parent_id"`
	ProductCount  int                  `json:"product_count"`
	Subcategories []StorefrontCategory `json:"subcategories,omitempty"`
}

// StorefrontBrand represents a brand in the storefront
type StorefrontBrand struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	LogoURL      string `json:"logo_url,omitempty"`
	ProductCount int    `json:"product_count"`
}
