// models/filters.go
package models

// FilterMetadata represents all filter data for the storefront
type FilterMetadata struct {
	Categories []CategoryData  `json:"categories"`
	Brands     []FilterOption  `json:"brands"`
	Tags       []FilterOption  `json:"tags"`
	PriceRange *PriceRangeData `json:"priceRange"`
	Ratings    []int           `json:"ratings"`
}

// CategoryData represents a category with optional subcategories
type CategoryData struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Slug          string         `json:"slug"`
	ParentID      string         `json:"parentId,omitempty"`
	Subcategories []CategoryData `json:"subcategories,omitempty"`
}

// FilterOption represents a single filter option
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// PriceRangeData represents the minimum and maximum price in the store
type PriceRangeData struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
