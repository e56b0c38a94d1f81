package product_controller

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"gorm.io/gorm"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// referenceError is a request problem found while validating category and
// brand slugs.
type referenceError struct {
	status  int
	message string
}

// validateReferences checks that the category and brand slugs exist. Empty
// values are skipped.
func validateReferences(ctx context.Context, db *gorm.DB, category, brand string) (*referenceError, error) {
	if category != "" {
		var n int64
		if err := db.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", category).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return &referenceError{http.StatusBadRequest, "Unknown category: " + category}, nil
		}
	}
	if brand != "" {
		var n int64
		if err := db.WithContext(ctx).Model(&models.Brand{}).Where("slug = ?", brand).Count(&n).Error; err != nil {
			return nil, err
		}
		if n == 0 {
			return &referenceError{http.StatusBadRequest, "Unknown brand: " + brand}, nil
		}
	}
	return nil, nil
}

// cleanTags trims tags and drops blanks and duplicates, keeping order.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
