package search

import (
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// PageSize is the number of products per results page.
const PageSize = 9

// Sort keys accepted by the storefront.
const (
	SortBestSelling       = "best-selling"
	SortPriceLowToHigh    = "price-low-to-high"
	SortPriceHighToLow    = "price-high-to-low"
	SortNewestArrivals    = "newest-arrivals"
	SortAvgCustomerReview = "avg-customer-review"
)

// SortKeys lists the supported sort keys in display order.
var SortKeys = []string{
	SortBestSelling,
	SortPriceLowToHigh,
	SortPriceHighToLow,
	SortNewestArrivals,
	SortAvgCustomerReview,
}

// PriceRange is an inclusive price bound; a nil side is open.
type PriceRange struct {
	Min *float64
	Max *float64
}

// QuerySpec is the resolved product query for a FilterState. Empty string
// fields and nil pointers are unconstrained.
type QuerySpec struct {
	Text     string
	Category string
	Tag      string
	Brand    string
	Price    *PriceRange
	MinRate  *float64
	Sort     string
	Page     int
	Limit    int

	// Unsatisfiable is set when a facet value cannot match any product,
	// e.g. a price range that does not parse.
	Unsatisfiable bool
}

// Offset is the number of products to skip for Page.
func (q QuerySpec) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Values encodes the spec back into search endpoint parameters.
func (q QuerySpec) Values() url.Values {
	v := url.Values{}
	if q.Text != "" {
		v.Set(ParamQuery, q.Text)
	}
	if q.Category != "" {
		v.Set(ParamCategory, q.Category)
	}
	if q.Tag != "" {
		v.Set(ParamTag, q.Tag)
	}
	if q.Brand != "" {
		v.Set(ParamBrand, q.Brand)
	}
	if q.Price != nil {
		v.Set(ParamPrice, q.Price.String())
	}
	if q.MinRate != nil {
		v.Set(ParamRating, formatFloat(*q.MinRate))
	}
	if q.Sort != "" && q.Sort != DefaultSort {
		v.Set(ParamSort, q.Sort)
	}
	if q.Page > 1 {
		v.Set(ParamPage, strconv.Itoa(q.Page))
	}
	return v
}

// String renders the range in its URL form.
func (r PriceRange) String() string {
	var lo, hi string
	if r.Min != nil {
		lo = formatFloat(*r.Min)
	}
	if r.Max != nil {
		hi = formatFloat(*r.Max)
	}
	return lo + "-" + hi
}

// Derive resolves a FilterState into a QuerySpec. It never fails: values that
// cannot be interpreted make the spec unsatisfiable instead.
func Derive(s FilterState) QuerySpec {
	q := QuerySpec{
		Text:     facet(s.Query),
		Category: facet(s.Category),
		Tag:      facet(s.Tag),
		Brand:    facet(s.Brand),
		Sort:     normalizeSort(s.Sort),
		Page:     parsePage(s.Page),
		Limit:    PageSize,
	}

	if v := facet(s.Price); v != "" {
		r, ok := ParsePriceRange(v)
		if ok {
			q.Price = &r
		} else {
			q.Unsatisfiable = true
		}
	}

	if v := facet(s.Rating); v != "" {
		if r, ok := parseAmount(v); ok {
			q.MinRate = &r
		} else {
			q.Unsatisfiable = true
		}
	}

	return q
}

// ParsePriceRange parses "min-max", "min-" or "-max".
func ParsePriceRange(v string) (PriceRange, bool) {
	lo, hi, found := strings.Cut(v, "-")
	if !found {
		return PriceRange{}, false
	}
	var r PriceRange
	if lo = strings.TrimSpace(lo); lo != "" {
		n, ok := parseAmount(lo)
		if !ok {
			return PriceRange{}, false
		}
		r.Min = &n
	}
	if hi = strings.TrimSpace(hi); hi != "" {
		n, ok := parseAmount(hi)
		if !ok {
			return PriceRange{}, false
		}
		r.Max = &n
	}
	if r.Min == nil && r.Max == nil {
		return PriceRange{}, false
	}
	return r, true
}

// parseAmount accepts finite, non-negative numbers only. NaN and Inf parse
// but compare differently in Go and in SQL.
func parseAmount(v string) (float64, bool) {
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0, false
	}
	return n, true
}

// Match reports whether p satisfies every constrained facet. It is the
// in-memory twin of the catalog's SQL predicate.
func (q QuerySpec) Match(p models.Product) bool {
	if q.Unsatisfiable {
		return false
	}
	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Description), needle) {
			return false
		}
	}
	if q.Category != "" && p.Category != q.Category {
		return false
	}
	if q.Brand != "" && p.Brand != q.Brand {
		return false
	}
	if q.Tag != "" && !slices.Contains(p.Tags, q.Tag) {
		return false
	}
	if q.Price != nil {
		if q.Price.Min != nil && p.Price < *q.Price.Min {
			return false
		}
		if q.Price.Max != nil && p.Price > *q.Price.Max {
			return false
		}
	}
	if q.MinRate != nil && p.AvgRating < *q.MinRate {
		return false
	}
	return true
}

func facet(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == All {
		return ""
	}
	return v
}

func normalizeSort(v string) string {
	if slices.Contains(SortKeys, v) {
		return v
	}
	return DefaultSort
}

func parsePage(v string) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
