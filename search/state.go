// Package search holds the storefront filter state: the facet selection a
// shopper builds up, its URL form, and the query it derives.
package search

import (
	"net/url"
	"strings"
)

// All marks a facet as unconstrained.
const All = "all"

const (
	DefaultSort = SortBestSelling
	DefaultPage = "1"
)

// Query parameter names shared by the storefront URL and the search endpoint.
const (
	ParamQuery    = "q"
	ParamCategory = "category"
	ParamTag      = "tag"
	ParamPrice    = "price"
	ParamRating   = "rating"
	ParamBrand    = "brand"
	ParamSort     = "sort"
	ParamPage     = "page"
)

// FilterState is the current facet, sort and page selection. Every field is a
// string as it appears in the URL; a field equal to its default applies no
// filter.
type FilterState struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Tag      string `json:"tag"`
	Price    string `json:"price"`
	Rating   string `json:"rating"`
	Brand    string `json:"brand"`
	Sort     string `json:"sort"`
	Page     string `json:"page"`
}

// Defaults returns the state with no filter applied.
func Defaults() FilterState {
	return FilterState{
		Query:    All,
		Category: All,
		Tag:      All,
		Price:    All,
		Rating:   All,
		Brand:    All,
		Sort:     DefaultSort,
		Page:     DefaultPage,
	}
}

// FromValues derives a state from request query parameters. Absent or blank
// parameters keep their default.
func FromValues(v url.Values) FilterState {
	s := Defaults()
	for _, f := range s.fields() {
		if raw := strings.TrimSpace(v.Get(f.param)); raw != "" {
			*f.ptr = raw
		}
	}
	return s
}

// Values returns the non-default fields as query parameters.
func (s FilterState) Values() url.Values {
	v := url.Values{}
	d := Defaults()
	df := d.fields()
	for i, f := range s.fields() {
		if *f.ptr != *df[i].ptr {
			v.Set(f.param, *f.ptr)
		}
	}
	return v
}

// Encode renders Values as a query string with stable key order.
func (s FilterState) Encode() string {
	return s.Values().Encode()
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Query    *string
	Category *string
	Tag      *string
	Price    *string
	Rating   *string
	Brand    *string
	Sort     *string
	Page     *string
}

// TouchesFilters reports whether the patch sets anything besides Page.
func (p Patch) TouchesFilters() bool {
	return p.Query != nil || p.Category != nil || p.Tag != nil || p.Price != nil ||
		p.Rating != nil || p.Brand != nil || p.Sort != nil
}

// Apply merges p into s. Changing any field other than Page sends the
// shopper back to page 1.
func (s FilterState) Apply(p Patch) FilterState {
	set := func(dst *string, src *string, def string) {
		if src == nil {
			return
		}
		if v := strings.TrimSpace(*src); v != "" {
			*dst = v
		} else {
			*dst = def
		}
	}
	set(&s.Query, p.Query, All)
	set(&s.Category, p.Category, All)
	set(&s.Tag, p.Tag, All)
	set(&s.Price, p.Price, All)
	set(&s.Rating, p.Rating, All)
	set(&s.Brand, p.Brand, All)
	set(&s.Sort, p.Sort, DefaultSort)
	set(&s.Page, p.Page, DefaultPage)
	if p.TouchesFilters() {
		s.Page = DefaultPage
	}
	return s
}

type field struct {
	param string
	ptr   *string
}

func (s *FilterState) fields() []field {
	return []field{
		{ParamQuery, &s.Query},
		{ParamCategory, &s.Category},
		{ParamTag, &s.Tag},
		{ParamPrice, &s.Price},
		{ParamRating, &s.Rating},
		{ParamBrand, &s.Brand},
		{ParamSort, &s.Sort},
		{ParamPage, &s.Page},
	}
}

// String returns a pointer to v, for building patches.
func String(v string) *string { return &v }
