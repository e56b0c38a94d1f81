package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

func ptr[T any](v T) *T { return &v }

func TestDerive(t *testing.T) {
	t.Parallel()

	t.Run("defaults constrain nothing", func(t *testing.T) {
		t.Parallel()
		q := Derive(Defaults())
		assert.Equal(t, QuerySpec{Sort: SortBestSelling, Page: 1, Limit: PageSize}, q)
	})

	t.Run("shoes between 10 and 50 rated 4 and up", func(t *testing.T) {
		t.Parallel()
		s := Defaults()
		s.Category = "shoes"
		s.Price = "10-50"
		s.Rating = "4"

		q := Derive(s)
		assert.Equal(t, "shoes", q.Category)
		assert.Empty(t, q.Brand)
		require.NotNil(t, q.Price)
		assert.Equal(t, 10.0, *q.Price.Min)
		assert.Equal(t, 50.0, *q.Price.Max)
		require.NotNil(t, q.MinRate)
		assert.Equal(t, 4.0, *q.MinRate)
		assert.False(t, q.Unsatisfiable)
	})

	t.Run("unknown sort falls back", func(t *testing.T) {
		t.Parallel()
		s := Defaults()
		s.Sort = "cheapest"
		assert.Equal(t, SortBestSelling, Derive(s).Sort)
	})

	t.Run("bad page becomes first page", func(t *testing.T) {
		t.Parallel()
		for _, p := range []string{"0", "-2", "abc", ""} {
			s := Defaults()
			s.Page = p
			assert.Equal(t, 1, Derive(s).Page, p)
		}
	})

	t.Run("page offset", func(t *testing.T) {
		t.Parallel()
		s := Defaults()
		s.Page = "3"
		assert.Equal(t, 2*PageSize, Derive(s).Offset())
	})

	t.Run("unparsable price or rating is unsatisfiable", func(t *testing.T) {
		t.Parallel()
		s := Defaults()
		s.Price = "cheap"
		assert.True(t, Derive(s).Unsatisfiable)

		s = Defaults()
		s.Rating = "great"
		assert.True(t, Derive(s).Unsatisfiable)
	})

	t.Run("non-finite price or rating is unsatisfiable", func(t *testing.T) {
		t.Parallel()
		tests := []struct{ price, rating string }{
			{rating: "NaN"},
			{rating: "Inf"},
			{rating: "+Inf"},
			{price: "NaN-"},
			{price: "-NaN"},
			{price: "10-Inf"},
			{price: "NaN-", rating: "NaN"},
		}
		for _, tt := range tests {
			s := Defaults()
			if tt.price != "" {
				s.Price = tt.price
			}
			if tt.rating != "" {
				s.Rating = tt.rating
			}
			q := Derive(s)
			assert.True(t, q.Unsatisfiable, "price=%q rating=%q", tt.price, tt.rating)
			assert.Nil(t, q.MinRate)
			assert.Nil(t, q.Price)
		}
	})
}

func TestParsePriceRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		wantOK  bool
		wantMin *float64
		wantMax *float64
	}{
		{in: "10-50", wantOK: true, wantMin: ptr(10.0), wantMax: ptr(50.0)},
		{in: "0.5-20.25", wantOK: true, wantMin: ptr(0.5), wantMax: ptr(20.25)},
		{in: "50-", wantOK: true, wantMin: ptr(50.0)},
		{in: "-20", wantOK: true, wantMax: ptr(20.0)},
		{in: "-", wantOK: false},
		{in: "50", wantOK: false},
		{in: "a-b", wantOK: false},
		{in: "NaN-", wantOK: false},
		{in: "-NaN", wantOK: false},
		{in: "Inf-", wantOK: false},
		{in: "10-Inf", wantOK: false},
		{in: "10-infinity", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			r, ok := ParsePriceRange(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantMin, r.Min)
			assert.Equal(t, tt.wantMax, r.Max)
		})
	}
}

func TestQuerySpec_Match(t *testing.T) {
	t.Parallel()

	shoe := models.Product{
		Name:        "Classic Runner",
		Description: "Lightweight trainer",
		Category:    "shoes",
		Brand:       "nike",
		Tags:        datatypes.JSONSlice[string]{"summer", "sale"},
		Price:       30,
		AvgRating:   4.5,
	}

	base := Defaults()
	base.Category = "shoes"
	base.Price = "10-50"
	base.Rating = "4"

	tests := []struct {
		name  string
		patch func(s *FilterState)
		prod  func(p *models.Product)
		want  bool
	}{
		{name: "all facets satisfied", want: true},
		{name: "brand all is ignored", prod: func(p *models.Product) { p.Brand = "adidas" }, want: true},
		{name: "wrong category", prod: func(p *models.Product) { p.Category = "hats" }, want: false},
		{name: "price above range", prod: func(p *models.Product) { p.Price = 50.01 }, want: false},
		{name: "price on upper bound", prod: func(p *models.Product) { p.Price = 50 }, want: true},
		{name: "rating below threshold", prod: func(p *models.Product) { p.AvgRating = 3.9 }, want: false},
		{name: "tag present", patch: func(s *FilterState) { s.Tag = "sale" }, want: true},
		{name: "tag absent", patch: func(s *FilterState) { s.Tag = "winter" }, want: false},
		{name: "text matches name case-insensitively", patch: func(s *FilterState) { s.Query = "RUNNER" }, want: true},
		{name: "text matches description", patch: func(s *FilterState) { s.Query = "trainer" }, want: true},
		{name: "text misses", patch: func(s *FilterState) { s.Query = "boot" }, want: false},
		{name: "unknown brand matches nothing", patch: func(s *FilterState) { s.Brand = "no-such-brand" }, want: false},
		{name: "bad price matches nothing", patch: func(s *FilterState) { s.Price = "free" }, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := base
			if tt.patch != nil {
				tt.patch(&s)
			}
			p := shoe
			if tt.prod != nil {
				tt.prod(&p)
			}
			assert.Equal(t, tt.want, Derive(s).Match(p))
		})
	}
}

func TestQuerySpec_Values(t *testing.T) {
	t.Parallel()

	s := Defaults()
	s.Category = "shoes"
	s.Price = "10-"
	s.Rating = "4.5"
	s.Sort = SortPriceHighToLow
	s.Page = "2"

	v := Derive(s).Values()
	assert.Equal(t, "shoes", v.Get(ParamCategory))
	assert.Equal(t, "10-", v.Get(ParamPrice))
	assert.Equal(t, "4.5", v.Get(ParamRating))
	assert.Equal(t, SortPriceHighToLow, v.Get(ParamSort))
	assert.Equal(t, "2", v.Get(ParamPage))
	assert.False(t, v.Has(ParamBrand))

	assert.Equal(t, Derive(s), Derive(FromValues(v)))
}
