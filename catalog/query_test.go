package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

func ptr[T any](v T) *T { return &v }

func TestSearchSQL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		query         search.QuerySpec
		wantDataHas   []string
		wantDataNotIn []string
		wantCountSQL  string
		wantArgs      []any
	}{
		{
			name:  "defaults only filter published",
			query: search.Derive(search.Defaults()),
			wantDataHas: []string{
				"FROM products p WHERE p.is_published = TRUE ORDER BY",
				"ORDER BY p.num_sales DESC",
				"LIMIT 9 OFFSET 0",
			},
			wantDataNotIn: []string{"ILIKE", "p.category =", "p.price >="},
			wantCountSQL:  "SELECT COUNT(*) FROM products p WHERE p.is_published = TRUE",
		},
		{
			name:         "text search covers name and description",
			query:        search.QuerySpec{Text: "50%_off", Page: 1, Limit: 9},
			wantDataHas:  []string{"(p.name ILIKE ? OR p.description ILIKE ?)"},
			wantCountSQL: "SELECT COUNT(*) FROM products p WHERE p.is_published = TRUE AND (p.name ILIKE ? OR p.description ILIKE ?)",
			wantArgs:     []any{`%50\%\_off%`, `%50\%\_off%`},
		},
		{
			name: "category price and rating",
			query: search.QuerySpec{
				Category: "shoes",
				Price:    &search.PriceRange{Min: ptr(10.0), Max: ptr(50.0)},
				MinRate:  ptr(4.0),
				Page:     3,
				Limit:    9,
			},
			wantDataHas: []string{
				"p.category = ? AND p.price >= ? AND p.price <= ? AND p.avg_rating >= ?",
				"LIMIT 9 OFFSET 18",
			},
			wantArgs: []any{"shoes", 10.0, 50.0, 4.0},
		},
		{
			name:        "open ended price",
			query:       search.QuerySpec{Price: &search.PriceRange{Max: ptr(20.0)}, Page: 1, Limit: 9},
			wantDataHas: []string{"p.price <= ?"},
			wantDataNotIn: []string{
				"p.price >= ?",
			},
			wantArgs: []any{20.0},
		},
		{
			name:        "brand and tag",
			query:       search.QuerySpec{Brand: "nike", Tag: "sale", Page: 1, Limit: 9},
			wantDataHas: []string{"p.brand = ? AND p.tags @> ?::jsonb"},
			wantArgs:    []any{"nike", `["sale"]`},
		},
		{
			name:        "price sort",
			query:       search.QuerySpec{Sort: search.SortPriceHighToLow, Page: 1, Limit: 9},
			wantDataHas: []string{"ORDER BY p.price DESC, p.id ASC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, countSQL, args := SearchSQL(tt.query)

			for _, s := range tt.wantDataHas {
				assert.Contains(t, dataSQL, s)
			}
			for _, s := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, s)
			}
			if tt.wantCountSQL != "" {
				assert.Equal(t, tt.wantCountSQL, countSQL)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestOrderClause(t *testing.T) {
	t.Parallel()

	for _, key := range search.SortKeys {
		assert.Contains(t, OrderClause(key), "p.id ASC", key)
	}
	assert.Equal(t, OrderClause(search.SortBestSelling), OrderClause("bogus"))
	assert.Equal(t, "p.created_at DESC, p.id ASC", OrderClause(search.SortNewestArrivals))
}

func TestReadSQL(t *testing.T) {
	t.Parallel()

	ids := []string{"0190a5b2-7c3e-7d4f-8a1b-2c3d4e5f6a70", "0190a5b2-7c3e-7d4f-8a1b-2c3d4e5f6a71"}

	t.Run("history", func(t *testing.T) {
		t.Parallel()
		query, args := ReadSQL(history.ReadQuery{Mode: history.ModeHistory, IDs: ids, Limit: 10})
		assert.Contains(t, query, "p.is_published = TRUE AND p.id IN ?")
		assert.Contains(t, query, "LIMIT 2")
		assert.Equal(t, []any{ids}, args)
	})

	t.Run("related with categories", func(t *testing.T) {
		t.Parallel()
		query, args := ReadSQL(history.ReadQuery{
			Mode:       history.ModeRelated,
			IDs:        ids,
			Categories: []string{"shoes"},
			Limit:      10,
		})
		assert.Contains(t, query, "p.category IN ? AND p.id NOT IN ?")
		assert.Contains(t, query, "LIMIT 10")
		assert.Equal(t, []any{[]string{"shoes"}, ids}, args)
	})

	t.Run("related fallback", func(t *testing.T) {
		t.Parallel()
		query, args := ReadSQL(history.ReadQuery{Mode: history.ModeRelated, IDs: ids, Limit: 10})
		assert.NotContains(t, query, "p.category IN")
		assert.Contains(t, query, "p.id NOT IN ?")
		assert.Equal(t, []any{ids}, args)
	})
}
