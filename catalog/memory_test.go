package catalog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

func fixtureProducts() []models.Product {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(n int, name, category, brand string, price, rating float64, sales int, tags ...string) models.Product {
		return models.Product{
			ID:          uuid.MustParse(fmt.Sprintf("00000000-0000-7000-8000-%012d", n)),
			Name:        name,
			Slug:        fmt.Sprintf("product-%d", n),
			Category:    category,
			Brand:       brand,
			Price:       price,
			AvgRating:   rating,
			NumSales:    sales,
			Tags:        datatypes.JSONSlice[string](tags),
			IsPublished: true,
			CreatedAt:   base.Add(time.Duration(n) * time.Hour),
		}
	}
	products := []models.Product{
		mk(1, "Trail Runner", "shoes", "nike", 30, 4.5, 10, "sale"),
		mk(2, "Court Classic", "shoes", "adidas", 60, 4.0, 50),
		mk(3, "Summer Cap", "hats", "nike", 15, 3.5, 5, "summer"),
		mk(4, "Wool Beanie", "hats", "puma", 20, 4.8, 20),
		mk(5, "City Sneaker", "shoes", "puma", 45, 4.2, 30, "sale"),
	}
	hidden := mk(6, "Hidden Boot", "shoes", "nike", 40, 5, 100)
	hidden.IsPublished = false
	return append(products, hidden)
}

func pageIDs(p search.Page) []string {
	ids := make([]string, len(p.Products))
	for i, c := range p.Products {
		ids[i] = c.Slug
	}
	return ids
}

func TestMemoryRepository_Search(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository(fixtureProducts()...)
	ctx := context.Background()

	tests := []struct {
		name      string
		state     func(s *search.FilterState)
		wantSlugs []string
		wantTotal int
	}{
		{
			name:      "defaults sort by sales and hide unpublished",
			wantSlugs: []string{"product-2", "product-5", "product-4", "product-1", "product-3"},
			wantTotal: 5,
		},
		{
			name: "shoes between 10 and 50 rated 4 and up",
			state: func(s *search.FilterState) {
				s.Category = "shoes"
				s.Price = "10-50"
				s.Rating = "4"
			},
			wantSlugs: []string{"product-5", "product-1"},
			wantTotal: 2,
		},
		{
			name:      "price low to high",
			state:     func(s *search.FilterState) { s.Sort = search.SortPriceLowToHigh; s.Brand = "nike" },
			wantSlugs: []string{"product-3", "product-1"},
			wantTotal: 2,
		},
		{
			name:      "newest arrivals",
			state:     func(s *search.FilterState) { s.Sort = search.SortNewestArrivals; s.Tag = "sale" },
			wantSlugs: []string{"product-5", "product-1"},
			wantTotal: 2,
		},
		{
			name:      "text search",
			state:     func(s *search.FilterState) { s.Query = "sneaker" },
			wantSlugs: []string{"product-5"},
			wantTotal: 1,
		},
		{
			name:      "unknown brand is empty not an error",
			state:     func(s *search.FilterState) { s.Brand = "no-such-brand" },
			wantSlugs: []string{},
			wantTotal: 0,
		},
		{
			name:      "invalid price is empty not an error",
			state:     func(s *search.FilterState) { s.Price = "cheap" },
			wantSlugs: []string{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := search.Defaults()
			if tt.state != nil {
				tt.state(&s)
			}
			page, err := repo.Search(ctx, search.Derive(s))
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlugs, pageIDs(page))
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.NotNil(t, page.Products)
		})
	}
}

func TestMemoryRepository_SearchPagination(t *testing.T) {
	t.Parallel()

	var products []models.Product
	for i := 1; i <= 20; i++ {
		products = append(products, models.Product{
			ID:          uuid.MustParse(fmt.Sprintf("00000000-0000-7000-8000-%012d", i)),
			Slug:        fmt.Sprintf("p-%d", i),
			Price:       float64(i),
			IsPublished: true,
		})
	}
	repo := NewMemoryRepository(products...)

	s := search.Defaults()
	s.Sort = search.SortPriceLowToHigh
	s.Page = "3"
	page, err := repo.Search(context.Background(), search.Derive(s))
	require.NoError(t, err)

	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 20, page.Total)
	assert.Equal(t, []string{"p-19", "p-20"}, pageIDs(page))

	s.Page = "9"
	page, err = repo.Search(context.Background(), search.Derive(s))
	require.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.Equal(t, 20, page.Total)
}

func TestMemoryRepository_ReadProducts(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository(fixtureProducts()...)
	ctx := context.Background()
	id := func(n int) string { return fmt.Sprintf("00000000-0000-7000-8000-%012d", n) }

	t.Run("history keeps recency order and skips unpublished", func(t *testing.T) {
		t.Parallel()
		got, err := repo.ReadProducts(ctx, history.ReadQuery{
			Mode: history.ModeHistory,
			IDs:  []string{id(3), id(6), id(1)},
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, id(3), got[0].ID)
		assert.Equal(t, id(1), got[1].ID)
	})

	t.Run("related excludes viewed products", func(t *testing.T) {
		t.Parallel()
		got, err := repo.ReadProducts(ctx, history.ReadQuery{
			Mode:       history.ModeRelated,
			IDs:        []string{id(1)},
			Categories: []string{"shoes"},
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, id(2), got[0].ID)
		assert.Equal(t, id(5), got[1].ID)
	})

	t.Run("related without categories falls back to anything unseen", func(t *testing.T) {
		t.Parallel()
		got, err := repo.ReadProducts(ctx, history.ReadQuery{
			Mode:       history.ModeRelated,
			IDs:        []string{id(2), "garbage"},
			Categories: []string{"", "  "},
		})
		require.NoError(t, err)
		assert.Len(t, got, 4)
		for _, p := range got {
			assert.NotEqual(t, id(2), p.ID)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()
		got, err := repo.ReadProducts(ctx, history.ReadQuery{Mode: history.ModeHistory, IDs: []string{"nope"}})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestMemoryRepository_BySlug(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepository(fixtureProducts()...)

	p, err := repo.BySlug(context.Background(), "product-2")
	require.NoError(t, err)
	assert.Equal(t, "Court Classic", p.Name)

	_, err = repo.BySlug(context.Background(), "product-6")
	assert.ErrorIs(t, err, ErrNotFound)
}
