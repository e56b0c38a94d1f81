package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

type seedCategory struct {
	name, slug string
	children   []seedCategory
}

var seedCategories = []seedCategory{
	{name: "Men", slug: "men", children: []seedCategory{
		{name: "Men's Shoes", slug: "mens-shoes"},
		{name: "Men's Shirts", slug: "mens-shirts"},
	}},
	{name: "Women", slug: "women", children: []seedCategory{
		{name: "Women's Dresses", slug: "womens-dresses"},
		{name: "Women's Shoes", slug: "womens-shoes"},
	}},
	{name: "Accessories", slug: "accessories"},
}

var seedBrands = []models.Brand{
	{Name: "Nike", Slug: "nike", Description: "Sportswear"},
	{Name: "Adidas", Slug: "adidas", Description: "Sportswear"},
	{Name: "Zara", Slug: "zara", Description: "Fast fashion"},
	{Name: "Modeva Studio", Slug: "modeva-studio", Description: "House label"},
}

func listPrice(v float64) *float64 { return &v }

var seedProducts = []models.Product{
	{Name: "Air Runner", Slug: "air-runner", Category: "mens-shoes", Brand: "nike", Price: 89.99, ListPrice: listPrice(109.99), Tags: datatypes.JSONSlice[string]{"running", "sale"}, CountInStock: 40, NumSales: 120, AvgRating: 4.6, NumReviews: 58},
	{Name: "Court Classic", Slug: "court-classic", Category: "mens-shoes", Brand: "adidas", Price: 74.5, Tags: datatypes.JSONSlice[string]{"casual"}, CountInStock: 25, NumSales: 64, AvgRating: 4.2, NumReviews: 31},
	{Name: "Oxford Shirt", Slug: "oxford-shirt", Category: "mens-shirts", Brand: "modeva-studio", Price: 45, Tags: datatypes.JSONSlice[string]{"office", "new-arrival"}, CountInStock: 60, NumSales: 18, AvgRating: 3.9, NumReviews: 7},
	{Name: "Linen Shirt", Slug: "linen-shirt", Category: "mens-shirts", Brand: "zara", Price: 39.9, Tags: datatypes.JSONSlice[string]{"summer"}, CountInStock: 35, NumSales: 42, AvgRating: 4.1, NumReviews: 12},
	{Name: "Wrap Dress", Slug: "wrap-dress", Category: "womens-dresses", Brand: "zara", Price: 59.9, ListPrice: listPrice(69.9), Tags: datatypes.JSONSlice[string]{"summer", "sale"}, CountInStock: 22, NumSales: 88, AvgRating: 4.7, NumReviews: 40},
	{Name: "Evening Gown", Slug: "evening-gown", Category: "womens-dresses", Brand: "modeva-studio", Price: 189, Tags: datatypes.JSONSlice[string]{"formal", "new-arrival"}, CountInStock: 8, NumSales: 5, AvgRating: 5, NumReviews: 3},
	{Name: "Cloud Trainer", Slug: "cloud-trainer", Category: "womens-shoes", Brand: "nike", Price: 99.99, Tags: datatypes.JSONSlice[string]{"running"}, CountInStock: 30, NumSales: 97, AvgRating: 4.4, NumReviews: 50},
	{Name: "Canvas Tote", Slug: "canvas-tote", Category: "accessories", Brand: "modeva-studio", Price: 24, Tags: datatypes.JSONSlice[string]{"summer"}, CountInStock: 100, NumSales: 150, AvgRating: 4.3, NumReviews: 22},
	{Name: "Sport Cap", Slug: "sport-cap", Category: "accessories", Brand: "adidas", Price: 19.99, Tags: datatypes.JSONSlice[string]{"running", "sale"}, CountInStock: 75, NumSales: 33, AvgRating: 3.8, NumReviews: 9},
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load sample brands, categories and products",
		Long: "seed inserts a small sample catalog. Rows whose slug already exists are\n" +
			"left untouched, so the command is safe to run repeatedly.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := connectDB(); err != nil {
				return err
			}
			defer config.CloseDB()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "════════════════════════════════════════════════════════════")
			fmt.Fprintln(out, "MODEVA - Sample Catalog Seeder")
			fmt.Fprintln(out, "════════════════════════════════════════════════════════════")

			ctx, cancel := config.WithCustomTimeout(dbSetupTimeout)
			defer cancel()

			err := config.CatalogGorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				return seedCatalog(tx, out)
			})
			if err != nil {
				return fmt.Errorf("seeding catalog: %w", err)
			}
			fmt.Fprintln(out, "✅ Sample catalog ready")
			return nil
		},
	}
}

func seedCatalog(tx *gorm.DB, out io.Writer) error {
	ignore := clause.OnConflict{Columns: []clause.Column{{Name: "slug"}}, DoNothing: true}

	brands := make([]models.Brand, len(seedBrands))
	copy(brands, seedBrands)
	res := tx.Clauses(ignore).Create(&brands)
	if res.Error != nil {
		return res.Error
	}
	fmt.Fprintf(out, "✓ %d brands\n", res.RowsAffected)

	categories := 0
	for _, parent := range seedCategories {
		row := models.Category{Name: parent.name, Slug: parent.slug, Status: "Active"}
		res := tx.Clauses(ignore).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		categories += int(res.RowsAffected)
		if err := tx.Where("slug = ?", parent.slug).First(&row).Error; err != nil {
			return err
		}

		for _, child := range parent.children {
			parentID, parentName := row.ID, row.Name
			sub := models.Category{
				Name:       child.name,
				Slug:       child.slug,
				Status:     "Active",
				ParentID:   &parentID,
				ParentName: &parentName,
			}
			res := tx.Clauses(ignore).Create(&sub)
			if res.Error != nil {
				return res.Error
			}
			categories += int(res.RowsAffected)
		}
	}
	fmt.Fprintf(out, "✓ %d categories\n", categories)

	products := make([]models.Product, len(seedProducts))
	for i, p := range seedProducts {
		p.Description = p.Name + " from the Modeva sample catalog."
		p.ImageURL = "https://cdn.modeva.com/p/" + p.Slug + ".jpg"
		p.IsPublished = true
		products[i] = p
	}
	res = tx.Clauses(ignore).Create(&products)
	if res.Error != nil {
		return res.Error
	}
	fmt.Fprintf(out, "✓ %d products\n", res.RowsAffected)
	return nil
}
