package catalog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/history"
	"github.com/Modeva-Ecommerce/modeva-storefront/search"
)

const productColumns = `p.id, p.name, p.slug, p.description, p.image_url, p.price, p.list_price,
	p.category, p.brand, p.tags, p.avg_rating, p.num_reviews, p.count_in_stock,
	p.num_sales, p.created_at, p.updated_at`

// orderClauses maps sort keys to ORDER BY expressions. Every key ends on
// p.id so pages are stable.
var orderClauses = map[string]string{
	search.SortBestSelling:       "p.num_sales DESC, p.created_at DESC, p.id ASC",
	search.SortPriceLowToHigh:    "p.price ASC, p.id ASC",
	search.SortPriceHighToLow:    "p.price DESC, p.id ASC",
	search.SortNewestArrivals:    "p.created_at DESC, p.id ASC",
	search.SortAvgCustomerReview: "p.avg_rating DESC, p.num_reviews DESC, p.id ASC",
}

// OrderClause returns the ORDER BY expression for a sort key.
func OrderClause(sort string) string {
	if clause, ok := orderClauses[sort]; ok {
		return clause
	}
	return orderClauses[search.DefaultSort]
}

// SearchSQL builds the data and count queries for q, with gorm placeholders.
// The caller handles unsatisfiable specs without querying.
func SearchSQL(q search.QuerySpec) (dataSQL, countSQL string, args []any) {
	conditions := []string{"p.is_published = TRUE"}

	if q.Text != "" {
		pattern := "%" + escapeLike(q.Text) + "%"
		conditions = append(conditions, "(p.name ILIKE ? OR p.description ILIKE ?)")
		args = append(args, pattern, pattern)
	}
	if q.Category != "" {
		conditions = append(conditions, "p.category = ?")
		args = append(args, q.Category)
	}
	if q.Brand != "" {
		conditions = append(conditions, "p.brand = ?")
		args = append(args, q.Brand)
	}
	if q.Tag != "" {
		conditions = append(conditions, "p.tags @> ?::jsonb")
		args = append(args, jsonArray(q.Tag))
	}
	if q.Price != nil {
		if q.Price.Min != nil {
			conditions = append(conditions, "p.price >= ?")
			args = append(args, *q.Price.Min)
		}
		if q.Price.Max != nil {
			conditions = append(conditions, "p.price <= ?")
			args = append(args, *q.Price.Max)
		}
	}
	if q.MinRate != nil {
		conditions = append(conditions, "p.avg_rating >= ?")
		args = append(args, *q.MinRate)
	}

	where := strings.Join(conditions, " AND ")

	limit := q.Limit
	if limit <= 0 {
		limit = search.PageSize
	}
	offset := max(q.Offset(), 0)

	dataSQL = fmt.Sprintf(
		"SELECT %s FROM products p WHERE %s ORDER BY %s LIMIT %d OFFSET %d",
		productColumns, where, OrderClause(q.Sort), limit, offset,
	)
	countSQL = "SELECT COUNT(*) FROM products p WHERE " + where

	return dataSQL, countSQL, args
}

// ReadSQL builds the query for a browsing-history rail. q must be normalized.
func ReadSQL(q history.ReadQuery) (string, []any) {
	conditions := []string{"p.is_published = TRUE"}
	var args []any

	switch q.Mode {
	case history.ModeHistory:
		conditions = append(conditions, "p.id IN ?")
		args = append(args, q.IDs)
	case history.ModeRelated:
		if len(q.Categories) > 0 {
			conditions = append(conditions, "p.category IN ?")
			args = append(args, q.Categories)
		}
		if len(q.IDs) > 0 {
			conditions = append(conditions, "p.id NOT IN ?")
			args = append(args, q.IDs)
		}
	}

	limit := q.Limit
	if q.Mode == history.ModeHistory {
		limit = len(q.IDs)
	}

	return fmt.Sprintf(
		"SELECT %s FROM products p WHERE %s ORDER BY %s LIMIT %d",
		productColumns, strings.Join(conditions, " AND "), OrderClause(search.DefaultSort), limit,
	), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func jsonArray(v string) string {
	b, _ := json.Marshal([]string{v})
	return string(b)
}
