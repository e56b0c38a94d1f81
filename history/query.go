package history

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// Mode selects which rail a ReadQuery serves.
type Mode string

const (
	// ModeHistory returns the viewed products themselves.
	ModeHistory Mode = "history"
	// ModeRelated returns products sharing a category with the history but
	// not in it.
	ModeRelated Mode = "related"
)

// DefaultLimit caps the related rail.
const DefaultLimit = 10

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ParseMode validates a wire mode.
func ParseMode(v string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(v))) {
	case ModeHistory:
		return ModeHistory, nil
	case ModeRelated:
		return ModeRelated, nil
	default:
		return "", fmt.Errorf("unknown browsing history type %q", v)
	}
}

// ReadQuery asks the catalog for one rail. In ModeHistory IDs are the
// products to return; in ModeRelated they are the products to exclude.
type ReadQuery struct {
	Mode       Mode
	IDs        []string
	Categories []string
	Limit      int
}

// Derive builds the query for mode from the current history.
func Derive(entries []Entry, mode Mode) ReadQuery {
	q := ReadQuery{Mode: mode, IDs: IDs(entries), Limit: DefaultLimit}
	if mode == ModeRelated {
		q.Categories = Categories(entries)
	}
	return q.Normalize()
}

// Normalize drops ids that are not UUIDs, categories that are not slugs, and
// duplicates of either. Order is preserved.
func (q ReadQuery) Normalize() ReadQuery {
	out := ReadQuery{Mode: q.Mode, Limit: q.Limit}
	if out.Limit <= 0 || out.Limit > DefaultLimit {
		out.Limit = DefaultLimit
	}

	seen := make(map[string]struct{}, len(q.IDs))
	for _, id := range q.IDs {
		id = strings.TrimSpace(id)
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out.IDs = append(out.IDs, id)
	}

	if q.Mode == ModeRelated {
		seenCat := make(map[string]struct{}, len(q.Categories))
		for _, c := range q.Categories {
			c = strings.TrimSpace(c)
			if !slugPattern.MatchString(c) {
				continue
			}
			if _, dup := seenCat[c]; dup {
				continue
			}
			seenCat[c] = struct{}{}
			out.Categories = append(out.Categories, c)
		}
	}
	return out
}

// Empty reports whether the query can only return nothing: both rails are
// empty when there is no history. A related query with ids but no usable
// categories still falls back to any product not in the history.
func (q ReadQuery) Empty() bool {
	return len(q.IDs) == 0
}

// OrderByIDs sorts products into the order of ids, dropping any product whose
// id is not listed.
func OrderByIDs(products []models.ProductCard, ids []string) []models.ProductCard {
	byID := make(map[string]models.ProductCard, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	out := make([]models.ProductCard, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
			delete(byID, id)
		}
	}
	return out
}

// IsSlug reports whether v is a lowercase, hyphen-separated slug.
func IsSlug(v string) bool {
	return slugPattern.MatchString(v)
}
