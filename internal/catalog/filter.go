package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField orders a filtered product list.
type SortField string

const (
	SortNone  SortField = ""
	SortPrice SortField = "price"
	SortName  SortField = "name"
)

// ParseSortField accepts "price" or "name"; anything else keeps file order.
func ParseSortField(v string) SortField {
	switch SortField(strings.ToLower(strings.TrimSpace(v))) {
	case SortPrice:
		return SortPrice
	case SortName:
		return SortName
	default:
		return SortNone
	}
}

// Query narrows and orders the product list.
type Query struct {
	// Category keeps one category; empty or "all" keeps every product.
	Category string
	// Search is a case-insensitive substring of the product name.
	Search     string
	Sort       SortField
	Descending bool
	// Language drives name collation; the zero tag collates by root order.
	Language language.Tag
}

// Filter returns the products matching q in the requested order. Ties keep
// file order.
func (c *Catalog) Filter(q Query) []Product {
	if c == nil {
		return nil
	}
	category := strings.TrimSpace(q.Category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(q.Search))

	out := make([]Product, 0, len(c.products))
	for _, p := range c.products {
		if category != "" && p.Category != category {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(p.Name), needle) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPrice:
		sort.SliceStable(out, func(i, j int) bool {
			if q.Descending {
				return out[i].Price > out[j].Price
			}
			return out[i].Price < out[j].Price
		})
	case SortName:
		col := collate.New(q.Language)
		sort.SliceStable(out, func(i, j int) bool {
			cmp := col.CompareString(out[i].Name, out[j].Name)
			if q.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}
	return out
}
