package catalog

import (
	"math"
	"sort"
	"strings"
)

// Product mirrors the upstream catalog's JSON shape. Prices arrive as float
// dollars and are converted to integer cents at the boundary via PriceCents.
type Product struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// PriceCents converts the upstream float price to integer cents, rounding
// half away from zero. All arithmetic downstream of this boundary is integer.
func (p Product) PriceCents() int64 {
	return int64(math.Round(p.Price * 100))
}

// clothing categories as the upstream catalog names them.
var clothingCategories = map[string]struct{}{
	"men's clothing":   {},
	"women's clothing": {},
}

// FilterClothing returns only the products in a clothing category. The
// storefront sells apparel, so everything else in the upstream catalog is
// dropped.
func FilterClothing(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if _, ok := clothingCategories[strings.ToLower(p.Category)]; ok {
			out = append(out, p)
		}
	}
	return out
}

// SortOrder controls product listing order.
type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
)

// SortByPrice sorts products in place by price. SortNone leaves the upstream
// order untouched.
func SortByPrice(products []Product, order SortOrder) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	}
}

// TruncateTitle shortens a product title to at most maxLen runes, appending an
// ellipsis when the title was cut. Titles at or under the limit are returned
// unchanged.
func TruncateTitle(title string, maxLen int) string {
	if maxLen <= 0 {
		return title
	}
	runes := []rune(title)
	if len(runes) <= maxLen {
		return title
	}
	return strings.TrimRight(string(runes[:maxLen]), " ") + "..."
}
