package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceCents_RoundsFloatDollars(t *testing.T) {
	tests := []struct {
		name  string
		price float64
		want  int64
	}{
		{"exact", 54.99, 5499},
		{"whole", 10.0, 1000},
		{"repr noise", 22.3, 2230},
		{"repr noise above", 109.95, 10995},
		{"zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price}
			assert.Equal(t, tt.want, p.PriceCents())
		})
	}
}

func TestFilterClothing(t *testing.T) {
	products := []Product{
		{ID: 1, Category: "men's clothing"},
		{ID: 2, Category: "electronics"},
		{ID: 3, Category: "women's clothing"},
		{ID: 4, Category: "jewelery"},
		{ID: 5, Category: "Men's Clothing"},
	}

	got := FilterClothing(products)

	ids := make([]int64, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []int64{1, 3, 5}, ids)
}

func TestSortByPrice(t *testing.T) {
	base := []Product{
		{ID: 1, Price: 30},
		{ID: 2, Price: 10},
		{ID: 3, Price: 20},
	}

	asc := append([]Product(nil), base...)
	SortByPrice(asc, SortPriceAsc)
	assert.Equal(t, []int64{2, 3, 1}, []int64{asc[0].ID, asc[1].ID, asc[2].ID})

	desc := append([]Product(nil), base...)
	SortByPrice(desc, SortPriceDesc)
	assert.Equal(t, []int64{1, 3, 2}, []int64{desc[0].ID, desc[1].ID, desc[2].ID})

	none := append([]Product(nil), base...)
	SortByPrice(none, SortNone)
	assert.Equal(t, []int64{1, 2, 3}, []int64{none[0].ID, none[1].ID, none[2].ID})
}

func TestSortByPrice_StableForEqualPrices(t *testing.T) {
	products := []Product{
		{ID: 1, Price: 10},
		{ID: 2, Price: 10},
		{ID: 3, Price: 5},
	}

	SortByPrice(products, SortPriceAsc)
	assert.Equal(t, []int64{3, 1, 2}, []int64{products[0].ID, products[1].ID, products[2].ID})
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", TruncateTitle("short", 20))
	assert.Equal(t, "exactly-ten", TruncateTitle("exactly-ten", 11))
	assert.Equal(t, "a long pro...", TruncateTitle("a long product title", 10))
	assert.Equal(t, "trailing...", TruncateTitle("trailing  spaces here", 10))
	assert.Equal(t, "untouched", TruncateTitle("untouched", 0))
}
