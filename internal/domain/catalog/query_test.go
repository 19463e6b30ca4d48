package catalog

import (
	"net/url"
	"testing"
)

func testBounds() Bounds {
	return Bounds{MinPrice: price("899"), MaxPrice: price("4999"), Sizes: []string{"S", "M", "L", "XL"}}
}

func TestSelectionFromQuery(t *testing.T) {
	t.Parallel()

	bounds := testBounds()

	tests := []struct {
		name  string
		query string
		want  Selection
	}{
		{
			name:  "empty query is the default selection",
			query: "",
			want:  DefaultSelection(bounds),
		},
		{
			name:  "full selection",
			query: "minPrice=1000&maxPrice=3000&sizes=M,L&sort=price-asc",
			want: Selection{
				PriceMin: price("1000"),
				PriceMax: price("3000"),
				Sizes:    []string{"M", "L"},
				Sort:     SortPriceAsc,
			},
		},
		{
			name:  "unparseable prices fall back to bounds",
			query: "minPrice=abc&maxPrice=",
			want:  DefaultSelection(bounds),
		},
		{
			name:  "unknown sort falls back to recommended",
			query: "sort=cheapest",
			want:  DefaultSelection(bounds),
		},
		{
			name:  "empty size fragments dropped",
			query: "sizes=M,,L,",
			want: Selection{
				PriceMin: bounds.MinPrice,
				PriceMax: bounds.MaxPrice,
				Sizes:    []string{"M", "L"},
				Sort:     SortRecommended,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("bad test query %q: %v", tt.query, err)
			}
			got := SelectionFromQuery(q, bounds)

			if !got.PriceMin.Equal(tt.want.PriceMin) || !got.PriceMax.Equal(tt.want.PriceMax) {
				t.Errorf("prices = [%s, %s], want [%s, %s]", got.PriceMin, got.PriceMax, tt.want.PriceMin, tt.want.PriceMax)
			}
			if !equalIDs(got.Sizes, tt.want.Sizes) {
				t.Errorf("sizes = %v, want %v", got.Sizes, tt.want.Sizes)
			}
			if got.Sort != tt.want.Sort {
				t.Errorf("sort = %q, want %q", got.Sort, tt.want.Sort)
			}
		})
	}
}

func TestSelectionQueryOmitsDefaults(t *testing.T) {
	t.Parallel()

	bounds := testBounds()

	if got := DefaultSelection(bounds).QueryString(bounds); got != "" {
		t.Errorf("default selection QueryString = %q, want empty", got)
	}

	sel := Selection{
		PriceMin: bounds.MinPrice,
		PriceMax: price("3000"),
		Sizes:    []string{"M"},
		Sort:     SortNameDesc,
	}
	q := sel.Query(bounds)

	if q.Has(paramMinPrice) {
		t.Error("minPrice present though at its default")
	}
	if got, want := q.Get(paramMaxPrice), "3000"; got != want {
		t.Errorf("maxPrice = %q, want %q", got, want)
	}
	if got, want := q.Get(paramSizes), "M"; got != want {
		t.Errorf("sizes = %q, want %q", got, want)
	}
	if got, want := q.Get(paramSort), "name-desc"; got != want {
		t.Errorf("sort = %q, want %q", got, want)
	}
}

func TestSelectionQueryRoundTrip(t *testing.T) {
	t.Parallel()

	bounds := testBounds()
	sel := Selection{
		PriceMin: price("1200"),
		PriceMax: price("2500"),
		Sizes:    []string{"S", "XL"},
		Sort:     SortPriceDesc,
	}

	got := SelectionFromQuery(sel.Query(bounds), bounds)

	if !got.PriceMin.Equal(sel.PriceMin) || !got.PriceMax.Equal(sel.PriceMax) {
		t.Errorf("prices = [%s, %s], want [%s, %s]", got.PriceMin, got.PriceMax, sel.PriceMin, sel.PriceMax)
	}
	if !equalIDs(got.Sizes, sel.Sizes) {
		t.Errorf("sizes = %v, want %v", got.Sizes, sel.Sizes)
	}
	if got.Sort != sel.Sort {
		t.Errorf("sort = %q, want %q", got.Sort, sel.Sort)
	}
}
