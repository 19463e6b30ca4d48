package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func price(v string) decimal.Decimal {
	d, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return d
}

func testProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Mulmul Kurta", Slug: "mulmul-kurta", Price: price("1499"), Sizes: []string{"S", "M", "L"}},
		{ID: "p2", Name: "Ajrakh Saree", Slug: "ajrakh-saree", Price: price("4999")},
		{ID: "p3", Name: "Linen Shirt", Slug: "linen-shirt", Price: price("2199"), Sizes: []string{"M", "L", "XL"}},
		{ID: "p4", Name: "Bandhani Dupatta", Slug: "bandhani-dupatta", Price: price("899")},
		{ID: "p5", Name: "Linen Shirt Indigo", Slug: "linen-shirt-indigo", Price: price("2199"), Sizes: []string{"S", "M"}},
	}
}

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply(t *testing.T) {
	t.Parallel()

	products := testProducts()
	bounds := ComputeBounds(products)

	tests := []struct {
		name string
		sel  Selection
		want []string
	}{
		{
			name: "default keeps input order",
			sel:  DefaultSelection(bounds),
			want: []string{"p1", "p2", "p3", "p4", "p5"},
		},
		{
			name: "newest keeps input order",
			sel:  Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sort: SortNewest},
			want: []string{"p1", "p2", "p3", "p4", "p5"},
		},
		{
			name: "price range filters inclusively",
			sel:  Selection{PriceMin: price("899"), PriceMax: price("2199")},
			want: []string{"p1", "p3", "p4", "p5"},
		},
		{
			name: "range outside catalog is empty",
			sel:  Selection{PriceMin: price("10000"), PriceMax: price("20000")},
			want: []string{},
		},
		{
			name: "size filter matches any overlapping variant",
			sel:  Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sizes: []string{"XL"}},
			want: []string{"p3"},
		},
		{
			name: "size filter excludes products without sizes",
			sel:  Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sizes: []string{"S"}},
			want: []string{"p1", "p5"},
		},
		{
			name: "price ascending is stable on ties",
			sel:  Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sort: SortPriceAsc},
			want: []string{"p4", "p1", "p3", "p5", "p2"},
		},
		{
			name: "price descending is stable on ties",
			sel:  Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sort: SortPriceDesc},
			want: []string{"p2", "p3", "p5", "p1", "p4"},
		},
		{
			name: "name ascending",
			sel:  Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sort: SortNameAsc},
			want: []string{"p2", "p4", "p3", "p5", "p1"},
		},
		{
			name: "name descending",
			sel:  Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sort: SortNameDesc},
			want: []string{"p1", "p5", "p3", "p4", "p2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ids(Apply(products, tt.sel))
			if !equalIDs(got, tt.want) {
				t.Errorf("Apply() order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	products := testProducts()
	before := ids(products)

	Apply(products, Selection{PriceMin: price("0"), PriceMax: price("99999"), Sort: SortPriceDesc})

	if got := ids(products); !equalIDs(got, before) {
		t.Errorf("input order changed: got %v, want %v", got, before)
	}
}

func TestApplyEmptyInput(t *testing.T) {
	t.Parallel()

	got := Apply(nil, Selection{Sort: SortPriceAsc})
	if len(got) != 0 {
		t.Errorf("Apply(nil) = %v, want empty", got)
	}
}

// Narrowing the price range must never add products.
func TestApplyPriceRangeMonotonic(t *testing.T) {
	t.Parallel()

	products := testProducts()
	bounds := ComputeBounds(products)

	wide := Apply(products, Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice})
	narrow := Apply(products, Selection{PriceMin: price("1000"), PriceMax: price("3000")})

	if len(narrow) > len(wide) {
		t.Fatalf("narrow range returned %d products, wide returned %d", len(narrow), len(wide))
	}
	inWide := make(map[string]struct{}, len(wide))
	for _, p := range wide {
		inWide[p.ID] = struct{}{}
	}
	for _, p := range narrow {
		if _, ok := inWide[p.ID]; !ok {
			t.Errorf("product %s in narrow result but not in wide result", p.ID)
		}
	}
}

// With all prices distinct, price-asc reversed equals price-desc.
func TestApplyPriceSortSymmetry(t *testing.T) {
	t.Parallel()

	products := []Product{
		{ID: "a", Name: "A", Price: price("300")},
		{ID: "b", Name: "B", Price: price("100")},
		{ID: "c", Name: "C", Price: price("200")},
	}
	sel := Selection{PriceMin: price("0"), PriceMax: price("1000")}

	sel.Sort = SortPriceAsc
	asc := ids(Apply(products, sel))
	sel.Sort = SortPriceDesc
	desc := ids(Apply(products, sel))

	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("asc = %v is not the reverse of desc = %v", asc, desc)
		}
	}
}

func TestComputeBounds(t *testing.T) {
	t.Parallel()

	products := append(testProducts(), Product{ID: "p6", Name: "Draft", Price: decimal.Zero})
	b := ComputeBounds(products)

	if got, want := b.MinPrice.String(), "899"; got != want {
		t.Errorf("MinPrice = %s, want %s (zero prices must be excluded)", got, want)
	}
	if got, want := b.MaxPrice.String(), "4999"; got != want {
		t.Errorf("MaxPrice = %s, want %s", got, want)
	}
	wantSizes := []string{"S", "M", "L", "XL"}
	if !equalIDs(b.Sizes, wantSizes) {
		t.Errorf("Sizes = %v, want %v", b.Sizes, wantSizes)
	}
}

func TestComputeBoundsEmpty(t *testing.T) {
	t.Parallel()

	b := ComputeBounds(nil)
	if !b.MinPrice.IsZero() || !b.MaxPrice.IsZero() || len(b.Sizes) != 0 {
		t.Errorf("ComputeBounds(nil) = %+v, want zero bounds", b)
	}
}

func TestParseSortKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want SortKey
	}{
		{"price-asc", SortPriceAsc},
		{"name-desc", SortNameDesc},
		{"newest", SortNewest},
		{"", SortRecommended},
		{"bogus", SortRecommended},
	}
	for _, tt := range tests {
		if got := ParseSortKey(tt.in); got != tt.want {
			t.Errorf("ParseSortKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
