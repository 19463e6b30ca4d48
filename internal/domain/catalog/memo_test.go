package catalog

import (
	"sync"
	"testing"
)

func TestEngineMatchesPureApply(t *testing.T) {
	t.Parallel()

	products := testProducts()
	bounds := ComputeBounds(products)
	engine := NewEngine()

	selections := []Selection{
		DefaultSelection(bounds),
		{PriceMin: price("1000"), PriceMax: price("3000"), Sort: SortPriceAsc},
		{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sizes: []string{"S"}, Sort: SortNameDesc},
	}

	for _, sel := range selections {
		want := ids(Apply(products, sel))
		got := ids(engine.Apply(1, products, sel))
		if !equalIDs(got, want) {
			t.Errorf("engine result %v, want %v", got, want)
		}
	}
}

func TestEngineReusesResultForSameKey(t *testing.T) {
	t.Parallel()

	products := testProducts()
	bounds := ComputeBounds(products)
	engine := NewEngine()
	sel := Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sort: SortPriceAsc}

	first := engine.Apply(1, products, sel)
	second := engine.Apply(1, products, sel)

	if len(first) == 0 {
		t.Fatal("empty result")
	}
	if &first[0] != &second[0] {
		t.Error("same version and selection did not reuse the memoized slice")
	}

	// Equivalent selection with sizes in a different order hits the memo too.
	selA := Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sizes: []string{"S", "M"}}
	selB := Selection{PriceMin: bounds.MinPrice, PriceMax: bounds.MaxPrice, Sizes: []string{"M", "S"}}
	a := engine.Apply(1, products, selA)
	b := engine.Apply(1, products, selB)
	if len(a) == 0 || &a[0] != &b[0] {
		t.Error("size order changed the memo key")
	}
}

func TestEngineRecomputesOnVersionBump(t *testing.T) {
	t.Parallel()

	products := testProducts()
	bounds := ComputeBounds(products)
	engine := NewEngine()
	sel := DefaultSelection(bounds)

	engine.Apply(1, products, sel)

	smaller := products[:2]
	got := engine.Apply(2, smaller, sel)
	if len(got) != len(smaller) {
		t.Errorf("after version bump got %d products, want %d", len(got), len(smaller))
	}
}

func TestEngineConcurrentUse(t *testing.T) {
	t.Parallel()

	products := testProducts()
	bounds := ComputeBounds(products)
	engine := NewEngine()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		sel := DefaultSelection(bounds)
		if i%2 == 0 {
			sel.Sort = SortNameAsc
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				engine.Apply(1, products, sel)
			}
		}()
	}
	wg.Wait()
}
