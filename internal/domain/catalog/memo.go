package catalog

import (
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Engine wraps Apply with a single-entry memo, mirroring how the shop page
// recomputes its product list only when the catalog or the selection
// changes. The memo key combines the caller's catalog version with a hash
// of the selection; any other (version, selection) pair recomputes.
type Engine struct {
	mu         sync.Mutex
	haveResult bool
	version    uint64
	key        uint64
	result     []Product
}

// NewEngine returns an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Apply returns Apply(products, sel), reusing the previous result when both
// the catalog version and the selection are unchanged. Callers must bump
// version whenever products changes. The returned slice is shared between
// calls and must not be mutated.
func (e *Engine) Apply(version uint64, products []Product, sel Selection) []Product {
	key := selectionKey(sel)

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.haveResult && e.version == version && e.key == key {
		return e.result
	}

	result := Apply(products, sel)
	e.haveResult = true
	e.version = version
	e.key = key
	e.result = result
	return result
}

// selectionKey hashes a selection into a stable 64-bit key. Sizes are
// hashed in sorted order so that equivalent selections collide on purpose.
func selectionKey(sel Selection) uint64 {
	h := xxhash.New()
	h.WriteString(sel.PriceMin.String())
	h.Write([]byte{0})
	h.WriteString(sel.PriceMax.String())
	h.Write([]byte{0})

	sizes := make([]string, len(sel.Sizes))
	copy(sizes, sel.Sizes)
	sort.Strings(sizes)
	for _, s := range sizes {
		h.WriteString(s)
		h.Write([]byte{0})
	}

	h.WriteString(string(sel.Sort))
	return h.Sum64()
}
