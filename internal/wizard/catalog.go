package wizard

// catalogState tracks one asynchronously loaded resource catalog. Each load
// bumps the generation; a response is applied only if its generation still
// matches, so a fetch that resolves after the upstream selection changed is
// discarded instead of clobbering newer data. Items are replaced wholesale on
// every resolve, never merged.
//
// All methods must be called with the owning session's lock held.
type catalogState[T any] struct {
	items      []T
	loading    bool
	loadErr    string
	generation uint64
}

// begin marks the catalog as loading and returns the generation token the
// eventual resolve must present.
func (c *catalogState[T]) begin() uint64 {
	c.generation++
	c.loading = true
	c.loadErr = ""
	return c.generation
}

// resolve applies a finished load. It returns false when the response is
// stale. A failed load degrades the catalog to empty with a visible error.
func (c *catalogState[T]) resolve(gen uint64, items []T, err error) bool {
	if gen != c.generation {
		return false
	}
	c.loading = false
	if err != nil {
		c.items = nil
		c.loadErr = err.Error()
		return true
	}
	c.items = items
	c.loadErr = ""
	return true
}

// clear empties the catalog and invalidates any in-flight load.
func (c *catalogState[T]) clear() {
	c.generation++
	c.items = nil
	c.loading = false
	c.loadErr = ""
}

// CatalogView is the read-only projection of a catalog exposed to the
// presentation layer.
type CatalogView[T any] struct {
	Items   []T    `json:"items"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

func (c *catalogState[T]) view() CatalogView[T] {
	items := c.items
	if items == nil {
		items = []T{}
	}
	return CatalogView[T]{Items: items, Loading: c.loading, Error: c.loadErr}
}
