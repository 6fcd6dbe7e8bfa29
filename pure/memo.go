package pure

// MemoCell is a single-slot dependency-keyed cache: it holds the last
// computed value together with the dependency keys that produced it, and
// recomputes only when the keys change.
//
// A MemoCell is owned by one scope and is not synchronized; concurrent use
// goes through the effects/memo handler, which serializes access per key.
type MemoCell[T any] struct {
	lastKeys  []DepKey
	lastValue T
	hasValue  bool
}

func NewMemoCell[T any]() *MemoCell[T] {
	return &MemoCell[T]{}
}

// Get returns the cached value when deps match the previous call, and runs
// compute otherwise. A cell that has never computed always runs compute,
// including with an empty dependency list; an empty list thereafter always
// hits.
//
// If compute fails the cell is left untouched and the error propagates
// unchanged to the caller and the next Get with the same deps retries
// instead of returning a poisoned cache. On success the slot is replaced
// all-or-nothing.
func (c *MemoCell[T]) Get(compute func() (T, error), deps ...DepKey) (T, error) {
	if c.hasValue && SameDeps(c.lastKeys, deps) {
		return c.lastValue, nil
	}

	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}

	c.lastKeys = append([]DepKey(nil), deps...)
	c.lastValue = v
	c.hasValue = true
	return v, nil
}

// Cached returns the current slot without triggering computation.
func (c *MemoCell[T]) Cached() (T, bool) {
	return c.lastValue, c.hasValue
}

// Reset empties the cell; the next Get recomputes regardless of deps.
func (c *MemoCell[T]) Reset() {
	var zero T
	c.lastKeys = nil
	c.lastValue = zero
	c.hasValue = false
}
