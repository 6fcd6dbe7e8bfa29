package pure

import (
	"sync"
	"sync/atomic"
)

// Trie is a bounded memo table keyed by dependency key paths. Eviction is
// dual-map rotation: when the active map reaches maxSize it is demoted to
// a fallback that is still consulted on lookups, and the previous fallback
// is discarded wholesale.
type Trie[O any] struct {
	memos   [2]*sync.Map
	headIdx uint32
	size    atomic.Uint32
	maxSize uint32
}

func NewTrie[O any](maxSize uint32) Trie[O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	return Trie[O]{
		memos:   [2]*sync.Map{{}, {}},
		maxSize: maxSize,
	}
}

func (t *Trie[O]) Load(keys []DepKey) (O, bool) {
	headIdx := t.headIdx
	targetMap := t.memos[headIdx]
	m, k := t.traverse(targetMap, keys)
	v, ok := m.Load(k)
	if !ok {
		targetMap = t.memos[1-headIdx]
		m, k := t.traverse(targetMap, keys)
		v, ok = m.Load(k)
		if !ok {
			var zero O
			return zero, false
		}
	}
	return v.(O), true
}

func (t *Trie[O]) Store(keys []DepKey, value O) {
	if swapped := t.size.CompareAndSwap(t.maxSize, 0); swapped {
		t.headIdx = 1 - t.headIdx
		t.memos[t.headIdx] = &sync.Map{}
	}
	targetMap := t.memos[t.headIdx]
	m, k := t.traverse(targetMap, keys)
	m.Store(k, value)
	t.size.Add(1)
}

// traverse walks the inner maps for all but the last key, creating levels
// as needed, and returns the map plus final edge for the caller to act on.
func (t *Trie[O]) traverse(targetMap *sync.Map, keys []DepKey) (*sync.Map, comparableKey) {
	length := len(keys)
	if length == 0 {
		panic("traverse: empty keys")
	}

	for _, k := range keys[:length-1] {
		ck := k.comparable()
		v, ok := targetMap.Load(ck)
		if !ok {
			newMap := &sync.Map{}
			targetMap.Store(ck, newMap)
			v = newMap
		}
		targetMap = v.(*sync.Map)
	}
	return targetMap, keys[length-1].comparable()
}
