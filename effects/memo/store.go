package memo

import (
	"sync"
)

// CellStore is the pluggable backing table for memo entries. The in-memory
// store below suffices for most scopes; bounded or shared caches (e.g.
// ristretto) can be dropped in without touching the handler.
type CellStore interface {
	Get(key string) (Entry, bool, error)
	Set(key string, e Entry) error
	Delete(key string) error
}

type inMemStore struct {
	*sync.Map
}

func (s inMemStore) Get(key string) (Entry, bool, error) {
	raw, ok := s.Load(key)
	if !ok {
		return Entry{}, false, nil
	}
	return raw.(Entry), true, nil
}

func (s inMemStore) Set(key string, e Entry) error {
	s.Store(key, e)
	return nil
}

func (s inMemStore) Delete(key string) error {
	s.Map.Delete(key)
	return nil
}

func NewInMemoryStore() CellStore {
	return inMemStore{Map: &sync.Map{}}
}
