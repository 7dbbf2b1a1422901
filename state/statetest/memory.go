// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package statetest

import (
	"context"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/ava-labs/stormxvm/state"
)

var (
	_ state.Mutable  = (*InMemoryStore)(nil)
	_ state.Database = (*InMemoryStore)(nil)
)

// InMemoryStore is an in-memory implementation of [state.Mutable] and
// [state.Database].
type InMemoryStore struct {
	l       sync.RWMutex
	Storage map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		Storage: make(map[string][]byte),
	}
}

func (i *InMemoryStore) GetValue(_ context.Context, key []byte) ([]byte, error) {
	i.l.RLock()
	defer i.l.RUnlock()

	val, ok := i.Storage[string(key)]
	if !ok {
		return nil, database.ErrNotFound
	}
	return val, nil
}

func (i *InMemoryStore) Insert(_ context.Context, key []byte, value []byte) error {
	i.l.Lock()
	defer i.l.Unlock()

	i.Storage[string(key)] = value
	return nil
}

func (i *InMemoryStore) Remove(_ context.Context, key []byte) error {
	i.l.Lock()
	defer i.l.Unlock()

	delete(i.Storage, string(key))
	return nil
}

func (i *InMemoryStore) Apply(_ context.Context, changes map[string]maybe.Maybe[[]byte]) error {
	i.l.Lock()
	defer i.l.Unlock()

	for k, v := range changes {
		if v.IsNothing() {
			delete(i.Storage, k)
			continue
		}
		i.Storage[k] = v.Value()
	}
	return nil
}

func (*InMemoryStore) Close() error {
	return nil
}
