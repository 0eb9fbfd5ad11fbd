package memorydb

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/kagren/solana-sdk/keyvaluedb"
	"github.com/kagren/solana-sdk/types"
)

type (
	EncodeFn func(v any) ([]byte, error)
	DecodeFn func(data []byte, v any) error

	MemoryDB struct {
		db      map[string][]byte
		encoder EncodeFn
		decoder DecodeFn
		limit   int
		lock    sync.RWMutex
	}

	Option func(*MemoryDB)
)

var ErrDiskFull = errors.New("write failed, disk is full")

// WithLimit makes writes fail with ErrDiskFull once the DB holds "limit" keys.
func WithLimit(limit int) Option {
	return func(db *MemoryDB) {
		db.limit = limit
	}
}

func WithCodec(enc EncodeFn, dec DecodeFn) Option {
	return func(db *MemoryDB) {
		db.encoder = enc
		db.decoder = dec
	}
}

// New creates map backed key-value DB, values are stored CBOR encoded.
func New(opts ...Option) *MemoryDB {
	db := &MemoryDB{
		db:      make(map[string][]byte),
		encoder: types.Cbor.Marshal,
		decoder: types.Cbor.Unmarshal,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db
}

func (db *MemoryDB) Read(key []byte, value any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return false, err
	}
	db.lock.RLock()
	defer db.lock.RUnlock()
	return db.read(db.db, key, value)
}

func (db *MemoryDB) read(m map[string][]byte, key []byte, value any) (bool, error) {
	data, ok := m[string(key)]
	if !ok {
		return false, nil
	}
	if err := db.decoder(data, value); err != nil {
		return true, fmt.Errorf("memdb read failed: %w", err)
	}
	return true, nil
}

func (db *MemoryDB) Write(key []byte, value any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return err
	}
	b, err := db.encoder(value)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	db.lock.Lock()
	defer db.lock.Unlock()
	return db.put(db.db, key, b)
}

func (db *MemoryDB) put(m map[string][]byte, key, data []byte) error {
	if _, ok := m[string(key)]; !ok && db.limit > 0 && len(m) >= db.limit {
		return ErrDiskFull
	}
	m[string(key)] = data
	return nil
}

func (db *MemoryDB) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	db.lock.Lock()
	defer db.lock.Unlock()
	delete(db.db, string(key))
	return nil
}

// First returns iterator over the snapshot of the DB taken at the time of the call.
func (db *MemoryDB) First() keyvaluedb.Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()
	it := newIterator(db.db, db.decoder)
	it.first()
	return it
}

func (db *MemoryDB) Find(key []byte) keyvaluedb.Iterator {
	db.lock.RLock()
	defer db.lock.RUnlock()
	it := newIterator(db.db, db.decoder)
	it.seek(key)
	return it
}

func (db *MemoryDB) StartTx() (keyvaluedb.DBTransaction, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	return &Tx{mem: db, data: maps.Clone(db.db), touched: map[string]struct{}{}}, nil
}
