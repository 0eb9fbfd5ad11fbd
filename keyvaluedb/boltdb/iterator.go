package boltdb

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

/*
Iterator holds read transaction open until Close is called. Keys and values
returned by the cursor are only valid while the transaction is open so Key
returns a copy.
*/
type Iterator struct {
	tx      *bolt.Tx
	cursor  *bolt.Cursor
	decoder DecodeFn
	key     []byte
	value   []byte
}

func newIterator(db *bolt.DB, bucket []byte, d DecodeFn) *Iterator {
	tx, err := db.Begin(false)
	if err != nil {
		return &Iterator{}
	}
	return &Iterator{tx: tx, cursor: tx.Bucket(bucket).Cursor(), decoder: d}
}

func (it *Iterator) first() {
	if it.cursor != nil {
		it.key, it.value = it.cursor.First()
	}
}

func (it *Iterator) seek(key []byte) {
	if it.cursor != nil {
		it.key, it.value = it.cursor.Seek(key)
	}
}

func (it *Iterator) Next() {
	if !it.Valid() {
		return
	}
	it.key, it.value = it.cursor.Next()
}

func (it *Iterator) Valid() bool {
	return it.key != nil
}

func (it *Iterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return append([]byte(nil), it.key...)
}

func (it *Iterator) Value(v any) error {
	if !it.Valid() {
		return fmt.Errorf("iterator invalid")
	}
	return it.decoder(it.value, v)
}

func (it *Iterator) Close() error {
	it.key, it.value, it.cursor = nil, nil, nil
	if it.tx == nil {
		return nil
	}
	tx := it.tx
	it.tx = nil
	return tx.Rollback()
}
