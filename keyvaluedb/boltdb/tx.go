package boltdb

import (
	"errors"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/kagren/solana-sdk/keyvaluedb"
)

// Tx is read-write bolt transaction on single bucket. It holds the DB write
// lock until Commit or Rollback is called.
type Tx struct {
	tx     *bolt.Tx
	bucket *bolt.Bucket
	encode EncodeFn
	decode DecodeFn
}

func newTx(db *bolt.DB, bucket []byte, enc EncodeFn, dec DecodeFn) (*Tx, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	tx, err := db.Begin(true)
	if err != nil {
		return nil, err
	}
	return &Tx{tx: tx, bucket: tx.Bucket(bucket), encode: enc, decode: dec}, nil
}

// open returns the bucket of the transaction or ErrTxClosed.
func (t *Tx) open(op string) (*bolt.Bucket, error) {
	if t.tx == nil {
		return nil, fmt.Errorf("bolt tx %s failed: %w", op, keyvaluedb.ErrTxClosed)
	}
	return t.bucket, nil
}

func (t *Tx) Read(key []byte, v any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	b, err := t.open("read")
	if err != nil {
		return false, err
	}
	if data := b.Get(key); data != nil {
		return true, t.decode(data, v)
	}
	return false, nil
}

func (t *Tx) Write(key []byte, v any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return err
	}
	b, err := t.open("write")
	if err != nil {
		return err
	}
	data, err := t.encode(v)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	return b.Put(key, data)
}

func (t *Tx) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	b, err := t.open("delete")
	if err != nil {
		return err
	}
	return b.Delete(key)
}

func (t *Tx) Commit() error {
	return t.end((*bolt.Tx).Commit)
}

func (t *Tx) Rollback() error {
	return t.end((*bolt.Tx).Rollback)
}

func (t *Tx) end(f func(*bolt.Tx) error) error {
	if t.tx == nil {
		return keyvaluedb.ErrTxClosed
	}
	tx := t.tx
	t.tx, t.bucket = nil, nil
	return f(tx)
}
