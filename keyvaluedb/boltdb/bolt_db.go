package boltdb

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/kagren/solana-sdk/keyvaluedb"
	"github.com/kagren/solana-sdk/types"
)

const defaultBucket = "default"

type (
	EncodeFn func(v any) ([]byte, error)
	DecodeFn func(data []byte, v any) error

	BoltDB struct {
		db      *bolt.DB
		bucket  []byte
		encoder EncodeFn
		decoder DecodeFn
	}

	Option func(*options)

	options struct {
		bucket  string
		timeout time.Duration
		encoder EncodeFn
		decoder DecodeFn
	}
)

var errNotFound = errors.New("db entry not found")

// WithBucket sets the name of the bucket the values are stored in.
func WithBucket(name string) Option {
	return func(o *options) {
		o.bucket = name
	}
}

// WithTimeout sets how long to wait for the file lock of the DB file.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

func WithCodec(enc EncodeFn, dec DecodeFn) Option {
	return func(o *options) {
		o.encoder = enc
		o.decoder = dec
	}
}

/*
New opens (creating when missing) bolt DB file "dbFile". Values are encoded
as CBOR unless other codec is set using WithCodec option.
*/
func New(dbFile string, opts ...Option) (*BoltDB, error) {
	o := &options{
		bucket:  defaultBucket,
		timeout: 3 * time.Second,
		encoder: types.Cbor.Marshal,
		decoder: types.Cbor.Unmarshal,
	}
	for _, opt := range opts {
		opt(o)
	}

	db, err := bolt.Open(dbFile, 0600, &bolt.Options{Timeout: o.timeout})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db %q: %w", dbFile, err)
	}
	s := &BoltDB{
		db:      db,
		bucket:  []byte(o.bucket),
		encoder: o.encoder,
		decoder: o.decoder,
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	}); err != nil {
		return nil, errors.Join(fmt.Errorf("creating bucket: %w", err), db.Close())
	}
	return s, nil
}

func (db *BoltDB) Path() string {
	return db.db.Path()
}

func (db *BoltDB) Read(key []byte, v any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	if err := db.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(db.bucket).Get(key)
		if data == nil {
			return errNotFound
		}
		return db.decoder(data, v)
	}); err != nil {
		if errors.Is(err, errNotFound) {
			return false, nil
		}
		return true, fmt.Errorf("bolt db read failed: %w", err)
	}
	return true, nil
}

func (db *BoltDB) Write(key []byte, v any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return err
	}
	b, err := db.encoder(v)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	if err := db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(db.bucket).Put(key, b)
	}); err != nil {
		return fmt.Errorf("bolt db write failed: %w", err)
	}
	return nil
}

func (db *BoltDB) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	if err := db.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(db.bucket).Delete(key)
	}); err != nil {
		return fmt.Errorf("bolt db delete failed: %w", err)
	}
	return nil
}

func (db *BoltDB) First() keyvaluedb.Iterator {
	it := newIterator(db.db, db.bucket, db.decoder)
	it.first()
	return it
}

func (db *BoltDB) Find(key []byte) keyvaluedb.Iterator {
	it := newIterator(db.db, db.bucket, db.decoder)
	it.seek(key)
	return it
}

func (db *BoltDB) StartTx() (keyvaluedb.DBTransaction, error) {
	tx, err := newTx(db.db, db.bucket, db.encoder, db.decoder)
	if err != nil {
		return nil, fmt.Errorf("failed to start bolt tx: %w", err)
	}
	return tx, nil
}

func (db *BoltDB) Close() error {
	if db.db == nil {
		return nil
	}
	return db.db.Close()
}
