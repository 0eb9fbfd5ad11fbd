package keyvaluedb

import "errors"

type (
	Reader interface {
		// Read decodes the value stored under "key" into "value". Returns false when
		// the key is not present.
		Read(key []byte, value any) (bool, error)
	}

	Writer interface {
		// Write encodes "value" and stores it under "key", replacing previous value.
		Write(key []byte, value any) error
		// Delete removes the key, deleting missing key is not an error.
		Delete(key []byte) error
	}

	/*
		Iterator walks the key-value pairs in binary-alphabetical order of the keys.
		NB! iterator MUST be released with Close, open iterator may block writers.
	*/
	Iterator interface {
		Next()
		// Valid returns false once the iterator has moved past the last pair.
		Valid() bool
		Key() []byte
		Value(value any) error
		Close() error
	}

	Iterable interface {
		// First returns iterator positioned at the first pair, iterator is not
		// valid when the DB is empty.
		First() Iterator
		// Find returns iterator positioned at the first key greater or equal to "key".
		Find(key []byte) Iterator
	}

	/*
		DBTransaction groups writes so that either all or none of them are applied.
		Every transaction must end with either Commit or Rollback.
	*/
	DBTransaction interface {
		Reader
		Writer
		Commit() error
		Rollback() error
	}

	KeyValueDB interface {
		Reader
		Writer
		Iterable
		StartTx() (DBTransaction, error)
	}
)

var ErrTxClosed = errors.New("tx closed")

// IsEmpty returns true when there are no keys in the DB.
func IsEmpty(db KeyValueDB) (bool, error) {
	if db == nil {
		return true, errors.New("db is nil")
	}
	it := db.First()
	empty := !it.Valid()
	return empty, it.Close()
}
