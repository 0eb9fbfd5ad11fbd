package memorydb

import (
	"fmt"

	"github.com/kagren/solana-sdk/keyvaluedb"
)

/*
Tx works on a private copy of the data. Commit applies only the keys the
transaction wrote or deleted, so concurrent transactions touching different
keys all persist. For the same key the last commit wins.
*/
type Tx struct {
	mem     *MemoryDB
	data    map[string][]byte
	touched map[string]struct{}
}

func (t *Tx) open(op string) (map[string][]byte, error) {
	if t.data == nil {
		return nil, fmt.Errorf("memdb tx %s failed: %w", op, keyvaluedb.ErrTxClosed)
	}
	return t.data, nil
}

func (t *Tx) Read(key []byte, v any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	m, err := t.open("read")
	if err != nil {
		return false, err
	}
	return t.mem.read(m, key, v)
}

func (t *Tx) Write(key []byte, v any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return err
	}
	m, err := t.open("write")
	if err != nil {
		return err
	}
	data, err := t.mem.encoder(v)
	if err != nil {
		return fmt.Errorf("encoding value: %w", err)
	}
	if err := t.mem.put(m, key, data); err != nil {
		return err
	}
	t.touched[string(key)] = struct{}{}
	return nil
}

func (t *Tx) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	m, err := t.open("delete")
	if err != nil {
		return err
	}
	delete(m, string(key))
	t.touched[string(key)] = struct{}{}
	return nil
}

func (t *Tx) Commit() error {
	m, err := t.end()
	if err != nil {
		return err
	}
	t.mem.lock.Lock()
	defer t.mem.lock.Unlock()
	size := len(t.mem.db)
	for k := range t.touched {
		_, inTx := m[k]
		_, inDB := t.mem.db[k]
		switch {
		case inTx && !inDB:
			size++
		case !inTx && inDB:
			size--
		}
	}
	if t.mem.limit > 0 && size > t.mem.limit {
		return fmt.Errorf("memdb tx commit failed: %w", ErrDiskFull)
	}
	for k := range t.touched {
		if v, ok := m[k]; ok {
			t.mem.db[k] = v
		} else {
			delete(t.mem.db, k)
		}
	}
	return nil
}

func (t *Tx) Rollback() error {
	_, err := t.end()
	return err
}

func (t *Tx) end() (map[string][]byte, error) {
	if t.data == nil {
		return nil, keyvaluedb.ErrTxClosed
	}
	m := t.data
	t.data = nil
	return m, nil
}
