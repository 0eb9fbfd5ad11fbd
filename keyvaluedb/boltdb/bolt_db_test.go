package boltdb

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kagren/solana-sdk/keyvaluedb"
	"github.com/kagren/solana-sdk/types"
)

type record struct {
	_     struct{} `cbor:",toarray"`
	Owner types.Pubkey
	Value uint64
}

func initBoltDB(t *testing.T, opts ...Option) *BoltDB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}

func isEmpty(t *testing.T, db *BoltDB) bool {
	t.Helper()
	empty, err := keyvaluedb.IsEmpty(db)
	require.NoError(t, err)
	return empty
}

func TestBoltDB_ReadWriteDelete(t *testing.T) {
	db := initBoltDB(t)
	require.True(t, isEmpty(t, db))
	require.NotEmpty(t, db.Path())

	rec := &record{Owner: types.NewUniquePubkey(), Value: 42}
	require.NoError(t, db.Write([]byte("key"), rec))
	require.False(t, isEmpty(t, db))

	var got record
	found, err := db.Read([]byte("key"), &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, *rec, got)

	found, err = db.Read([]byte("missing"), &got)
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, db.Delete([]byte("key")))
	require.NoError(t, db.Delete([]byte("key")))
	found, err = db.Read([]byte("key"), &got)
	require.NoError(t, err)
	require.False(t, found)
	require.True(t, isEmpty(t, db))
}

func TestBoltDB_InvalidInput(t *testing.T) {
	db := initBoltDB(t)
	var rec *record
	require.ErrorIs(t, db.Write(nil, &record{}), keyvaluedb.ErrInvalidKey)
	require.ErrorIs(t, db.Write([]byte("k"), rec), keyvaluedb.ErrValueIsNil)
	require.ErrorIs(t, db.Write([]byte("k"), nil), keyvaluedb.ErrValueIsNil)
	require.ErrorIs(t, db.Delete([]byte{}), keyvaluedb.ErrInvalidKey)
	_, err := db.Read([]byte("k"), rec)
	require.ErrorIs(t, err, keyvaluedb.ErrValueIsNil)
	require.ErrorContains(t, db.Write([]byte("k"), make(chan int)), "encoding value")
}

func TestBoltDB_DecodeError(t *testing.T) {
	db := initBoltDB(t)
	require.NoError(t, db.Write([]byte("k"), "not a record"))
	var rec record
	found, err := db.Read([]byte("k"), &rec)
	require.True(t, found)
	require.ErrorContains(t, err, "bolt db read failed")
}

func TestBoltDB_Iterator(t *testing.T) {
	db := initBoltDB(t)
	it := db.First()
	require.False(t, it.Valid())
	require.Nil(t, it.Key())
	require.Error(t, it.Value(new(string)))
	require.NoError(t, it.Close())

	for _, k := range []string{"c", "a", "b", "d"} {
		require.NoError(t, db.Write([]byte(k), k+k))
	}

	it = db.First()
	var keys, values []string
	for ; it.Valid(); it.Next() {
		var v string
		require.NoError(t, it.Value(&v))
		keys = append(keys, string(it.Key()))
		values = append(values, v)
	}
	require.NoError(t, it.Close())
	require.NoError(t, it.Close())
	require.Equal(t, []string{"a", "b", "c", "d"}, keys)
	require.Equal(t, []string{"aa", "bb", "cc", "dd"}, values)

	it = db.Find([]byte("bb"))
	require.True(t, it.Valid())
	require.Equal(t, []byte("c"), it.Key())
	require.NoError(t, it.Close())

	it = db.Find([]byte("e"))
	require.False(t, it.Valid())
	require.NoError(t, it.Close())
}

func TestBoltDB_Options(t *testing.T) {
	db := initBoltDB(t, WithBucket("tables"), WithCodec(json.Marshal, json.Unmarshal))
	require.Equal(t, []byte("tables"), db.bucket)
	require.NoError(t, db.Write([]byte("k"), map[string]int{"a": 1}))
	var got map[string]int
	found, err := db.Read([]byte("k"), &got)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, map[string]int{"a": 1}, got)
}

func TestBoltDB_FileLocked(t *testing.T) {
	file := filepath.Join(t.TempDir(), "locked.db")
	db, err := New(file)
	require.NoError(t, err)
	defer db.Close()

	_, err = New(file, WithTimeout(10_000_000))
	require.ErrorContains(t, err, "opening bolt db")
}
