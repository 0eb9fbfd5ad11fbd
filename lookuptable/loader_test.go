package lookuptable

import (
	"testing"

	"github.com/stretchr/testify/require"

	testsig "github.com/kagren/solana-sdk/internal/testutils/sig"
	testtransaction "github.com/kagren/solana-sdk/internal/testutils/transaction"
	"github.com/kagren/solana-sdk/keyvaluedb/memorydb"
	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/transaction"
	"github.com/kagren/solana-sdk/types"
)

type tableFixture struct {
	store  *Store
	tableA types.Pubkey
	tableB types.Pubkey
	keysA  []types.Pubkey
	keysB  []types.Pubkey
}

/*
newFixture creates store with two tables, A has 4 addresses extended in
slot 10 and B has 2 addresses extended in slot 20.
*/
func newFixture(t *testing.T) *tableFixture {
	f := &tableFixture{
		store:  NewStore(memorydb.New()),
		tableA: types.NewUniquePubkey(),
		tableB: types.NewUniquePubkey(),
		keysA:  uniqueKeys(4),
		keysB:  uniqueKeys(2),
	}
	a := New(nil)
	require.NoError(t, a.Extend(10, f.keysA...))
	require.NoError(t, f.store.Put(f.tableA, a))
	b := New(nil)
	require.NoError(t, b.Extend(20, f.keysB...))
	require.NoError(t, f.store.Put(f.tableB, b))
	return f
}

func TestLoader_LoadAddresses(t *testing.T) {
	f := newFixture(t)
	lookups := []types.MessageAddressTableLookup{
		{AccountKey: f.tableA, WritableIndexes: []uint8{3, 0}, ReadonlyIndexes: []uint8{1}},
		{AccountKey: f.tableB, WritableIndexes: []uint8{1}, ReadonlyIndexes: []uint8{0}},
	}

	loaded, err := NewLoader(f.store, 21).LoadAddresses(lookups)
	require.NoError(t, err)
	require.Equal(t, []types.Pubkey{f.keysA[3], f.keysA[0], f.keysB[1]}, loaded.Writable)
	require.Equal(t, []types.Pubkey{f.keysA[1], f.keysB[0]}, loaded.Readonly)

	loaded, err = NewLoader(f.store, 21).LoadAddresses(nil)
	require.NoError(t, err)
	require.True(t, loaded.IsEmpty())
}

func TestLoader_Errors(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.store.Deactivate(f.tableB, 30))

	var testCases = []struct {
		name    string
		slot    uint64
		lookup  types.MessageAddressTableLookup
		wantErr error
	}{
		{
			name:    "table not found",
			slot:    21,
			lookup:  types.MessageAddressTableLookup{AccountKey: types.NewUniquePubkey(), WritableIndexes: []uint8{0}},
			wantErr: message.ErrLookupTableNotFound,
		},
		{
			name:    "index out of range",
			slot:    21,
			lookup:  types.MessageAddressTableLookup{AccountKey: f.tableA, ReadonlyIndexes: []uint8{4}},
			wantErr: message.ErrInvalidLookupIndex,
		},
		{
			name:    "addresses extended in current slot",
			slot:    20,
			lookup:  types.MessageAddressTableLookup{AccountKey: f.tableB, WritableIndexes: []uint8{0}},
			wantErr: message.ErrInvalidLookupIndex,
		},
		{
			name:    "deactivated table",
			slot:    30 + MaxSlotHashes + 1,
			lookup:  types.MessageAddressTableLookup{AccountKey: f.tableB, WritableIndexes: []uint8{0}},
			wantErr: message.ErrLookupTableNotFound,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			loaded, err := NewLoader(f.store, tc.slot).LoadAddresses([]types.MessageAddressTableLookup{tc.lookup})
			require.ErrorIs(t, err, tc.wantErr)
			require.True(t, loaded.IsEmpty())
		})
	}

	t.Run("deactivating table is usable", func(t *testing.T) {
		loaded, err := NewLoader(f.store, 30+MaxSlotHashes).LoadAddresses([]types.MessageAddressTableLookup{
			{AccountKey: f.tableB, WritableIndexes: []uint8{0}},
		})
		require.NoError(t, err)
		require.Equal(t, f.keysB[:1], loaded.Writable)
	})
}

func TestLoader_SanitizeTransaction(t *testing.T) {
	f := newFixture(t)
	payer := testsig.NewKeypair(t)
	tx := testtransaction.NewV0Transfer(t, payer, types.MessageAddressTableLookup{
		AccountKey: f.tableA, WritableIndexes: []uint8{0, 1}, ReadonlyIndexes: []uint8{2},
	})

	stx, err := transaction.TryCreate(tx, transaction.ComputeHash(), nil, NewLoader(f.store, 11), message.DefaultReservedAccountKeys())
	require.NoError(t, err)
	require.NoError(t, stx.Verify())
	require.Equal(t, message.LoadedAddresses{
		Writable: f.keysA[:2],
		Readonly: f.keysA[2:3],
	}, stx.LoadedAddresses())

	locks, err := stx.AccountLocks(transaction.MaxTxAccountLocks)
	require.NoError(t, err)
	require.Len(t, locks.Writable, 3)
	require.Len(t, locks.Readonly, 2)

	// table content is not usable in the slot it was extended in
	_, err = transaction.TryCreate(tx, transaction.ComputeHash(), nil, NewLoader(f.store, 10), message.DefaultReservedAccountKeys())
	require.ErrorIs(t, err, message.ErrInvalidLookupIndex)
}
