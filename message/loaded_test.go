package message

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kagren/solana-sdk/types"
)

func testV0Message() *types.MessageV0 {
	// static [payer, system program], loaded [w0, w1] and [r0]
	return &types.MessageV0{
		Header:          types.NewMessageHeader(1, 0, 1),
		AccountKeys:     []types.Pubkey{types.NewUniquePubkey(), types.SystemProgramID},
		RecentBlockhash: types.NewUniqueHash(),
		Instructions:    []types.CompiledInstruction{{ProgramIDIndex: 1, Accounts: []uint8{0, 2, 3, 4}}},
		AddressTableLookups: []types.MessageAddressTableLookup{
			{AccountKey: types.NewUniquePubkey(), WritableIndexes: []uint8{0, 1}, ReadonlyIndexes: []uint8{2}},
		},
	}
}

func TestLoadedMessage_IsWritable(t *testing.T) {
	loaded := LoadedAddresses{Writable: uniqueKeys(2), Readonly: uniqueKeys(1)}

	t.Run("positional", func(t *testing.T) {
		m := NewLoadedMessage(testV0Message(), loaded, ReservedAccountKeys{})
		require.Equal(t, []bool{true, false, true, true, false}, writability(m))
		require.False(t, m.IsWritable(5))
	})

	t.Run("reserved loaded key is demoted", func(t *testing.T) {
		m := NewLoadedMessage(testV0Message(), loaded, NewReservedAccountKeys(loaded.Writable[1]))
		require.Equal(t, []bool{true, false, true, false, false}, writability(m))
	})

	t.Run("program is demoted", func(t *testing.T) {
		msg := testV0Message()
		msg.AccountKeys = append(msg.AccountKeys, types.NewUniquePubkey())
		// make the new static key writable, header counts readonly from the end
		msg.Header.NumReadonlyUnsignedAccounts = 0
		msg.Instructions = append(msg.Instructions, types.CompiledInstruction{ProgramIDIndex: 2})
		m := NewLoadedMessage(msg, loaded, DefaultReservedAccountKeys())
		// system program is reserved, key 2 is invoked as program
		require.Equal(t, []bool{true, false, false, true, true, false}, writability(m))

		loadedWithLoader := LoadedAddresses{Writable: loaded.Writable, Readonly: []types.Pubkey{types.BPFLoaderUpgradeableID}}
		m = NewLoadedMessage(msg, loadedWithLoader, DefaultReservedAccountKeys())
		require.Equal(t, []bool{true, false, true, true, true, false}, writability(m))
	})
}

func TestLoadedMessage_Accessors(t *testing.T) {
	msg := testV0Message()
	loaded := LoadedAddresses{Writable: uniqueKeys(2), Readonly: uniqueKeys(1)}
	m := NewLoadedMessage(msg, loaded, ReservedAccountKeys{})

	require.Equal(t, types.V0, m.Version())
	require.Equal(t, msg.Header, m.Header())
	require.Equal(t, msg.AccountKeys, m.StaticAccountKeys())
	require.Equal(t, 5, m.AccountKeys().Len())
	require.Equal(t, msg.RecentBlockhash, m.RecentBlockhash())
	require.Equal(t, msg.Instructions, m.Instructions())
	require.Equal(t, msg.AddressTableLookups, m.AddressTableLookups())
	require.Equal(t, loaded, m.LoadedAddresses())
	require.Equal(t, msg.AccountKeys[0], m.FeePayer())
	// one readonly unsigned static key and one loaded readonly address
	require.Equal(t, 2, m.NumReadonlyAccounts())
	require.True(t, m.IsSigner(0))
	require.False(t, m.IsSigner(2))
	require.False(t, m.HasDuplicates())

	// Versioned is the original wire shape, lookups but no loaded addresses
	v, ok := m.Versioned().(*types.MessageV0)
	require.True(t, ok)
	require.Equal(t, msg, v)

	data, err := m.Serialize()
	require.NoError(t, err)
	require.Equal(t, types.MessageVersionPrefix, data[0])

	// loaded addresses are copied
	loaded.Writable[0] = types.Pubkey{}
	got := m.LoadedAddresses()
	require.False(t, got.Writable[0].IsZero())
	got.Readonly[0] = types.Pubkey{}
	require.False(t, m.LoadedAddresses().Readonly[0].IsZero())
}

func TestLoadedMessage_HasDuplicates(t *testing.T) {
	msg := testV0Message()
	// fee payer loaded again from the lookup table
	loaded := LoadedAddresses{Writable: []types.Pubkey{types.NewUniquePubkey(), msg.AccountKeys[0]}, Readonly: uniqueKeys(1)}
	m := NewLoadedMessage(msg, loaded, ReservedAccountKeys{})
	require.True(t, m.HasDuplicates())
}

func TestLoadedMessage_DurableNonce(t *testing.T) {
	msg := testV0Message()
	msg.Instructions = []types.CompiledInstruction{{ProgramIDIndex: 1, Accounts: []uint8{2, 0}, Data: advanceNonceData()}}
	loaded := LoadedAddresses{Writable: uniqueKeys(2), Readonly: uniqueKeys(1)}

	m := NewLoadedMessage(msg, loaded, ReservedAccountKeys{})
	pk, ok := m.DurableNonce()
	require.True(t, ok)
	require.Equal(t, loaded.Writable[0], *pk)

	// readonly loaded address can't be the nonce account
	msg.Instructions[0].Accounts = []uint8{4, 0}
	m = NewLoadedMessage(msg, loaded, ReservedAccountKeys{})
	_, ok = m.DurableNonce()
	require.False(t, ok)
}
