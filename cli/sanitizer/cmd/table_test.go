package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	testsig "github.com/kagren/solana-sdk/internal/testutils/sig"
	testtransaction "github.com/kagren/solana-sdk/internal/testutils/transaction"
	"github.com/kagren/solana-sdk/lookuptable"
	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/types"
)

func joinKeys(keys ...types.Pubkey) string {
	s := make([]string, len(keys))
	for i, k := range keys {
		s[i] = k.String()
	}
	return strings.Join(s, ",")
}

func TestTableCmd_lifecycle(t *testing.T) {
	homedir := t.TempDir()
	address := types.NewUniquePubkey()
	authority := types.NewUniquePubkey()
	a, b, c := types.NewUniquePubkey(), types.NewUniquePubkey(), types.NewUniquePubkey()

	out := execCmd(t, homedir, "table put --address "+address.String()+" --authority "+authority.String()+" --slot 5 --addresses "+joinKeys(a, b))
	entry := decodeLine[lookuptable.Entry](t, out.lines[0])
	require.Equal(t, address, entry.Address)
	require.Equal(t, []types.Pubkey{a, b}, entry.Table.Addresses)
	require.Equal(t, &authority, entry.Table.Meta.Authority)
	require.EqualValues(t, 5, entry.Table.Meta.LastExtendedSlot)
	require.Equal(t, lookuptable.Active, entry.Table.Meta.DeactivationSlot)
	require.FileExists(t, filepath.Join(homedir, defaultTableDBFile))

	out = execCmd(t, homedir, "table extend --address "+address.String()+" --slot 7 --addresses "+c.String())
	entry = decodeLine[lookuptable.Entry](t, out.lines[0])
	require.Equal(t, []types.Pubkey{a, b, c}, entry.Table.Addresses)
	require.EqualValues(t, 7, entry.Table.Meta.LastExtendedSlot)
	require.EqualValues(t, 2, entry.Table.Meta.LastExtendedSlotStartIndex)

	out = execCmd(t, homedir, "table get --address "+address.String())
	require.Equal(t, entry, decodeLine[lookuptable.Entry](t, out.lines[0]))

	// second table without address gets random one
	out = execCmd(t, homedir, "table put")
	other := decodeLine[lookuptable.Entry](t, out.lines[0])
	require.NotEqual(t, address, other.Address)
	require.Empty(t, other.Table.Addresses)
	require.Nil(t, other.Table.Meta.Authority)

	out = execCmd(t, homedir, "table list")
	require.Len(t, out.lines, 2)

	out = execCmd(t, homedir, "table deactivate --address "+address.String()+" --slot 9")
	entry = decodeLine[lookuptable.Entry](t, out.lines[0])
	require.EqualValues(t, 9, entry.Table.Meta.DeactivationSlot)
	execCmdWithError(t, homedir, "table deactivate --address "+address.String()+" --slot 10", lookuptable.ErrAlreadyDeactivated.Error())

	out = execCmd(t, homedir, "table delete --address "+address.String())
	require.Empty(t, out.lines)
	execCmdWithError(t, homedir, "table get --address "+address.String(), message.ErrLookupTableNotFound.Error())

	out = execCmd(t, homedir, "table list")
	require.Len(t, out.lines, 1)
	require.Equal(t, other.Address, decodeLine[lookuptable.Entry](t, out.lines[0]).Address)
}

func TestTableCmd_errors(t *testing.T) {
	homedir := t.TempDir()
	execCmdWithError(t, homedir, "table get", `required flag(s) "address" not set`)
	execCmdWithError(t, homedir, "table get --address foo0", "invalid table address")
	execCmdWithError(t, homedir, "table put --authority foo0", "invalid authority")
	execCmdWithError(t, homedir, "table put --addresses foo0", "invalid address")
	execCmdWithError(t, homedir, "table extend --address "+types.NewUniquePubkey().String(), message.ErrLookupTableNotFound.Error())
}

func TestTableCmd_sanitizeV0(t *testing.T) {
	homedir := t.TempDir()
	address := types.NewUniquePubkey()
	a, b := types.NewUniquePubkey(), types.NewUniquePubkey()
	execCmd(t, homedir, "table put --address "+address.String()+" --slot 5 --addresses "+joinKeys(a, b))

	payer := testsig.NewKeypair(t)
	tx := hexTx(t, testtransaction.NewV0Transfer(t, payer, types.MessageAddressTableLookup{
		AccountKey: address, WritableIndexes: []uint8{0}, ReadonlyIndexes: []uint8{1},
	}))

	out := execCmd(t, homedir, "sanitize --verify --slot 6 --tx "+tx)
	s := decodeLine[TxSummary](t, out.lines[0])
	require.Equal(t, "v0", s.Version)
	require.Equal(t, &message.LoadedAddresses{Writable: []types.Pubkey{a}, Readonly: []types.Pubkey{b}}, s.LoadedAddresses)
	require.Equal(t, []types.Pubkey{payer.Pubkey, a}, s.WritableLocks)
	require.Equal(t, []types.Pubkey{types.SystemProgramID, b}, s.ReadonlyLocks)
	require.Equal(t, []bool{true}, s.Verified)

	// addresses added in the current slot are not usable yet
	execCmdWithError(t, homedir, "sanitize --slot 5 --tx "+tx, message.ErrInvalidLookupIndex.Error())

	// deactivated table is usable until the deactivation slot is older than the slot hashes history
	execCmd(t, homedir, "table deactivate --address "+address.String()+" --slot 10")
	execCmd(t, homedir, "sanitize --slot 500 --tx "+tx)
	execCmdWithError(t, homedir, "sanitize --slot 600 --tx "+tx, message.ErrLookupTableNotFound.Error())
}
