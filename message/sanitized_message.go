package message

import (
	"encoding/binary"

	"github.com/kagren/solana-sdk/types"
)

/*
SanitizedMessage is a structurally valid message whose account keys have
been resolved. It is implemented by *LegacyMessage and *LoadedMessage only.

Slices returned by the accessors share storage with the message and must
not be modified.
*/
type SanitizedMessage interface {
	Version() types.MessageVersion
	Header() types.MessageHeader
	// StaticAccountKeys returns the keys embedded in the message.
	StaticAccountKeys() []types.Pubkey
	// AccountKeys returns view of static keys followed by the loaded writable
	// and loaded readonly addresses.
	AccountKeys() AccountKeys
	RecentBlockhash() types.Hash
	Instructions() []types.CompiledInstruction
	// LoadedAddresses returns copy of the addresses resolved from lookup tables.
	LoadedAddresses() LoadedAddresses
	// IsWritable returns effective writability of the account at "index" of
	// the combined key list.
	IsWritable(index int) bool
	IsSigner(index int) bool
	// HasDuplicates reports whether some key appears more than once in the
	// combined key list.
	HasDuplicates() bool
	NumReadonlyAccounts() int
	FeePayer() types.Pubkey
	// DurableNonce returns the nonce account when the message uses durable nonce.
	DurableNonce() (*types.Pubkey, bool)
	// Versioned returns copy of the message in its original wire shape.
	Versioned() types.VersionedMessage
	// Serialize returns the canonical bytes signed by the transaction signers.
	Serialize() ([]byte, error)

	sanitizedMessage()
}

const advanceNonceAccountInstruction uint32 = 4

/*
writableCache bakes effective writability of every account: the header must
place the account into a writable segment, the key mustn't be reserved and
the account mustn't be invoked as a program (unless upgradeable loader is
present as then programs may be upgraded within the transaction).
*/
func writableCache(keys AccountKeys, positional func(i int) bool, instructions []types.CompiledInstruction, reserved ReservedAccountKeys) []bool {
	upgradeableLoaderPresent := keys.Contains(types.BPFLoaderUpgradeableID)
	cache := make([]bool, keys.Len())
	keys.ForEach(func(i int, key *types.Pubkey) bool {
		cache[i] = positional(i) &&
			!reserved.Contains(*key) &&
			!(isKeyCalledAsProgram(instructions, i) && !upgradeableLoaderPresent)
		return true
	})
	return cache
}

func isKeyCalledAsProgram(instructions []types.CompiledInstruction, index int) bool {
	for _, ci := range instructions {
		if int(ci.ProgramIDIndex) == index {
			return true
		}
	}
	return false
}

func hasDuplicates(keys AccountKeys) bool {
	seen := make(map[types.Pubkey]struct{}, keys.Len())
	dup := false
	keys.ForEach(func(_ int, key *types.Pubkey) bool {
		if _, ok := seen[*key]; ok {
			dup = true
			return false
		}
		seen[*key] = struct{}{}
		return true
	})
	return dup
}

func isWritable(cache []bool, index int) bool {
	return index >= 0 && index < len(cache) && cache[index]
}

/*
durableNonce recognizes the durable nonce transaction: the first instruction
is system program's AdvanceNonceAccount and its first account (the nonce
account) is writable.
*/
func durableNonce(m SanitizedMessage) (*types.Pubkey, bool) {
	ixs := m.Instructions()
	if len(ixs) == 0 {
		return nil, false
	}
	ix := ixs[0]
	keys := m.AccountKeys()
	if program, ok := keys.Get(int(ix.ProgramIDIndex)); !ok || *program != types.SystemProgramID {
		return nil, false
	}
	if len(ix.Data) < 4 || binary.LittleEndian.Uint32(ix.Data) != advanceNonceAccountInstruction {
		return nil, false
	}
	if len(ix.Accounts) == 0 {
		return nil, false
	}
	idx := int(ix.Accounts[0])
	if !m.IsWritable(idx) {
		return nil, false
	}
	return keys.Get(idx)
}
