package message

import (
	"github.com/kagren/solana-sdk/types"
)

// LoadedMessage is sanitized v0 message together with the addresses loaded from lookup tables.
type LoadedMessage struct {
	message                *types.MessageV0
	loadedAddresses        LoadedAddresses
	isWritableAccountCache []bool
}

var _ SanitizedMessage = (*LoadedMessage)(nil)

/*
NewLoadedMessage wraps copies of "msg" and "loaded" applying the reserved
key overrides over the combined key list. The message is expected to be
sanitized and "loaded" to be the result of resolving its lookups.
*/
func NewLoadedMessage(msg *types.MessageV0, loaded LoadedAddresses, reserved ReservedAccountKeys) *LoadedMessage {
	m := &LoadedMessage{
		message:         msg.Clone(),
		loadedAddresses: loaded.Clone(),
	}
	m.isWritableAccountCache = writableCache(m.AccountKeys(), m.isWritableIndex, m.message.Instructions, reserved)
	return m
}

func (m *LoadedMessage) isWritableIndex(index int) bool {
	h := m.message.Header
	numStatic := len(m.message.AccountKeys)
	numSigned := int(h.NumRequiredSignatures)
	switch {
	case index >= numStatic:
		return index-numStatic < len(m.loadedAddresses.Writable)
	case index >= numSigned:
		numWritableUnsigned := numStatic - numSigned - int(h.NumReadonlyUnsignedAccounts)
		return index-numSigned < numWritableUnsigned
	default:
		return index < numSigned-int(h.NumReadonlySignedAccounts)
	}
}

func (m *LoadedMessage) Version() types.MessageVersion { return types.V0 }

func (m *LoadedMessage) Header() types.MessageHeader { return m.message.Header }

func (m *LoadedMessage) StaticAccountKeys() []types.Pubkey { return m.message.AccountKeys }

func (m *LoadedMessage) AccountKeys() AccountKeys {
	return newAccountKeys(m.message.AccountKeys, &m.loadedAddresses)
}

func (m *LoadedMessage) RecentBlockhash() types.Hash { return m.message.RecentBlockhash }

func (m *LoadedMessage) Instructions() []types.CompiledInstruction { return m.message.Instructions }

// AddressTableLookups returns the lookups of the original message.
func (m *LoadedMessage) AddressTableLookups() []types.MessageAddressTableLookup {
	return m.message.AddressTableLookups
}

func (m *LoadedMessage) LoadedAddresses() LoadedAddresses { return m.loadedAddresses.Clone() }

func (m *LoadedMessage) IsWritable(index int) bool {
	return isWritable(m.isWritableAccountCache, index)
}

func (m *LoadedMessage) IsSigner(index int) bool {
	return index < int(m.message.Header.NumRequiredSignatures)
}

func (m *LoadedMessage) HasDuplicates() bool {
	return hasDuplicates(m.AccountKeys())
}

func (m *LoadedMessage) NumReadonlyAccounts() int {
	h := m.message.Header
	return len(m.loadedAddresses.Readonly) + int(h.NumReadonlySignedAccounts) + int(h.NumReadonlyUnsignedAccounts)
}

func (m *LoadedMessage) FeePayer() types.Pubkey { return m.message.AccountKeys[0] }

func (m *LoadedMessage) DurableNonce() (*types.Pubkey, bool) { return durableNonce(m) }

// Versioned returns copy of the original message, resolved addresses are not part of it.
func (m *LoadedMessage) Versioned() types.VersionedMessage { return m.message.Clone() }

func (m *LoadedMessage) Serialize() ([]byte, error) { return m.message.Serialize() }

func (m *LoadedMessage) sanitizedMessage() {}
