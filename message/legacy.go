package message

import (
	"github.com/kagren/solana-sdk/types"
)

// LegacyMessage is sanitized legacy message, all account keys are static.
type LegacyMessage struct {
	message                *types.Message
	isWritableAccountCache []bool
}

var _ SanitizedMessage = (*LegacyMessage)(nil)

/*
NewLegacyMessage wraps copy of "msg" applying the reserved key overrides.
The message is expected to be sanitized already, see TryFromLegacyMessage.
*/
func NewLegacyMessage(msg *types.Message, reserved ReservedAccountKeys) *LegacyMessage {
	msg = msg.Clone()
	return &LegacyMessage{
		message:                msg,
		isWritableAccountCache: writableCache(newAccountKeys(msg.AccountKeys, nil), msg.IsWritableIndex, msg.Instructions, reserved),
	}
}

// TryFromLegacyMessage sanitizes "msg" and wraps it.
func TryFromLegacyMessage(msg *types.Message, reserved ReservedAccountKeys) (*LegacyMessage, error) {
	if err := msg.Sanitize(); err != nil {
		return nil, err
	}
	return NewLegacyMessage(msg, reserved), nil
}

func (m *LegacyMessage) Version() types.MessageVersion { return types.LegacyVersion }

func (m *LegacyMessage) Header() types.MessageHeader { return m.message.Header }

func (m *LegacyMessage) StaticAccountKeys() []types.Pubkey { return m.message.AccountKeys }

func (m *LegacyMessage) AccountKeys() AccountKeys {
	return newAccountKeys(m.message.AccountKeys, nil)
}

func (m *LegacyMessage) RecentBlockhash() types.Hash { return m.message.RecentBlockhash }

func (m *LegacyMessage) Instructions() []types.CompiledInstruction { return m.message.Instructions }

func (m *LegacyMessage) LoadedAddresses() LoadedAddresses { return LoadedAddresses{} }

func (m *LegacyMessage) IsWritable(index int) bool {
	return isWritable(m.isWritableAccountCache, index)
}

func (m *LegacyMessage) IsSigner(index int) bool { return m.message.IsSigner(index) }

func (m *LegacyMessage) HasDuplicates() bool {
	return hasDuplicates(m.AccountKeys())
}

func (m *LegacyMessage) NumReadonlyAccounts() int {
	h := m.message.Header
	return int(h.NumReadonlySignedAccounts) + int(h.NumReadonlyUnsignedAccounts)
}

func (m *LegacyMessage) FeePayer() types.Pubkey { return m.message.AccountKeys[0] }

func (m *LegacyMessage) DurableNonce() (*types.Pubkey, bool) { return durableNonce(m) }

func (m *LegacyMessage) Versioned() types.VersionedMessage { return m.message.Clone() }

func (m *LegacyMessage) Serialize() ([]byte, error) { return m.message.Serialize() }

func (m *LegacyMessage) sanitizedMessage() {}
