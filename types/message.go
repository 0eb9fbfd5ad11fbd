package types

import (
	"fmt"
	"slices"
)

type (
	/*
	MessageHeader describes how the account keys of the message are to be
	interpreted. Keys are ordered so that signers come first (writable signers
	before readonly signers) followed by non-signers (writable before readonly).
	*/
	MessageHeader struct {
		_                           struct{} `cbor:",toarray"`
		NumRequiredSignatures       uint8    `json:"numRequiredSignatures"`
		NumReadonlySignedAccounts   uint8    `json:"numReadonlySignedAccounts"`
		NumReadonlyUnsignedAccounts uint8    `json:"numReadonlyUnsignedAccounts"`
	}

	// CompiledInstruction refers to the program and accounts by their index in the message account keys.
	CompiledInstruction struct {
		_              struct{} `cbor:",toarray"`
		ProgramIDIndex uint8    `json:"programIdIndex"`
		Accounts       []uint8  `json:"accounts"`
		Data           []byte   `json:"data"`
	}

	// Message is the legacy message format, all account keys are embedded in the message.
	Message struct {
		_               struct{}              `cbor:",toarray"`
		Header          MessageHeader         `json:"header"`
		AccountKeys     []Pubkey              `json:"accountKeys"`
		RecentBlockhash Hash                  `json:"recentBlockhash"`
		Instructions    []CompiledInstruction `json:"instructions"`
	}
)

// NewMessageHeader is a shorthand for building a header value.
func NewMessageHeader(required, readonlySigned, readonlyUnsigned uint8) MessageHeader {
	return MessageHeader{
		NumRequiredSignatures:       required,
		NumReadonlySignedAccounts:   readonlySigned,
		NumReadonlyUnsignedAccounts: readonlyUnsigned,
	}
}

func (ci CompiledInstruction) Clone() CompiledInstruction {
	return CompiledInstruction{
		ProgramIDIndex: ci.ProgramIDIndex,
		Accounts:       slices.Clone(ci.Accounts),
		Data:           slices.Clone(ci.Data),
	}
}

func cloneInstructions(src []CompiledInstruction) []CompiledInstruction {
	if src == nil {
		return nil
	}
	dst := make([]CompiledInstruction, len(src))
	for i, ci := range src {
		dst[i] = ci.Clone()
	}
	return dst
}

func (m *Message) Clone() *Message {
	return &Message{
		Header:          m.Header,
		AccountKeys:     slices.Clone(m.AccountKeys),
		RecentBlockhash: m.RecentBlockhash,
		Instructions:    cloneInstructions(m.Instructions),
	}
}

func (m *Message) Version() MessageVersion { return LegacyVersion }

func (m *Message) GetHeader() MessageHeader { return m.Header }

func (m *Message) GetAccountKeys() []Pubkey { return m.AccountKeys }

func (m *Message) GetRecentBlockhash() Hash { return m.RecentBlockhash }

func (m *Message) GetInstructions() []CompiledInstruction { return m.Instructions }

func (m *Message) GetAddressTableLookups() []MessageAddressTableLookup { return nil }

/*
Serialize returns the bytes which are signed by the transaction signers.
For legacy message it is the CBOR array of the message fields.
*/
func (m *Message) Serialize() ([]byte, error) {
	b, err := Cbor.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding legacy message: %w", err)
	}
	return b, nil
}

// Hash returns hash of the serialized message.
func (m *Message) Hash() (Hash, error) {
	return hashVersionedMessage(m)
}

// IsWritableIndex reports whether the header places the account at index "i" into a writable segment.
func (m *Message) IsWritableIndex(i int) bool {
	h := m.Header
	return i < int(h.NumRequiredSignatures)-int(h.NumReadonlySignedAccounts) ||
		(i >= int(h.NumRequiredSignatures) && i < len(m.AccountKeys)-int(h.NumReadonlyUnsignedAccounts))
}

// IsSigner reports whether the account at index "i" must sign the transaction.
func (m *Message) IsSigner(i int) bool {
	return i < int(m.Header.NumRequiredSignatures)
}

func (m *Message) versionedMessage() {}
