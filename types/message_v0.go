package types

import (
	"fmt"
	"slices"
)

type (
	// MessageAddressTableLookup loads accounts from the address lookup table stored at AccountKey.
	MessageAddressTableLookup struct {
		_               struct{} `cbor:",toarray"`
		AccountKey      Pubkey   `json:"accountKey"`
		WritableIndexes []uint8  `json:"writableIndexes"`
		ReadonlyIndexes []uint8  `json:"readonlyIndexes"`
	}

	/*
	MessageV0 is the table addressed message format. In addition to the static
	keys embedded in the message it may refer to accounts stored in on-chain
	address lookup tables. The resolved addresses are appended after the static
	keys: first all writable addresses of all lookups, then all readonly ones.
	*/
	MessageV0 struct {
		_                   struct{}                    `cbor:",toarray"`
		Header              MessageHeader               `json:"header"`
		AccountKeys         []Pubkey                    `json:"accountKeys"`
		RecentBlockhash     Hash                        `json:"recentBlockhash"`
		Instructions        []CompiledInstruction       `json:"instructions"`
		AddressTableLookups []MessageAddressTableLookup `json:"addressTableLookups"`
	}
)

func (l MessageAddressTableLookup) Clone() MessageAddressTableLookup {
	return MessageAddressTableLookup{
		AccountKey:      l.AccountKey,
		WritableIndexes: slices.Clone(l.WritableIndexes),
		ReadonlyIndexes: slices.Clone(l.ReadonlyIndexes),
	}
}

func (m *MessageV0) Clone() *MessageV0 {
	var lookups []MessageAddressTableLookup
	if m.AddressTableLookups != nil {
		lookups = make([]MessageAddressTableLookup, len(m.AddressTableLookups))
		for i, l := range m.AddressTableLookups {
			lookups[i] = l.Clone()
		}
	}
	return &MessageV0{
		Header:              m.Header,
		AccountKeys:         slices.Clone(m.AccountKeys),
		RecentBlockhash:     m.RecentBlockhash,
		Instructions:        cloneInstructions(m.Instructions),
		AddressTableLookups: lookups,
	}
}

func (m *MessageV0) Version() MessageVersion { return V0 }

func (m *MessageV0) GetHeader() MessageHeader { return m.Header }

func (m *MessageV0) GetAccountKeys() []Pubkey { return m.AccountKeys }

func (m *MessageV0) GetRecentBlockhash() Hash { return m.RecentBlockhash }

func (m *MessageV0) GetInstructions() []CompiledInstruction { return m.Instructions }

func (m *MessageV0) GetAddressTableLookups() []MessageAddressTableLookup {
	return m.AddressTableLookups
}

// NumLookupAccounts returns the number of accounts the message loads from lookup tables.
func (m *MessageV0) NumLookupAccounts() int {
	n := 0
	for _, l := range m.AddressTableLookups {
		n += len(l.WritableIndexes) + len(l.ReadonlyIndexes)
	}
	return n
}

/*
Serialize returns the bytes which are signed by the transaction signers:
the version prefix byte followed by the CBOR array of the message fields.
*/
func (m *MessageV0) Serialize() ([]byte, error) {
	b, err := Cbor.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding v0 message: %w", err)
	}
	return append([]byte{MessageVersionPrefix | byte(V0)}, b...), nil
}

// Hash returns hash of the serialized message.
func (m *MessageV0) Hash() (Hash, error) {
	return hashVersionedMessage(m)
}

func (m *MessageV0) versionedMessage() {}
