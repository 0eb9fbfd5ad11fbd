package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeSignatures(t *testing.T) {
	var testCases = []struct {
		name                 string
		required, keys, sigs int
		wantErr              error
	}{
		{name: "exact", required: 2, keys: 3, sigs: 2},
		{name: "too few signatures", required: 2, keys: 3, sigs: 1, wantErr: ErrIndexOutOfBounds},
		{name: "too many signatures", required: 2, keys: 3, sigs: 3, wantErr: ErrInvalidValue},
		{name: "signers beyond static keys", required: 3, keys: 2, sigs: 3, wantErr: ErrIndexOutOfBounds},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := SanitizeSignatures(tc.required, tc.keys, tc.sigs)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
			require.ErrorIs(t, err, ErrSanitize)
		})
	}
}

func TestMessage_Sanitize(t *testing.T) {
	var testCases = []struct {
		name    string
		modify  func(m *Message)
		wantErr error
	}{
		{
			name:   "valid",
			modify: func(m *Message) {},
		},
		{
			name:    "header describes more keys than message has",
			modify:  func(m *Message) { m.Header.NumReadonlyUnsignedAccounts = 4 },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name:    "no writable signer",
			modify:  func(m *Message) { m.Header.NumReadonlySignedAccounts = 2 },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name:    "program index out of bounds",
			modify:  func(m *Message) { m.Instructions[0].ProgramIDIndex = 5 },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name:    "fee payer as program",
			modify:  func(m *Message) { m.Instructions[0].ProgramIDIndex = 0 },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name:    "account index out of bounds",
			modify:  func(m *Message) { m.Instructions[0].Accounts = []uint8{0, 5} },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name:   "no instructions",
			modify: func(m *Message) { m.Instructions = nil },
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := testMessage()
			tc.modify(msg)
			err := msg.Sanitize()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestMessageV0_Sanitize(t *testing.T) {
	var testCases = []struct {
		name    string
		modify  func(m *MessageV0)
		wantErr error
	}{
		{
			name:   "valid",
			modify: func(m *MessageV0) {},
		},
		{
			name:   "without lookups",
			modify: func(m *MessageV0) { m.AddressTableLookups = nil; m.Instructions[0].Accounts = []uint8{0} },
		},
		{
			name:    "header describes more keys than message has",
			modify:  func(m *MessageV0) { m.Header.NumReadonlyUnsignedAccounts = 2 },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name:    "no writable signer",
			modify:  func(m *MessageV0) { m.Header.NumReadonlySignedAccounts = 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name: "lookup loads nothing",
			modify: func(m *MessageV0) {
				m.AddressTableLookups = append(m.AddressTableLookups, MessageAddressTableLookup{AccountKey: NewUniquePubkey()})
			},
			wantErr: ErrInvalidValue,
		},
		{
			name: "program loaded from lookup table",
			// index 2 is the first loaded address
			modify:  func(m *MessageV0) { m.Instructions[0].ProgramIDIndex = 2 },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name:    "fee payer as program",
			modify:  func(m *MessageV0) { m.Instructions[0].ProgramIDIndex = 0 },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name:   "account index refers to loaded address",
			modify: func(m *MessageV0) { m.Instructions[0].Accounts = []uint8{0, 3} },
		},
		{
			name:    "account index beyond loaded addresses",
			modify:  func(m *MessageV0) { m.Instructions[0].Accounts = []uint8{0, 4} },
			wantErr: ErrIndexOutOfBounds,
		},
		{
			name: "too many accounts",
			modify: func(m *MessageV0) {
				l := MessageAddressTableLookup{AccountKey: NewUniquePubkey(), WritableIndexes: make([]uint8, 255)}
				m.AddressTableLookups = append(m.AddressTableLookups, l)
			},
			wantErr: ErrIndexOutOfBounds,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg := testMessageV0()
			tc.modify(msg)
			err := msg.Sanitize()
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestVersionedTransaction_Sanitize(t *testing.T) {
	tx := &VersionedTransaction{Signatures: []Signature{{1}}, Message: testMessageV0()}
	require.NoError(t, tx.Sanitize())

	tx.Signatures = append(tx.Signatures, Signature{2})
	require.ErrorIs(t, tx.Sanitize(), ErrInvalidValue)

	tx.Signatures = nil
	require.ErrorIs(t, tx.Sanitize(), ErrIndexOutOfBounds)

	require.ErrorIs(t, (&VersionedTransaction{}).Sanitize(), ErrInvalidValue)
}
