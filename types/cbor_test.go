package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type CustomData struct {
	Name  string
	Value int
}

var (
	validInput  = CustomData{Name: "foo", Value: 30}
	validCbor   = []byte{0xa2, 0x64, 0x4e, 0x61, 0x6d, 0x65, 0x63, 0x66, 0x6f, 0x6f, 0x65, 0x56, 0x61, 0x6c, 0x75, 0x65, 0x18, 0x1e}
	invalidCbor = []byte{0xa2, 0x64, 0x4e, 0x61, 0x6d, 0x65, 0x63, 0x66, 0x6f, 0x6f, 0x65, 0x56, 0x61, 0x6c, 0x75, 0x65, 0x18} // missing final value
)

func TestCborHandler_Marshal(t *testing.T) {
	cases := []struct {
		name     string
		input    any
		expected []byte
		wantErr  string
	}{
		{
			name:     "Marshal valid input",
			input:    validInput,
			expected: validCbor,
		},
		{
			name:     "Marshal nil",
			input:    nil,
			expected: []byte{0xf6},
		},
		{
			name:    "Marshal invalid data input",
			input:   complex(20, 10),
			wantErr: "cbor: unsupported type: complex128",
		},
		{
			// canonical encoding sorts map keys, shorter keys first
			name:     "Marshal map",
			input:    map[string]int{"bb": 2, "a": 1},
			expected: []byte{0xa2, 0x61, 0x61, 0x01, 0x62, 0x62, 0x62, 0x02},
		},
		{
			name:     "Marshal pubkey as byte string",
			input:    Pubkey{1},
			expected: append([]byte{0x58, 0x20, 0x01}, make([]byte, 31)...),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Cbor.Marshal(tc.input)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestCborHandler_Unmarshal(t *testing.T) {
	t.Run("Unmarshal valid input", func(t *testing.T) {
		var got CustomData
		require.NoError(t, Cbor.Unmarshal(validCbor, &got))
		require.Equal(t, validInput, got)
	})

	t.Run("Unmarshal nil and empty input", func(t *testing.T) {
		var got CustomData
		require.ErrorContains(t, Cbor.Unmarshal(nil, &got), "EOF")
		require.ErrorContains(t, Cbor.Unmarshal([]byte{}, &got), "EOF")
		require.Equal(t, CustomData{}, got)
	})

	t.Run("Unmarshal invalid input data", func(t *testing.T) {
		var got CustomData
		err := Cbor.Unmarshal([]byte{5}, &got)
		require.ErrorContains(t, err, "cbor: cannot unmarshal positive integer into Go value of type types.CustomData")
		require.Equal(t, CustomData{}, got)

		require.ErrorContains(t, Cbor.Unmarshal(invalidCbor, &got), "unexpected EOF")
	})

	t.Run("Unmarshal non-pointer", func(t *testing.T) {
		var got CustomData
		err := Cbor.Unmarshal(validCbor, got)
		require.ErrorContains(t, err, "cbor: Unmarshal(non-pointer types.CustomData)")
	})

	t.Run("duplicate map keys are rejected", func(t *testing.T) {
		var got map[string]int
		err := Cbor.Unmarshal([]byte{0xa2, 0x61, 0x61, 0x01, 0x61, 0x61, 0x02}, &got)
		require.ErrorContains(t, err, "duplicate map key")
	})

	t.Run("indefinite length is rejected", func(t *testing.T) {
		var got []int
		err := Cbor.Unmarshal([]byte{0x9f, 0x01, 0xff}, &got)
		require.ErrorContains(t, err, "indefinite-length")
	})

	t.Run("pubkey length is checked", func(t *testing.T) {
		var pk Pubkey
		err := Cbor.Unmarshal([]byte{0x43, 1, 2, 3}, &pk)
		require.ErrorContains(t, err, "invalid pubkey length 3, expected 32")

		var sig Signature
		err = Cbor.Unmarshal(append([]byte{0x58, 0x20}, make([]byte, 32)...), &sig)
		require.ErrorContains(t, err, "invalid signature length 32, expected 64")
	})
}
