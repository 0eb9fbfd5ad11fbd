package types

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sync/atomic"

	"github.com/mr-tron/base58"
)

const (
	PubkeyLength    = 32
	HashLength      = 32
	SignatureLength = 64
)

type (
	// Pubkey is an account address, for signer accounts also the ed25519 public key.
	Pubkey [PubkeyLength]byte

	// Hash is a 32 byte digest, ie message hash or recent blockhash.
	Hash [HashLength]byte

	// Signature is an ed25519 signature.
	Signature [SignatureLength]byte
)

// PubkeyFromBytes returns error when "b" is not exactly PubkeyLength bytes.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var pk Pubkey
	if len(b) != PubkeyLength {
		return pk, fmt.Errorf("invalid pubkey length %d, expected %d", len(b), PubkeyLength)
	}
	copy(pk[:], b)
	return pk, nil
}

// PubkeyFromString decodes base58 encoded address.
func PubkeyFromString(s string) (Pubkey, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, fmt.Errorf("decoding pubkey %q: %w", s, err)
	}
	return PubkeyFromBytes(b)
}

// MustPubkeyFromString is like PubkeyFromString but panics on error.
// Meant for initializing well known addresses.
func MustPubkeyFromString(s string) Pubkey {
	pk, err := PubkeyFromString(s)
	if err != nil {
		panic(err)
	}
	return pk
}

var uniqueCounter atomic.Uint64

/*
NewUniquePubkey returns pubkey which is unique within the process. Meant to
be used by tests which need distinct addresses but do not care about the
value.
*/
func NewUniquePubkey() Pubkey {
	var pk Pubkey
	n := uniqueCounter.Add(1)
	for i := 0; i < 8; i++ {
		pk[i] = byte(n >> (8 * (7 - i)))
	}
	if _, err := rand.Read(pk[8:]); err != nil {
		panic(fmt.Errorf("reading random bytes: %w", err))
	}
	return pk
}

func (pk Pubkey) String() string {
	return base58.Encode(pk[:])
}

func (pk Pubkey) Equal(other Pubkey) bool {
	return pk == other
}

func (pk Pubkey) Compare(other Pubkey) int {
	return bytes.Compare(pk[:], other[:])
}

func (pk Pubkey) IsZero() bool {
	return pk == Pubkey{}
}

func (pk Pubkey) MarshalText() ([]byte, error) {
	return []byte(pk.String()), nil
}

func (pk *Pubkey) UnmarshalText(src []byte) error {
	res, err := PubkeyFromString(string(src))
	if err == nil {
		*pk = res
	}
	return err
}

func (pk Pubkey) MarshalBinary() ([]byte, error) {
	return pk[:], nil
}

func (pk *Pubkey) UnmarshalBinary(data []byte) error {
	return fixedUnmarshal(pk[:], data, "pubkey")
}

// HashFromString decodes base58 encoded hash.
func HashFromString(s string) (Hash, error) {
	var h Hash
	b, err := base58.Decode(s)
	if err != nil {
		return h, fmt.Errorf("decoding hash %q: %w", s, err)
	}
	return h, fixedUnmarshal(h[:], b, "hash")
}

// NewUniqueHash returns random hash, meant for tests.
func NewUniqueHash() Hash {
	var h Hash
	if _, err := rand.Read(h[:]); err != nil {
		panic(fmt.Errorf("reading random bytes: %w", err))
	}
	return h
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(src []byte) error {
	res, err := HashFromString(string(src))
	if err == nil {
		*h = res
	}
	return err
}

func (h Hash) MarshalBinary() ([]byte, error) {
	return h[:], nil
}

func (h *Hash) UnmarshalBinary(data []byte) error {
	return fixedUnmarshal(h[:], data, "hash")
}

// SignatureFromBytes returns error when "b" is not exactly SignatureLength bytes.
func SignatureFromBytes(b []byte) (Signature, error) {
	var sig Signature
	return sig, fixedUnmarshal(sig[:], b, "signature")
}

// SignatureFromString decodes base58 encoded signature.
func SignatureFromString(s string) (Signature, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return Signature{}, fmt.Errorf("decoding signature %q: %w", s, err)
	}
	return SignatureFromBytes(b)
}

func (sig Signature) String() string {
	return base58.Encode(sig[:])
}

func (sig Signature) MarshalText() ([]byte, error) {
	return []byte(sig.String()), nil
}

func (sig *Signature) UnmarshalText(src []byte) error {
	res, err := SignatureFromString(string(src))
	if err == nil {
		*sig = res
	}
	return err
}

func (sig Signature) MarshalBinary() ([]byte, error) {
	return sig[:], nil
}

func (sig *Signature) UnmarshalBinary(data []byte) error {
	return fixedUnmarshal(sig[:], data, "signature")
}

func fixedUnmarshal(dst, src []byte, name string) error {
	if len(src) != len(dst) {
		return fmt.Errorf("invalid %s length %d, expected %d", name, len(src), len(dst))
	}
	copy(dst, src)
	return nil
}
