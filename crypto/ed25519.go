package crypto

import (
	"crypto"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrVerificationFailed = errors.New("verification failed")
)

type (
	// InMemoryEd25519Signer keeps the private key in memory.
	InMemoryEd25519Signer struct {
		key  ed25519.PrivateKey
		rand io.Reader
	}

	Ed25519Verifier struct {
		key ed25519.PublicKey
	}
)

// NewInMemoryEd25519Signer generates new key and creates a new InMemoryEd25519Signer.
func NewInMemoryEd25519Signer() (*InMemoryEd25519Signer, error) {
	_, privateKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewInMemoryEd25519SignerFromSeed(privateKey.Seed())
}

// NewInMemoryEd25519SignerFromSeed creates new InMemoryEd25519Signer from private key seed bytes.
func NewInMemoryEd25519SignerFromSeed(seed []byte) (*InMemoryEd25519Signer, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrInvalidArgument, ed25519.SeedSize, len(seed))
	}
	return &InMemoryEd25519Signer{
		key:  ed25519.NewKeyFromSeed(seed),
		rand: rand.Reader,
	}, nil
}

func (s *InMemoryEd25519Signer) SignBytes(data []byte) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil signer", ErrInvalidArgument)
	}
	return s.key.Sign(s.rand, data, crypto.Hash(0))
}

func (s *InMemoryEd25519Signer) MarshalPrivateKey() ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil signer", ErrInvalidArgument)
	}
	return s.key.Seed(), nil
}

func (s *InMemoryEd25519Signer) Verifier() (Verifier, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil signer", ErrInvalidArgument)
	}
	return NewEd25519Verifier(s.key.Public().(ed25519.PublicKey))
}

// PublicKey returns the raw 32 byte public key.
func (s *InMemoryEd25519Signer) PublicKey() []byte {
	return []byte(s.key.Public().(ed25519.PublicKey))
}

// NewEd25519Verifier creates verifier for the raw 32 byte public key.
func NewEd25519Verifier(pubKey []byte) (*Ed25519Verifier, error) {
	if len(pubKey) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d", ErrInvalidArgument, ed25519.PublicKeySize, len(pubKey))
	}
	return &Ed25519Verifier{key: ed25519.PublicKey(pubKey)}, nil
}

func (v *Ed25519Verifier) VerifyBytes(sig []byte, data []byte) error {
	if v == nil {
		return fmt.Errorf("%w: nil verifier", ErrInvalidArgument)
	}
	if len(sig) != ed25519.SignatureSize {
		return fmt.Errorf("%w: signature must be %d bytes, got %d", ErrInvalidArgument, ed25519.SignatureSize, len(sig))
	}
	if !ed25519.Verify(v.key, data, sig) {
		return ErrVerificationFailed
	}
	return nil
}

func (v *Ed25519Verifier) MarshalPublicKey() ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil verifier", ErrInvalidArgument)
	}
	return []byte(v.key), nil
}
