package testsig

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kagren/solana-sdk/crypto"
	"github.com/kagren/solana-sdk/types"
)

func CreateSignerAndVerifier(t *testing.T) (*crypto.InMemoryEd25519Signer, crypto.Verifier) {
	t.Helper()
	signer, err := crypto.NewInMemoryEd25519Signer()
	require.NoError(t, err)

	verifier, err := signer.Verifier()
	require.NoError(t, err)
	return signer, verifier
}

/*
Keypair bundles signer with it's account address, use it as a transaction
signer in tests.
*/
type Keypair struct {
	Signer *crypto.InMemoryEd25519Signer
	Pubkey types.Pubkey
}

func NewKeypair(t *testing.T) Keypair {
	t.Helper()
	signer, err := crypto.NewInMemoryEd25519Signer()
	require.NoError(t, err)
	pk, err := types.PubkeyFromBytes(signer.PublicKey())
	require.NoError(t, err)
	return Keypair{Signer: signer, Pubkey: pk}
}

// Sign has the signature of the signing function expected by types.Transaction.Sign.
func (k Keypair) Sign(data []byte) (types.Signature, error) {
	sig, err := k.Signer.SignBytes(data)
	if err != nil {
		return types.Signature{}, err
	}
	return types.SignatureFromBytes(sig)
}

// SignFuncs returns signing functions of the keypairs in the same order.
func SignFuncs(keys ...Keypair) []func([]byte) (types.Signature, error) {
	f := make([]func([]byte) (types.Signature, error), len(keys))
	for i, k := range keys {
		f[i] = k.Sign
	}
	return f
}
