package crypto

/*
Signer produces ed25519 signatures over transaction messages. The fee payer
and every other required signer of a transaction is represented by one.
*/
type Signer interface {
	SignBytes(data []byte) ([]byte, error)
	// MarshalPrivateKey returns the 32 byte seed the signer was created from.
	MarshalPrivateKey() ([]byte, error)
	Verifier() (Verifier, error)
}

// Verifier checks signatures made by the holder of single public key.
type Verifier interface {
	// VerifyBytes returns nil when "sig" is valid signature of "data".
	VerifyBytes(sig []byte, data []byte) error
	MarshalPublicKey() ([]byte, error)
}

var (
	_ Signer   = (*InMemoryEd25519Signer)(nil)
	_ Verifier = (*Ed25519Verifier)(nil)
)
