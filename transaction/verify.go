package transaction

import (
	"github.com/kagren/solana-sdk/crypto"
)

/*
MessageData returns the serialized message the signers signed. It is
derived from the message content, the stored message hash is not used.
*/
func (tx *SanitizedTransaction) MessageData() ([]byte, error) {
	return tx.message.Serialize()
}

// Verify verifies every signature of the transaction against the corresponding signer key.
func (tx *SanitizedTransaction) Verify() error {
	for _, ok := range tx.VerifyWithResults() {
		if !ok {
			return ErrSignatureFailure
		}
	}
	return nil
}

/*
VerifyWithResults returns verification result of every signature, in the
order of signatures. When the message can't be serialized all results are
false.
*/
func (tx *SanitizedTransaction) VerifyWithResults() []bool {
	results := make([]bool, len(tx.signatures))
	data, err := tx.MessageData()
	if err != nil {
		return results
	}
	keys := tx.message.AccountKeys()
	for i := range tx.signatures {
		key, ok := keys.Get(i)
		if !ok {
			continue
		}
		verifier, err := crypto.NewEd25519Verifier(key[:])
		if err != nil {
			continue
		}
		results[i] = verifier.VerifyBytes(tx.signatures[i][:], data) == nil
	}
	return results
}
