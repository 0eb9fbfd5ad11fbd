package transaction

import (
	"fmt"
	"slices"

	"github.com/kagren/solana-sdk/types"
)

/*
SanitizedVersionedTransaction is a versioned transaction which has passed
the structural checks but whose lookup table addresses are not resolved yet.
*/
type SanitizedVersionedTransaction struct {
	signatures []types.Signature
	message    types.VersionedMessage
}

// NewSanitizedVersionedTransaction sanitizes copy of "tx".
func NewSanitizedVersionedTransaction(tx *types.VersionedTransaction) (*SanitizedVersionedTransaction, error) {
	if tx == nil || tx.Message == nil {
		return nil, fmt.Errorf("%w: transaction is nil", ErrSanitizeFailure)
	}
	if err := checkSignatureCount(tx.Message.GetHeader(), len(tx.Signatures)); err != nil {
		return nil, err
	}
	if err := tx.Sanitize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSanitizeFailure, err)
	}
	return &SanitizedVersionedTransaction{
		signatures: slices.Clone(tx.Signatures),
		message:    types.CloneVersionedMessage(tx.Message),
	}, nil
}

func (tx *SanitizedVersionedTransaction) Signatures() []types.Signature { return tx.signatures }

func (tx *SanitizedVersionedTransaction) Message() types.VersionedMessage { return tx.message }

/*
ProgramInstructions calls "f" with the program address and instruction for
every instruction of the message. Sanitized message guarantees that program
index refers to static account key.
*/
func (tx *SanitizedVersionedTransaction) ProgramInstructions(f func(programID types.Pubkey, ix types.CompiledInstruction) bool) {
	keys := tx.message.GetAccountKeys()
	for _, ix := range tx.message.GetInstructions() {
		if !f(keys[ix.ProgramIDIndex], ix) {
			return
		}
	}
}

// checkSignatureCount requires exactly one signature per required signer.
func checkSignatureCount(h types.MessageHeader, n int) error {
	if required := int(h.NumRequiredSignatures); required != n {
		return fmt.Errorf("%w: %d signatures required, got %d", ErrSignatureCountMismatch, required, n)
	}
	return nil
}
