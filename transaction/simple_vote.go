package transaction

import (
	"github.com/kagren/solana-sdk/types"
)

/*
IsSimpleVoteTransaction classifies transaction as simple vote when it is a
legacy transaction with less than three signatures whose only instruction
invokes the vote program.
*/
func IsSimpleVoteTransaction(tx *SanitizedVersionedTransaction) bool {
	if len(tx.signatures) >= 3 || tx.message.Version() != types.LegacyVersion {
		return false
	}
	count := 0
	isVote := false
	tx.ProgramInstructions(func(programID types.Pubkey, _ types.CompiledInstruction) bool {
		count++
		isVote = programID == types.VoteProgramID
		return count < 2
	})
	return count == 1 && isVote
}
