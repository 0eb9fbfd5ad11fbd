package transaction

import (
	"fmt"
	"slices"

	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/types"
)

/*
SanitizedTransaction is a transaction whose structure has been validated and
whose account keys have been resolved. It is immutable, safe for concurrent
read-only use and the only transaction type the runtime deals with.
*/
type SanitizedTransaction struct {
	message        message.SanitizedMessage
	messageHash    types.Hash
	isSimpleVoteTx bool
	signatures     []types.Signature
}

/*
MessageHash tells the constructor whether message hash is already known
(PrecomputedHash) or must be calculated (ComputeHash).
*/
type MessageHash struct {
	precomputed *types.Hash
}

func PrecomputedHash(h types.Hash) MessageHash {
	return MessageHash{precomputed: &h}
}

func ComputeHash() MessageHash {
	return MessageHash{}
}

func (mh MessageHash) resolve(msg types.VersionedMessage) (types.Hash, error) {
	if mh.precomputed != nil {
		return *mh.precomputed, nil
	}
	h, err := msg.Hash()
	if err != nil {
		return types.Hash{}, fmt.Errorf("calculating message hash: %w", err)
	}
	return h, nil
}

/*
TryNew creates sanitized transaction from sanitized versioned transaction.
When the message uses address lookup tables the addresses are resolved by
"loader", loader errors are returned as is.
*/
func TryNew(tx *SanitizedVersionedTransaction, messageHash types.Hash, isSimpleVoteTx bool, loader message.AddressLoader, reserved message.ReservedAccountKeys) (*SanitizedTransaction, error) {
	var msg message.SanitizedMessage
	switch m := tx.message.(type) {
	case *types.Message:
		msg = message.NewLegacyMessage(m, reserved)
	case *types.MessageV0:
		if loader == nil {
			return nil, message.ErrAddressLoaderDisabled
		}
		loaded, err := loader.LoadAddresses(m.AddressTableLookups)
		if err != nil {
			return nil, err
		}
		msg = message.NewLoadedMessage(m, loaded, reserved)
	default:
		return nil, fmt.Errorf("%w: %T", types.ErrUnsupportedVersion, tx.message)
	}

	return &SanitizedTransaction{
		message:        msg,
		messageHash:    messageHash,
		isSimpleVoteTx: isSimpleVoteTx,
		signatures:     slices.Clone(tx.signatures),
	}, nil
}

/*
TryCreate creates sanitized transaction from un-sanitized versioned transaction.
When "isSimpleVoteTx" is nil the transaction is classified by IsSimpleVoteTransaction.
*/
func TryCreate(tx *types.VersionedTransaction, messageHash MessageHash, isSimpleVoteTx *bool, loader message.AddressLoader, reserved message.ReservedAccountKeys) (*SanitizedTransaction, error) {
	stx, err := NewSanitizedVersionedTransaction(tx)
	if err != nil {
		return nil, err
	}
	var isVote bool
	if isSimpleVoteTx != nil {
		isVote = *isSimpleVoteTx
	} else {
		isVote = IsSimpleVoteTransaction(stx)
	}
	hash, err := messageHash.resolve(stx.message)
	if err != nil {
		return nil, err
	}
	return TryNew(stx, hash, isVote, loader, reserved)
}

/*
TryFromLegacyTransaction creates sanitized transaction from legacy transaction.
The transaction must carry exactly as many signatures as the message requires.
*/
func TryFromLegacyTransaction(tx *types.Transaction, reserved message.ReservedAccountKeys) (*SanitizedTransaction, error) {
	if tx == nil || tx.Message == nil {
		return nil, fmt.Errorf("%w: transaction is nil", ErrSanitizeFailure)
	}
	if err := checkSignatureCount(tx.Message.Header, len(tx.Signatures)); err != nil {
		return nil, err
	}
	if err := tx.Sanitize(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSanitizeFailure, err)
	}
	hash, err := tx.Message.Hash()
	if err != nil {
		return nil, fmt.Errorf("calculating message hash: %w", err)
	}
	return &SanitizedTransaction{
		message:     message.NewLegacyMessage(tx.Message, reserved),
		messageHash: hash,
		signatures:  slices.Clone(tx.Signatures),
	}, nil
}

/*
TryNewFromFields creates sanitized transaction from already sanitized message.
Only the signature count is checked: the message must require at least one
signature, the count must equal it and signers must be static account keys.
*/
func TryNewFromFields(msg message.SanitizedMessage, messageHash types.Hash, isSimpleVoteTx bool, signatures []types.Signature) (*SanitizedTransaction, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: message is nil", ErrSanitizeFailure)
	}
	required := int(msg.Header().NumRequiredSignatures)
	if required == 0 {
		return nil, fmt.Errorf("%w: message requires no signatures", ErrSanitizeFailure)
	}
	if err := checkSignatureCount(msg.Header(), len(signatures)); err != nil {
		return nil, err
	}
	if err := types.SanitizeSignatures(required, len(msg.StaticAccountKeys()), len(signatures)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSanitizeFailure, err)
	}
	return &SanitizedTransaction{
		message:        msg,
		messageHash:    messageHash,
		isSimpleVoteTx: isSimpleVoteTx,
		signatures:     slices.Clone(signatures),
	}, nil
}

/*
Signature returns the first signature of the transaction, it is used as the
transaction ID. Sanitized transaction always has at least one signature.
*/
func (tx *SanitizedTransaction) Signature() types.Signature {
	return tx.signatures[0]
}

// Signatures returns copy of the transaction signatures.
func (tx *SanitizedTransaction) Signatures() []types.Signature {
	return slices.Clone(tx.signatures)
}

func (tx *SanitizedTransaction) Message() message.SanitizedMessage {
	return tx.message
}

func (tx *SanitizedTransaction) MessageHash() types.Hash {
	return tx.messageHash
}

func (tx *SanitizedTransaction) IsSimpleVoteTransaction() bool {
	return tx.isSimpleVoteTx
}

// LoadedAddresses returns addresses loaded from lookup tables, empty for legacy transaction.
func (tx *SanitizedTransaction) LoadedAddresses() message.LoadedAddresses {
	return tx.message.LoadedAddresses()
}

// DurableNonce returns address of the nonce account when transaction uses durable nonce.
func (tx *SanitizedTransaction) DurableNonce() (*types.Pubkey, bool) {
	return tx.message.DurableNonce()
}

/*
ToVersionedTransaction returns new transaction in wire shape for recording in
the ledger. Addresses loaded from lookup tables are not part of it.
*/
func (tx *SanitizedTransaction) ToVersionedTransaction() *types.VersionedTransaction {
	return &types.VersionedTransaction{
		Signatures: slices.Clone(tx.signatures),
		Message:    tx.message.Versioned(),
	}
}
