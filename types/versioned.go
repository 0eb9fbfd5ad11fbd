package types

import (
	"errors"
	"fmt"
	"slices"
)

type MessageVersion uint8

const (
	// LegacyVersion is not encoded on the wire, legacy messages have no version prefix.
	LegacyVersion MessageVersion = 0xFF
	V0            MessageVersion = 0

	// MessageVersionPrefix is set on the first byte of a versioned message,
	// the lower seven bits carry the version number.
	MessageVersionPrefix byte = 0x80

	// legacyMessageHead is the CBOR head byte of a four element array, ie
	// every serialized legacy message starts with it.
	legacyMessageHead byte = 0x84
)

func (v MessageVersion) String() string {
	switch v {
	case LegacyVersion:
		return "legacy"
	default:
		return fmt.Sprintf("v%d", uint8(v))
	}
}

var ErrUnsupportedVersion = errors.New("unsupported message version")

/*
VersionedMessage is either legacy *Message or *MessageV0.
*/
type VersionedMessage interface {
	Version() MessageVersion
	GetHeader() MessageHeader
	GetAccountKeys() []Pubkey
	GetRecentBlockhash() Hash
	GetInstructions() []CompiledInstruction
	GetAddressTableLookups() []MessageAddressTableLookup
	// Serialize returns the canonical bytes signed by the transaction signers.
	Serialize() ([]byte, error)
	// Hash returns message hash, ie hash of the serialized message.
	Hash() (Hash, error)
	// Sanitize performs structural validation of the message.
	Sanitize() error

	versionedMessage()
}

// CloneVersionedMessage returns deep copy of "msg".
func CloneVersionedMessage(msg VersionedMessage) VersionedMessage {
	switch m := msg.(type) {
	case *Message:
		return m.Clone()
	case *MessageV0:
		return m.Clone()
	default:
		return nil
	}
}

// DecodeVersionedMessage decodes serialized message, dispatching on the version prefix.
func DecodeVersionedMessage(data []byte) (VersionedMessage, error) {
	if len(data) == 0 {
		return nil, errors.New("message data is empty")
	}
	if data[0] == legacyMessageHead {
		msg := &Message{}
		if err := Cbor.Unmarshal(data, msg); err != nil {
			return nil, fmt.Errorf("decoding legacy message: %w", err)
		}
		return msg, nil
	}
	if data[0]&MessageVersionPrefix == 0 {
		return nil, fmt.Errorf("invalid message prefix 0x%02x", data[0])
	}
	switch version := MessageVersion(data[0] &^ MessageVersionPrefix); version {
	case V0:
		msg := &MessageV0{}
		if err := Cbor.Unmarshal(data[1:], msg); err != nil {
			return nil, fmt.Errorf("decoding v0 message: %w", err)
		}
		return msg, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, version)
	}
}

type (
	// VersionedTransaction is the wire shape of a transaction carrying either message version.
	VersionedTransaction struct {
		Signatures []Signature
		Message    VersionedMessage
	}

	// Transaction is a transaction with legacy message.
	Transaction struct {
		Signatures []Signature
		Message    *Message
	}

	// transactionWire is the CBOR representation of both transaction types.
	transactionWire struct {
		_          struct{} `cbor:",toarray"`
		Signatures []Signature
		Message    []byte
	}
)

// DecodeVersionedTransaction decodes transaction from its wire bytes.
func DecodeVersionedTransaction(data []byte) (*VersionedTransaction, error) {
	tx := &VersionedTransaction{}
	if err := Cbor.Unmarshal(data, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (tx *VersionedTransaction) MarshalCBOR() ([]byte, error) {
	if tx.Message == nil {
		return nil, errors.New("transaction message is nil")
	}
	msg, err := tx.Message.Serialize()
	if err != nil {
		return nil, err
	}
	return Cbor.Marshal(&transactionWire{Signatures: tx.Signatures, Message: msg})
}

func (tx *VersionedTransaction) UnmarshalCBOR(data []byte) error {
	var w transactionWire
	if err := Cbor.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decoding transaction: %w", err)
	}
	msg, err := DecodeVersionedMessage(w.Message)
	if err != nil {
		return err
	}
	tx.Signatures = w.Signatures
	tx.Message = msg
	return nil
}

// Bytes returns the wire encoding of the transaction.
func (tx *VersionedTransaction) Bytes() ([]byte, error) {
	return Cbor.Marshal(tx)
}

func (tx *VersionedTransaction) Clone() *VersionedTransaction {
	return &VersionedTransaction{
		Signatures: slices.Clone(tx.Signatures),
		Message:    CloneVersionedMessage(tx.Message),
	}
}

/*
Sanitize checks the transaction structure: signature count must match the
number of required signatures exactly, signers must be static keys and the
message itself must be well formed.
*/
func (tx *VersionedTransaction) Sanitize() error {
	if tx.Message == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidValue)
	}
	if err := tx.SanitizeSignatures(); err != nil {
		return err
	}
	return tx.Message.Sanitize()
}

func (tx *VersionedTransaction) SanitizeSignatures() error {
	return SanitizeSignatures(
		int(tx.Message.GetHeader().NumRequiredSignatures),
		len(tx.Message.GetAccountKeys()),
		len(tx.Signatures),
	)
}

// NewTransaction creates unsigned transaction, signatures are zero filled.
func NewTransaction(msg *Message) *Transaction {
	return &Transaction{
		Signatures: make([]Signature, msg.Header.NumRequiredSignatures),
		Message:    msg,
	}
}

func (tx *Transaction) MarshalCBOR() ([]byte, error) {
	if tx.Message == nil {
		return nil, errors.New("transaction message is nil")
	}
	msg, err := tx.Message.Serialize()
	if err != nil {
		return nil, err
	}
	return Cbor.Marshal(&transactionWire{Signatures: tx.Signatures, Message: msg})
}

func (tx *Transaction) UnmarshalCBOR(data []byte) error {
	vtx := &VersionedTransaction{}
	if err := vtx.UnmarshalCBOR(data); err != nil {
		return err
	}
	msg, ok := vtx.Message.(*Message)
	if !ok {
		return fmt.Errorf("%w: expected legacy message, got %s", ErrUnsupportedVersion, vtx.Message.Version())
	}
	tx.Signatures = vtx.Signatures
	tx.Message = msg
	return nil
}

// Versioned returns copy of the transaction as VersionedTransaction.
func (tx *Transaction) Versioned() *VersionedTransaction {
	return &VersionedTransaction{
		Signatures: slices.Clone(tx.Signatures),
		Message:    tx.Message.Clone(),
	}
}

/*
Sanitize checks the legacy transaction structure. Unlike the versioned
transaction legacy format tolerates more signatures than required.
*/
func (tx *Transaction) Sanitize() error {
	if tx.Message == nil {
		return fmt.Errorf("%w: message is nil", ErrInvalidValue)
	}
	if int(tx.Message.Header.NumRequiredSignatures) > len(tx.Signatures) {
		return fmt.Errorf("%w: transaction has %d signatures, %d required", ErrIndexOutOfBounds, len(tx.Signatures), tx.Message.Header.NumRequiredSignatures)
	}
	if len(tx.Signatures) > len(tx.Message.AccountKeys) {
		return fmt.Errorf("%w: transaction has more signatures than account keys", ErrIndexOutOfBounds)
	}
	return tx.Message.Sanitize()
}

/*
Sign signs the message with given signing functions, "signers" must be in the
same order as the signer accounts of the message.
*/
func (tx *Transaction) Sign(signers ...func(data []byte) (Signature, error)) error {
	if len(signers) != int(tx.Message.Header.NumRequiredSignatures) {
		return fmt.Errorf("expected %d signers, got %d", tx.Message.Header.NumRequiredSignatures, len(signers))
	}
	data, err := tx.Message.Serialize()
	if err != nil {
		return err
	}
	sigs := make([]Signature, len(signers))
	for i, sign := range signers {
		if sigs[i], err = sign(data); err != nil {
			return fmt.Errorf("signing with signer %d: %w", i, err)
		}
	}
	tx.Signatures = sigs
	return nil
}
