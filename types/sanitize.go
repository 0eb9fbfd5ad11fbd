package types

import (
	"errors"
	"fmt"
)

// MaxAccountKeys is the upper bound of account keys a message can address as indexes are single bytes.
const MaxAccountKeys = 256

var (
	ErrSanitize         = errors.New("sanitize failed")
	ErrIndexOutOfBounds = fmt.Errorf("%w: index out of bounds", ErrSanitize)
	ErrInvalidValue     = fmt.Errorf("%w: invalid value", ErrSanitize)
)

/*
SanitizeSignatures checks that the number of signatures equals the number of
required signatures and that every signer is a static account key (signatures
are verified before lookup table addresses are loaded).
*/
func SanitizeSignatures(numRequiredSignatures, numStaticAccountKeys, numSignatures int) error {
	switch {
	case numRequiredSignatures > numSignatures:
		return fmt.Errorf("%w: %d signatures required, got %d", ErrIndexOutOfBounds, numRequiredSignatures, numSignatures)
	case numRequiredSignatures < numSignatures:
		return fmt.Errorf("%w: %d signatures required, got %d", ErrInvalidValue, numRequiredSignatures, numSignatures)
	}
	if numSignatures > numStaticAccountKeys {
		return fmt.Errorf("%w: %d signatures but only %d static account keys", ErrIndexOutOfBounds, numSignatures, numStaticAccountKeys)
	}
	return nil
}

// Sanitize performs structural validation of the legacy message.
func (m *Message) Sanitize() error {
	h := m.Header
	numKeys := len(m.AccountKeys)
	// signing area and read-only non-signing area must not overlap
	if int(h.NumRequiredSignatures)+int(h.NumReadonlyUnsignedAccounts) > numKeys {
		return fmt.Errorf("%w: header describes more accounts than the message has", ErrIndexOutOfBounds)
	}
	// at least one writable signer, the fee payer
	if h.NumReadonlySignedAccounts >= h.NumRequiredSignatures {
		return fmt.Errorf("%w: message has no writable signer", ErrIndexOutOfBounds)
	}
	for i, ci := range m.Instructions {
		if int(ci.ProgramIDIndex) >= numKeys {
			return fmt.Errorf("%w: instruction %d program id index %d", ErrIndexOutOfBounds, i, ci.ProgramIDIndex)
		}
		if ci.ProgramIDIndex == 0 {
			return fmt.Errorf("%w: instruction %d invokes fee payer as program", ErrIndexOutOfBounds, i)
		}
		for _, ai := range ci.Accounts {
			if int(ai) >= numKeys {
				return fmt.Errorf("%w: instruction %d account index %d", ErrIndexOutOfBounds, i, ai)
			}
		}
	}
	return nil
}

// Sanitize performs structural validation of the v0 message.
func (m *MessageV0) Sanitize() error {
	h := m.Header
	numStatic := len(m.AccountKeys)
	if int(h.NumRequiredSignatures)+int(h.NumReadonlyUnsignedAccounts) > numStatic {
		return fmt.Errorf("%w: header describes more accounts than the message has", ErrIndexOutOfBounds)
	}
	if h.NumReadonlySignedAccounts >= h.NumRequiredSignatures {
		return fmt.Errorf("%w: message has no writable signer", ErrInvalidValue)
	}

	numDynamic := 0
	for i, l := range m.AddressTableLookups {
		n := len(l.WritableIndexes) + len(l.ReadonlyIndexes)
		if n == 0 {
			return fmt.Errorf("%w: address table lookup %d loads no accounts", ErrInvalidValue, i)
		}
		numDynamic += n
	}

	if numStatic == 0 {
		return fmt.Errorf("%w: message has no static account keys", ErrInvalidValue)
	}

	total := numStatic + numDynamic
	if total > MaxAccountKeys {
		return fmt.Errorf("%w: message addresses %d accounts, max %d", ErrIndexOutOfBounds, total, MaxAccountKeys)
	}

	maxAccountIdx := total - 1
	// programs can't be loaded from lookup tables
	maxProgramIdx := numStatic - 1
	for i, ci := range m.Instructions {
		if int(ci.ProgramIDIndex) > maxProgramIdx {
			return fmt.Errorf("%w: instruction %d program id index %d", ErrIndexOutOfBounds, i, ci.ProgramIDIndex)
		}
		if ci.ProgramIDIndex == 0 {
			return fmt.Errorf("%w: instruction %d invokes fee payer as program", ErrIndexOutOfBounds, i)
		}
		for _, ai := range ci.Accounts {
			if int(ai) > maxAccountIdx {
				return fmt.Errorf("%w: instruction %d account index %d", ErrIndexOutOfBounds, i, ai)
			}
		}
	}
	return nil
}
