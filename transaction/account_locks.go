package transaction

import (
	"fmt"

	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/types"
)

/*
MaxTxAccountLocks is the default maximum number of accounts a transaction
may lock. 128 is the minimum number of accounts the Neon EVM needs.
*/
const MaxTxAccountLocks = 128

/*
AccountLocks is the set of accounts which must be locked while processing
the transaction. Keys point into the storage of the transaction message and
must not be modified.
*/
type AccountLocks struct {
	Readonly []*types.Pubkey
	Writable []*types.Pubkey
}

// AccountLocks validates and returns the account keys locked by the transaction.
func (tx *SanitizedTransaction) AccountLocks(limit int) (*AccountLocks, error) {
	if err := ValidateAccountLocks(tx.message, limit); err != nil {
		return nil, err
	}
	return tx.AccountLocksUnchecked(), nil
}

/*
AccountLocksUnchecked partitions the account keys of the transaction into
writable and readonly locks. Every key ends up in exactly one of the lists.
*/
func (tx *SanitizedTransaction) AccountLocksUnchecked() *AccountLocks {
	keys := tx.message.AccountKeys()
	numReadonly := min(tx.message.NumReadonlyAccounts(), keys.Len())
	locks := &AccountLocks{
		Readonly: make([]*types.Pubkey, 0, numReadonly),
		Writable: make([]*types.Pubkey, 0, keys.Len()-numReadonly),
	}
	keys.ForEach(func(i int, key *types.Pubkey) bool {
		if tx.message.IsWritable(i) {
			locks.Writable = append(locks.Writable, key)
		} else {
			locks.Readonly = append(locks.Readonly, key)
		}
		return true
	})
	return locks
}

/*
ValidateAccountLocks checks that the message doesn't refer to the same
account twice and that it doesn't lock more than "limit" accounts.
*/
func ValidateAccountLocks(msg message.SanitizedMessage, limit int) error {
	if msg.HasDuplicates() {
		return ErrAccountLoadedTwice
	}
	if n := msg.AccountKeys().Len(); n > limit {
		return fmt.Errorf("%w: %d accounts, limit %d", ErrTooManyAccountLocks, n, limit)
	}
	return nil
}
