package logger

import (
	"log/slog"

	"github.com/kagren/solana-sdk/types"
)

// Attribute keys shared by the packages. Use the constructor funcs below rather than the keys.
const (
	ModuleKey    = "module"
	ErrorKey     = "err"
	DataKey      = "data"
	SignatureKey = "tx_sig"
	AccountKey   = "account"
	SlotKey      = "slot"
)

/*
Error adds error to the log

	if err := tx.Verify(); err != nil {
		log.Warn("verifying transaction", logger.Error(err))
	}
*/
func Error(err error) slog.Attr {
	return slog.Any(ErrorKey, err)
}

/*
Data attaches arbitrary value to the record. Text and console formats print
it as JSON, ECS nests it under the name of its type.

Don't use slog.GroupValue or anonymous struct as the value.
*/
func Data(d any) slog.Attr {
	return slog.Any(DataKey, d)
}

// Signature logs the first signature of a transaction, ie the transaction ID.
func Signature(sig types.Signature) slog.Attr {
	return slog.String(SignatureKey, sig.String())
}

// Account logs account address in base58.
func Account(key types.Pubkey) slog.Attr {
	return slog.String(AccountKey, key.String())
}

func Slot(slot uint64) slog.Attr {
	return slog.Uint64(SlotKey, slot)
}
