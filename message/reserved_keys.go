package message

import (
	"github.com/kagren/solana-sdk/types"
)

/*
ReservedAccountKeys is a set of addresses which are never writable, no
matter where the message header places them. The zero value is an empty set.
*/
type ReservedAccountKeys struct {
	keys map[types.Pubkey]struct{}
}

func NewReservedAccountKeys(keys ...types.Pubkey) ReservedAccountKeys {
	set := make(map[types.Pubkey]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return ReservedAccountKeys{keys: set}
}

// DefaultReservedAccountKeys returns the builtin programs and sysvars.
func DefaultReservedAccountKeys() ReservedAccountKeys {
	return NewReservedAccountKeys(append(types.BuiltinProgramIDs(), types.SysvarIDs()...)...)
}

func (r ReservedAccountKeys) Contains(key types.Pubkey) bool {
	_, ok := r.keys[key]
	return ok
}

func (r ReservedAccountKeys) Len() int {
	return len(r.keys)
}

// With returns new set which contains keys of "r" and "keys".
func (r ReservedAccountKeys) With(keys ...types.Pubkey) ReservedAccountKeys {
	set := make(map[types.Pubkey]struct{}, len(r.keys)+len(keys))
	for k := range r.keys {
		set[k] = struct{}{}
	}
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return ReservedAccountKeys{keys: set}
}
