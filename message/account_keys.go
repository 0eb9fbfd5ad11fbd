package message

import (
	"github.com/kagren/solana-sdk/types"
)

/*
AccountKeys is a read-only view of the combined account key list of a
message: static keys, then loaded writable addresses, then loaded readonly
addresses. It doesn't copy the keys, pointers returned by Get point into the
storage of the message the view was obtained from.
*/
type AccountKeys struct {
	static  []types.Pubkey
	dynamic *LoadedAddresses
}

func newAccountKeys(static []types.Pubkey, dynamic *LoadedAddresses) AccountKeys {
	return AccountKeys{static: static, dynamic: dynamic}
}

func (k AccountKeys) segments() [3][]types.Pubkey {
	if k.dynamic == nil {
		return [3][]types.Pubkey{k.static}
	}
	return [3][]types.Pubkey{k.static, k.dynamic.Writable, k.dynamic.Readonly}
}

func (k AccountKeys) Len() int {
	n := 0
	for _, s := range k.segments() {
		n += len(s)
	}
	return n
}

// Get returns key at "index" of the combined list, false when out of range.
func (k AccountKeys) Get(index int) (*types.Pubkey, bool) {
	if index < 0 {
		return nil, false
	}
	for _, s := range k.segments() {
		if index < len(s) {
			return &s[index], true
		}
		index -= len(s)
	}
	return nil, false
}

// ForEach calls "f" for every key in order, stops early when "f" returns false.
func (k AccountKeys) ForEach(f func(index int, key *types.Pubkey) bool) {
	i := 0
	for _, s := range k.segments() {
		for j := range s {
			if !f(i, &s[j]) {
				return
			}
			i++
		}
	}
}

// Contains reports whether "key" is part of the combined list.
func (k AccountKeys) Contains(key types.Pubkey) bool {
	found := false
	k.ForEach(func(_ int, pk *types.Pubkey) bool {
		found = *pk == key
		return !found
	})
	return found
}

// Slice returns copy of the combined key list.
func (k AccountKeys) Slice() []types.Pubkey {
	keys := make([]types.Pubkey, 0, k.Len())
	for _, s := range k.segments() {
		keys = append(keys, s...)
	}
	return keys
}
