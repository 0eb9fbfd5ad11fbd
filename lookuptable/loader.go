package lookuptable

import (
	"fmt"

	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/types"
)

// Loader resolves address table lookups against the tables in the Store as of given slot.
type Loader struct {
	store *Store
	slot  uint64
}

var _ message.AddressLoader = (*Loader)(nil)

func NewLoader(store *Store, currentSlot uint64) *Loader {
	return &Loader{store: store, slot: currentSlot}
}

func (l *Loader) LoadAddresses(lookups []types.MessageAddressTableLookup) (message.LoadedAddresses, error) {
	var loaded message.LoadedAddresses
	for _, lookup := range lookups {
		table, err := l.store.Get(lookup.AccountKey)
		if err != nil {
			return message.LoadedAddresses{}, err
		}
		if !table.IsActive(l.slot) {
			return message.LoadedAddresses{}, fmt.Errorf("%w: table %s was deactivated in slot %d", message.ErrLookupTableNotFound, lookup.AccountKey, table.Meta.DeactivationSlot)
		}
		w, err := table.LookupAddresses(l.slot, lookup.WritableIndexes)
		if err != nil {
			return message.LoadedAddresses{}, fmt.Errorf("table %s: %w", lookup.AccountKey, err)
		}
		r, err := table.LookupAddresses(l.slot, lookup.ReadonlyIndexes)
		if err != nil {
			return message.LoadedAddresses{}, fmt.Errorf("table %s: %w", lookup.AccountKey, err)
		}
		loaded.Writable = append(loaded.Writable, w...)
		loaded.Readonly = append(loaded.Readonly, r...)
	}
	return loaded, nil
}
