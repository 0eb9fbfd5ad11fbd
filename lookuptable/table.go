package lookuptable

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/types"
)

const (
	// MaxAddresses is the maximum number of addresses a table can store.
	MaxAddresses = 256
	// MaxSlotHashes is the number of slots a deactivated table stays usable.
	MaxSlotHashes = 512
	// Active is the DeactivationSlot of a table which hasn't been deactivated.
	Active uint64 = math.MaxUint64
)

var (
	ErrTableFull          = errors.New("lookup table is full")
	ErrAlreadyDeactivated = errors.New("lookup table is already deactivated")
	ErrNoAddresses        = errors.New("no addresses to add")
)

type (
	LookupTableMeta struct {
		_ struct{} `cbor:",toarray"`
		// DeactivationSlot is Active until the table is deactivated.
		DeactivationSlot uint64 `json:"deactivationSlot"`
		// LastExtendedSlot is the slot the table was last extended in. Addresses
		// added in that slot are not usable before the next slot.
		LastExtendedSlot           uint64 `json:"lastExtendedSlot"`
		LastExtendedSlotStartIndex uint8  `json:"lastExtendedSlotStartIndex"`
		// Authority is nil when the table is frozen.
		Authority *types.Pubkey `json:"authority,omitempty"`
	}

	AddressLookupTable struct {
		_         struct{}        `cbor:",toarray"`
		Meta      LookupTableMeta `json:"meta"`
		Addresses []types.Pubkey  `json:"addresses"`
	}
)

// New returns empty active table.
func New(authority *types.Pubkey) *AddressLookupTable {
	return &AddressLookupTable{
		Meta: LookupTableMeta{DeactivationSlot: Active, Authority: authority},
	}
}

/*
Extend appends "addresses" to the table in "slot". Addresses appended in
the same slot as the previous extension share the start index.
*/
func (t *AddressLookupTable) Extend(slot uint64, addresses ...types.Pubkey) error {
	if len(addresses) == 0 {
		return ErrNoAddresses
	}
	if t.Meta.DeactivationSlot != Active {
		return ErrAlreadyDeactivated
	}
	if n := len(t.Addresses) + len(addresses); n > MaxAddresses {
		return fmt.Errorf("%w: %d addresses, max %d", ErrTableFull, n, MaxAddresses)
	}
	if len(t.Addresses) == 0 || slot != t.Meta.LastExtendedSlot {
		t.Meta.LastExtendedSlot = slot
		// at most 255 addresses are in the table when it can still be extended
		t.Meta.LastExtendedSlotStartIndex = uint8(len(t.Addresses))
	}
	t.Addresses = append(t.Addresses, addresses...)
	return nil
}

func (t *AddressLookupTable) Deactivate(slot uint64) error {
	if t.Meta.DeactivationSlot != Active {
		return ErrAlreadyDeactivated
	}
	t.Meta.DeactivationSlot = slot
	return nil
}

/*
IsActive returns false once the deactivation of the table is older than
MaxSlotHashes slots. Deactivating table can still be used for lookups.
*/
func (t *AddressLookupTable) IsActive(currentSlot uint64) bool {
	if t.Meta.DeactivationSlot == Active || currentSlot <= t.Meta.DeactivationSlot {
		return true
	}
	return currentSlot-t.Meta.DeactivationSlot <= MaxSlotHashes
}

// ActiveAddressesLen returns the number of addresses usable in "currentSlot".
func (t *AddressLookupTable) ActiveAddressesLen(currentSlot uint64) int {
	if currentSlot > t.Meta.LastExtendedSlot {
		return len(t.Addresses)
	}
	return min(int(t.Meta.LastExtendedSlotStartIndex), len(t.Addresses))
}

// LookupAddresses returns the addresses at "indexes" or ErrInvalidLookupIndex.
func (t *AddressLookupTable) LookupAddresses(currentSlot uint64, indexes []uint8) ([]types.Pubkey, error) {
	active := t.ActiveAddressesLen(currentSlot)
	res := make([]types.Pubkey, 0, len(indexes))
	for _, idx := range indexes {
		if int(idx) >= active {
			return nil, fmt.Errorf("%w: index %d, %d active addresses", message.ErrInvalidLookupIndex, idx, active)
		}
		res = append(res, t.Addresses[idx])
	}
	return res, nil
}

func (t *AddressLookupTable) Clone() *AddressLookupTable {
	c := &AddressLookupTable{Meta: t.Meta, Addresses: slices.Clone(t.Addresses)}
	if t.Meta.Authority != nil {
		auth := *t.Meta.Authority
		c.Meta.Authority = &auth
	}
	return c
}
