package message

import (
	"errors"
	"slices"

	"github.com/kagren/solana-sdk/types"
)

var (
	ErrAddressLoaderDisabled = errors.New("address lookup tables are not supported")
	ErrLookupTableNotFound   = errors.New("address lookup table account not found")
	ErrInvalidAccountOwner   = errors.New("invalid address lookup table account owner")
	ErrInvalidAccountData    = errors.New("invalid address lookup table account data")
	ErrInvalidLookupIndex    = errors.New("invalid address lookup table index")
)

type (
	/*
	AddressLoader resolves the address table lookups of a v0 message. The
	writable addresses of all lookups are returned (in lookup order) in the
	Writable list and the readonly addresses in the Readonly list.
	*/
	AddressLoader interface {
		LoadAddresses(lookups []types.MessageAddressTableLookup) (LoadedAddresses, error)
	}

	// AddressLoaderFunc adapts ordinary function to the AddressLoader interface.
	AddressLoaderFunc func(lookups []types.MessageAddressTableLookup) (LoadedAddresses, error)

	// LoadedAddresses are the addresses resolved from address lookup tables.
	LoadedAddresses struct {
		Writable []types.Pubkey `json:"writable"`
		Readonly []types.Pubkey `json:"readonly"`
	}

	/*
	SimpleAddressLoader either refuses to load anything or returns the same
	fixed set of addresses for any lookup.
	*/
	SimpleAddressLoader struct {
		enabled   bool
		addresses LoadedAddresses
	}
)

func (f AddressLoaderFunc) LoadAddresses(lookups []types.MessageAddressTableLookup) (LoadedAddresses, error) {
	return f(lookups)
}

// DisabledAddressLoader returns loader which fails every lookup with ErrAddressLoaderDisabled.
func DisabledAddressLoader() SimpleAddressLoader {
	return SimpleAddressLoader{}
}

// FixedAddressLoader returns loader which resolves any lookup to "addresses".
func FixedAddressLoader(addresses LoadedAddresses) SimpleAddressLoader {
	return SimpleAddressLoader{enabled: true, addresses: addresses}
}

func (l SimpleAddressLoader) LoadAddresses(_ []types.MessageAddressTableLookup) (LoadedAddresses, error) {
	if !l.enabled {
		return LoadedAddresses{}, ErrAddressLoaderDisabled
	}
	return l.addresses.Clone(), nil
}

// Len returns the total number of loaded addresses.
func (la LoadedAddresses) Len() int {
	return len(la.Writable) + len(la.Readonly)
}

func (la LoadedAddresses) IsEmpty() bool {
	return la.Len() == 0
}

func (la LoadedAddresses) Clone() LoadedAddresses {
	return LoadedAddresses{
		Writable: slices.Clone(la.Writable),
		Readonly: slices.Clone(la.Readonly),
	}
}
