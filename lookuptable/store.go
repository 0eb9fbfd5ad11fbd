package lookuptable

import (
	"errors"
	"fmt"

	"github.com/kagren/solana-sdk/keyvaluedb"
	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/types"
)

type (
	/*
	Account is the record stored for a table address. Data holds the CBOR
	encoded AddressLookupTable when the account is owned by the lookup table
	program.
	*/
	Account struct {
		_     struct{} `cbor:",toarray"`
		Owner types.Pubkey
		Data  []byte
	}

	// Store keeps lookup table accounts in key-value DB keyed by table address.
	Store struct {
		db keyvaluedb.KeyValueDB
	}

	Entry struct {
		Address types.Pubkey        `json:"address"`
		Table   *AddressLookupTable `json:"table"`
	}
)

func NewStore(db keyvaluedb.KeyValueDB) *Store {
	return &Store{db: db}
}

func encodeAccount(table *AddressLookupTable) (*Account, error) {
	if len(table.Addresses) > MaxAddresses {
		return nil, fmt.Errorf("%w: %d addresses, max %d", ErrTableFull, len(table.Addresses), MaxAddresses)
	}
	data, err := types.Cbor.Marshal(table)
	if err != nil {
		return nil, fmt.Errorf("encoding lookup table: %w", err)
	}
	return &Account{Owner: types.AddressLookupTableProgramID, Data: data}, nil
}

func decodeAccount(address types.Pubkey, acc *Account) (*AddressLookupTable, error) {
	if acc.Owner != types.AddressLookupTableProgramID {
		return nil, fmt.Errorf("%w: table %s is owned by %s", message.ErrInvalidAccountOwner, address, acc.Owner)
	}
	table := &AddressLookupTable{}
	if err := types.Cbor.Unmarshal(acc.Data, table); err != nil {
		return nil, fmt.Errorf("%w: table %s: %w", message.ErrInvalidAccountData, address, err)
	}
	if len(table.Addresses) > MaxAddresses {
		return nil, fmt.Errorf("%w: table %s has %d addresses", message.ErrInvalidAccountData, address, len(table.Addresses))
	}
	return table, nil
}

// Put stores "table" under "address", replacing existing table.
func (s *Store) Put(address types.Pubkey, table *AddressLookupTable) error {
	acc, err := encodeAccount(table)
	if err != nil {
		return err
	}
	return s.db.Write(address[:], acc)
}

/*
Get returns the table stored under "address". Error wraps one of
message.ErrLookupTableNotFound, ErrInvalidAccountOwner, ErrInvalidAccountData.
*/
func (s *Store) Get(address types.Pubkey) (*AddressLookupTable, error) {
	return s.get(s.db, address)
}

func (s *Store) get(r keyvaluedb.Reader, address types.Pubkey) (*AddressLookupTable, error) {
	acc := &Account{}
	found, err := r.Read(address[:], acc)
	if err != nil {
		return nil, fmt.Errorf("%w: table %s: %w", message.ErrInvalidAccountData, address, err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", message.ErrLookupTableNotFound, address)
	}
	return decodeAccount(address, acc)
}

func (s *Store) Delete(address types.Pubkey) error {
	return s.db.Delete(address[:])
}

// List returns every table in the store ordered by address.
func (s *Store) List() (_ []Entry, rErr error) {
	it := s.db.First()
	defer func() { rErr = errors.Join(rErr, it.Close()) }()

	var res []Entry
	for ; it.Valid(); it.Next() {
		address, err := types.PubkeyFromBytes(it.Key())
		if err != nil {
			return nil, fmt.Errorf("invalid key in lookup table store: %w", err)
		}
		acc := &Account{}
		if err := it.Value(acc); err != nil {
			return nil, fmt.Errorf("%w: table %s: %w", message.ErrInvalidAccountData, address, err)
		}
		table, err := decodeAccount(address, acc)
		if err != nil {
			return nil, err
		}
		res = append(res, Entry{Address: address, Table: table})
	}
	return res, nil
}

// Update applies "f" to the stored table within a DB transaction.
func (s *Store) Update(address types.Pubkey, f func(*AddressLookupTable) error) (rErr error) {
	tx, err := s.db.StartTx()
	if err != nil {
		return err
	}
	defer func() {
		if rErr != nil {
			rErr = errors.Join(rErr, tx.Rollback())
		}
	}()

	table, err := s.get(tx, address)
	if err != nil {
		return err
	}
	if err := f(table); err != nil {
		return err
	}
	acc, err := encodeAccount(table)
	if err != nil {
		return err
	}
	if err := tx.Write(address[:], acc); err != nil {
		return err
	}
	return tx.Commit()
}

// Extend appends addresses to the stored table in "slot".
func (s *Store) Extend(address types.Pubkey, slot uint64, addresses ...types.Pubkey) error {
	return s.Update(address, func(t *AddressLookupTable) error {
		return t.Extend(slot, addresses...)
	})
}

func (s *Store) Deactivate(address types.Pubkey, slot uint64) error {
	return s.Update(address, func(t *AddressLookupTable) error {
		return t.Deactivate(slot)
	})
}
