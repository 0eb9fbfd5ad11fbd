package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kagren/solana-sdk/keyvaluedb/boltdb"
	"github.com/kagren/solana-sdk/logger"
	"github.com/kagren/solana-sdk/lookuptable"
	"github.com/kagren/solana-sdk/types"
)

const (
	flagNameAddress   = "address"
	flagNameAuthority = "authority"
	flagNameAddresses = "addresses"
)

type tableConfig struct {
	base      *baseConfiguration
	DBFile    string
	Address   string
	Authority string
	Addresses []string
	Slot      uint64
}

func newTableCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &tableConfig{base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "table",
		Short: "Manages address lookup tables",
	}
	cmd.PersistentFlags().StringVar(&config.DBFile, flagNameDB, "", fmt.Sprintf("lookup table database (default is $SANITIZER_HOME/%s)", defaultTableDBFile))
	cmd.AddCommand(newTablePutCmd(config))
	cmd.AddCommand(newTableExtendCmd(config))
	cmd.AddCommand(newTableGetCmd(config))
	cmd.AddCommand(newTableListCmd(config))
	cmd.AddCommand(newTableDeactivateCmd(config))
	cmd.AddCommand(newTableDeleteCmd(config))
	return cmd
}

func newTablePutCmd(config *tableConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "put",
		Short: "Creates new lookup table, replacing existing table with the same address",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.withStore(func(store *lookuptable.Store) error {
				return tablePutCmd(cmd, config, store)
			})
		},
	}
	cmd.Flags().StringVar(&config.Address, flagNameAddress, "", "table address, base58 (random address when not set)")
	cmd.Flags().StringVar(&config.Authority, flagNameAuthority, "", "table authority, base58 (frozen table when not set)")
	cmd.Flags().StringSliceVar(&config.Addresses, flagNameAddresses, nil, "addresses stored in the table, base58")
	cmd.Flags().Uint64Var(&config.Slot, flagNameSlot, 0, "slot the addresses are added in")
	return cmd
}

func newTableExtendCmd(config *tableConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "extend",
		Short: "Appends addresses to lookup table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.withStore(func(store *lookuptable.Store) error {
				address, err := config.tableAddress()
				if err != nil {
					return err
				}
				addresses, err := parsePubkeys(config.Addresses)
				if err != nil {
					return err
				}
				if err := store.Extend(address, config.Slot, addresses...); err != nil {
					return fmt.Errorf("extending table %s: %w", address, err)
				}
				config.base.log.InfoContext(cmd.Context(), "lookup table extended", logger.Account(address), logger.Slot(config.Slot))
				return printTable(store, address)
			})
		},
	}
	addTableAddressFlag(cmd, config)
	cmd.Flags().StringSliceVar(&config.Addresses, flagNameAddresses, nil, "addresses to add, base58")
	cmd.Flags().Uint64Var(&config.Slot, flagNameSlot, 0, "slot the addresses are added in")
	return cmd
}

func newTableGetCmd(config *tableConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "get",
		Short: "Prints lookup table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.withStore(func(store *lookuptable.Store) error {
				address, err := config.tableAddress()
				if err != nil {
					return err
				}
				return printTable(store, address)
			})
		},
	}
	addTableAddressFlag(cmd, config)
	return cmd
}

func newTableListCmd(config *tableConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Prints all lookup tables, one per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.withStore(func(store *lookuptable.Store) error {
				entries, err := store.List()
				if err != nil {
					return fmt.Errorf("listing tables: %w", err)
				}
				for _, e := range entries {
					if err := printJSON(e); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newTableDeactivateCmd(config *tableConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "deactivate",
		Short: "Deactivates lookup table, table can't be used once deactivation is older than 512 slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.withStore(func(store *lookuptable.Store) error {
				address, err := config.tableAddress()
				if err != nil {
					return err
				}
				if err := store.Deactivate(address, config.Slot); err != nil {
					return fmt.Errorf("deactivating table %s: %w", address, err)
				}
				config.base.log.InfoContext(cmd.Context(), "lookup table deactivated", logger.Account(address), logger.Slot(config.Slot))
				return printTable(store, address)
			})
		},
	}
	addTableAddressFlag(cmd, config)
	cmd.Flags().Uint64Var(&config.Slot, flagNameSlot, 0, "deactivation slot")
	return cmd
}

func newTableDeleteCmd(config *tableConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "delete",
		Short: "Deletes lookup table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.withStore(func(store *lookuptable.Store) error {
				address, err := config.tableAddress()
				if err != nil {
					return err
				}
				return store.Delete(address)
			})
		},
	}
	addTableAddressFlag(cmd, config)
	return cmd
}

func tablePutCmd(cmd *cobra.Command, config *tableConfig, store *lookuptable.Store) error {
	address := types.NewUniquePubkey()
	if config.Address != "" {
		var err error
		if address, err = config.tableAddress(); err != nil {
			return err
		}
	}
	var authority *types.Pubkey
	if config.Authority != "" {
		pk, err := types.PubkeyFromString(config.Authority)
		if err != nil {
			return fmt.Errorf("invalid authority: %w", err)
		}
		authority = &pk
	}
	addresses, err := parsePubkeys(config.Addresses)
	if err != nil {
		return err
	}

	table := lookuptable.New(authority)
	if len(addresses) > 0 {
		if err := table.Extend(config.Slot, addresses...); err != nil {
			return err
		}
	}
	if err := store.Put(address, table); err != nil {
		return fmt.Errorf("storing table: %w", err)
	}
	config.base.log.InfoContext(cmd.Context(), "lookup table stored", logger.Account(address))
	return printJSON(lookuptable.Entry{Address: address, Table: table})
}

func addTableAddressFlag(cmd *cobra.Command, config *tableConfig) {
	cmd.Flags().StringVar(&config.Address, flagNameAddress, "", "table address, base58")
	if err := cmd.MarkFlagRequired(flagNameAddress); err != nil {
		panic(err)
	}
}

func (c *tableConfig) tableAddress() (types.Pubkey, error) {
	pk, err := types.PubkeyFromString(c.Address)
	if err != nil {
		return types.Pubkey{}, fmt.Errorf("invalid table address: %w", err)
	}
	return pk, nil
}

func (c *tableConfig) withStore(f func(store *lookuptable.Store) error) (rErr error) {
	file := c.DBFile
	if file == "" {
		file = c.base.defaultTableDB()
	}
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}
	db, err := boltdb.New(file)
	if err != nil {
		return fmt.Errorf("opening lookup table database: %w", err)
	}
	defer func() { rErr = errors.Join(rErr, db.Close()) }()
	return f(lookuptable.NewStore(db))
}

func printTable(store *lookuptable.Store, address types.Pubkey) error {
	table, err := store.Get(address)
	if err != nil {
		return err
	}
	return printJSON(lookuptable.Entry{Address: address, Table: table})
}

func parsePubkeys(items []string) ([]types.Pubkey, error) {
	res := make([]types.Pubkey, 0, len(items))
	for _, s := range items {
		pk, err := types.PubkeyFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid address %q: %w", s, err)
		}
		res = append(res, pk)
	}
	return res, nil
}
