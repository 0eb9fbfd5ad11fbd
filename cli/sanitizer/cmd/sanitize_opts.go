package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kagren/solana-sdk/keyvaluedb/boltdb"
	"github.com/kagren/solana-sdk/lookuptable"
	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/transaction"
	"github.com/kagren/solana-sdk/types"
)

const (
	flagNameDB                = "db"
	flagNameSlot              = "slot"
	flagNameReserved          = "reserved"
	flagNameNoDefaultReserved = "no-default-reserved"
	flagNameVote              = "vote"
	flagNameLockLimit         = "lock-limit"
	flagNameVerify            = "verify"
)

// sanitizeConfig holds the options shared by the sanitize and batch commands.
type sanitizeConfig struct {
	base              *baseConfiguration
	DBFile            string
	Slot              uint64
	Reserved          []string
	NoDefaultReserved bool
	Vote              string
	LockLimit         int
	Verify            bool
}

func (c *sanitizeConfig) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.DBFile, flagNameDB, "", fmt.Sprintf("lookup table database (default is $SANITIZER_HOME/%s, v0 transactions fail when the file doesn't exist)", defaultTableDBFile))
	cmd.Flags().Uint64Var(&c.Slot, flagNameSlot, 0, "current slot, used to resolve active lookup table addresses")
	cmd.Flags().StringSliceVar(&c.Reserved, flagNameReserved, nil, "additional reserved (never writable) account keys, base58")
	cmd.Flags().BoolVar(&c.NoDefaultReserved, flagNameNoDefaultReserved, false, "do not reserve builtin program and sysvar keys")
	cmd.Flags().StringVar(&c.Vote, flagNameVote, "", "override simple vote classification: true or false")
	cmd.Flags().IntVar(&c.LockLimit, flagNameLockLimit, transaction.MaxTxAccountLocks, "maximum number of accounts a transaction may lock")
	cmd.Flags().BoolVar(&c.Verify, flagNameVerify, false, "verify transaction signatures")
}

func (c *sanitizeConfig) reservedKeys() (message.ReservedAccountKeys, error) {
	keys := make([]types.Pubkey, 0, len(c.Reserved))
	for _, s := range c.Reserved {
		pk, err := types.PubkeyFromString(strings.TrimSpace(s))
		if err != nil {
			return message.ReservedAccountKeys{}, fmt.Errorf("invalid reserved key %q: %w", s, err)
		}
		keys = append(keys, pk)
	}
	if c.NoDefaultReserved {
		return message.NewReservedAccountKeys(keys...), nil
	}
	return message.DefaultReservedAccountKeys().With(keys...), nil
}

func (c *sanitizeConfig) simpleVote() (*bool, error) {
	if c.Vote == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(c.Vote)
	if err != nil {
		return nil, fmt.Errorf("invalid %s flag value %q: %w", flagNameVote, c.Vote, err)
	}
	return &b, nil
}

/*
addressLoader opens the lookup table store. When user hasn't set the DB file
and the default file doesn't exist nil loader is returned. Returned close
function must be called when done with the loader.
*/
func (c *sanitizeConfig) addressLoader() (message.AddressLoader, func() error, error) {
	file := c.DBFile
	if file == "" {
		file = c.base.defaultTableDB()
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			return nil, func() error { return nil }, nil
		}
	}
	db, err := boltdb.New(file)
	if err != nil {
		return nil, nil, fmt.Errorf("opening lookup table database: %w", err)
	}
	return lookuptable.NewLoader(lookuptable.NewStore(db), c.Slot), db.Close, nil
}

/*
decodeTxString decodes transaction given as hex (with optional 0x prefix) or
base64 string. Encoded transaction starts with CBOR array head so its base64
form never looks like hex.
*/
func decodeTxString(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty transaction")
	}
	if b, err := hex.DecodeString(strings.TrimPrefix(s, "0x")); err == nil {
		return b, nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.New("transaction is neither hex nor base64 encoded")
	}
	return b, nil
}
