package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kagren/solana-sdk/logger"
	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/transaction"
	"github.com/kagren/solana-sdk/types"
)

const (
	flagNameTx     = "tx"
	flagNameTxFile = "tx-file"
)

type (
	sanitizeCmdConfig struct {
		sanitizeConfig
		Tx     string
		TxFile string
	}

	TxSummary struct {
		Signature       types.Signature          `json:"signature"`
		MessageHash     types.Hash               `json:"messageHash"`
		Version         string                   `json:"version"`
		SimpleVote      bool                     `json:"simpleVote"`
		FeePayer        types.Pubkey             `json:"feePayer"`
		WritableLocks   []types.Pubkey           `json:"writableLocks"`
		ReadonlyLocks   []types.Pubkey           `json:"readonlyLocks"`
		LoadedAddresses *message.LoadedAddresses `json:"loadedAddresses,omitempty"`
		DurableNonce    *types.Pubkey            `json:"durableNonce,omitempty"`
		Verified        []bool                   `json:"verified,omitempty"`
	}
)

func newSanitizeCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &sanitizeCmdConfig{sanitizeConfig: sanitizeConfig{base: baseConfig}}
	var cmd = &cobra.Command{
		Use:   "sanitize",
		Short: "Sanitizes single transaction and prints summary of it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return sanitizeCmd(cmd, config)
		},
	}
	config.addFlags(cmd)
	cmd.Flags().StringVar(&config.Tx, flagNameTx, "", "hex or base64 encoded transaction")
	cmd.Flags().StringVar(&config.TxFile, flagNameTxFile, "", "file containing hex or base64 encoded transaction")
	cmd.MarkFlagsMutuallyExclusive(flagNameTx, flagNameTxFile)
	return cmd
}

func sanitizeCmd(cmd *cobra.Command, config *sanitizeCmdConfig) (rErr error) {
	log := config.base.log
	raw, err := config.readTx()
	if err != nil {
		return err
	}
	vtx, err := types.DecodeVersionedTransaction(raw)
	if err != nil {
		return fmt.Errorf("decoding transaction: %w", err)
	}
	reserved, err := config.reservedKeys()
	if err != nil {
		return err
	}
	isVote, err := config.simpleVote()
	if err != nil {
		return err
	}
	loader, closeDB, err := config.addressLoader()
	if err != nil {
		return err
	}
	defer func() { rErr = errors.Join(rErr, closeDB()) }()

	tx, err := transaction.TryCreate(vtx, transaction.ComputeHash(), isVote, loader, reserved)
	if err != nil {
		return fmt.Errorf("sanitizing transaction: %w", err)
	}
	locks, err := tx.AccountLocks(config.LockLimit)
	if err != nil {
		return fmt.Errorf("account locks: %w", err)
	}
	summary := newTxSummary(tx, locks)
	var verifyErr error
	if config.Verify {
		summary.Verified = tx.VerifyWithResults()
		verifyErr = tx.Verify()
	}
	log.DebugContext(cmd.Context(), "transaction sanitized", logger.Signature(tx.Signature()), logger.Data(summary))
	if err := printJSON(summary); err != nil {
		return err
	}
	if verifyErr != nil {
		return fmt.Errorf("verifying signatures: %w", verifyErr)
	}
	return nil
}

func (c *sanitizeCmdConfig) readTx() ([]byte, error) {
	s := c.Tx
	if c.TxFile != "" {
		b, err := os.ReadFile(c.TxFile)
		if err != nil {
			return nil, fmt.Errorf("reading transaction file: %w", err)
		}
		s = string(b)
	}
	if s == "" {
		return nil, fmt.Errorf("either --%s or --%s must be set", flagNameTx, flagNameTxFile)
	}
	return decodeTxString(s)
}

func newTxSummary(tx *transaction.SanitizedTransaction, locks *transaction.AccountLocks) *TxSummary {
	msg := tx.Message()
	s := &TxSummary{
		Signature:     tx.Signature(),
		MessageHash:   tx.MessageHash(),
		Version:       msg.Version().String(),
		SimpleVote:    tx.IsSimpleVoteTransaction(),
		FeePayer:      msg.FeePayer(),
		WritableLocks: derefKeys(locks.Writable),
		ReadonlyLocks: derefKeys(locks.Readonly),
	}
	if loaded := tx.LoadedAddresses(); !loaded.IsEmpty() {
		s.LoadedAddresses = &loaded
	}
	if nonce, ok := tx.DurableNonce(); ok {
		n := *nonce
		s.DurableNonce = &n
	}
	return s
}

func derefKeys(keys []*types.Pubkey) []types.Pubkey {
	res := make([]types.Pubkey, len(keys))
	for i, k := range keys {
		res[i] = *k
	}
	return res
}
