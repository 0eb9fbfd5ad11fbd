package cmd

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tyler-smith/go-bip39"

	"github.com/kagren/solana-sdk/crypto"
	"github.com/kagren/solana-sdk/types"
)

const (
	mnemonicEntropyBitSize = 256

	flagNameKeyFile    = "key-file"
	flagNameMnemonic   = "mnemonic"
	flagNameForce      = "force"
	defaultKeyFileName = "mnemonic.txt"
)

type (
	keysConfig struct {
		base     *baseConfiguration
		KeyFile  string
		Mnemonic string
		Force    bool
	}

	keyInfo struct {
		Pubkey   types.Pubkey `json:"pubkey"`
		Mnemonic string       `json:"mnemonic,omitempty"`
		KeyFile  string       `json:"keyFile,omitempty"`
	}
)

func newKeysCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &keysConfig{base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "keys",
		Short: "Manages ed25519 signing keys derived from bip39 mnemonic",
	}
	cmd.PersistentFlags().StringVarP(&config.KeyFile, flagNameKeyFile, "k", "", fmt.Sprintf("mnemonic file (default is $SANITIZER_HOME/%s)", defaultKeyFileName))
	cmd.AddCommand(newKeysGenerateCmd(config))
	cmd.AddCommand(newKeysShowCmd(config))
	return cmd
}

func newKeysGenerateCmd(config *keysConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "generate",
		Short: "Generates new mnemonic, saves it into the key file and prints the public key",
		RunE: func(cmd *cobra.Command, args []string) error {
			return keysGenerateCmd(config)
		},
	}
	cmd.Flags().BoolVarP(&config.Force, flagNameForce, "f", false, "overwrite existing key file")
	return cmd
}

func newKeysShowCmd(config *keysConfig) *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "show",
		Short: "Prints the public key of the mnemonic given by flag or stored in the key file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return keysShowCmd(config)
		},
	}
	cmd.Flags().StringVar(&config.Mnemonic, flagNameMnemonic, "", "bip39 mnemonic, words separated by space")
	return cmd
}

func keysGenerateCmd(config *keysConfig) error {
	file := config.keyFile()
	if _, err := os.Stat(file); err == nil && !config.Force {
		return fmt.Errorf("key file %s already exists, use --%s to overwrite", file, flagNameForce)
	}

	entropy, err := bip39.NewEntropy(mnemonicEntropyBitSize)
	if err != nil {
		return fmt.Errorf("generating entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return fmt.Errorf("generating mnemonic: %w", err)
	}
	signer, err := signerFromMnemonic(mnemonic)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return fmt.Errorf("creating key file directory: %w", err)
	}
	if err := os.WriteFile(file, []byte(mnemonic+"\n"), 0600); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}
	return printJSON(keyInfo{Pubkey: signerPubkey(signer), Mnemonic: mnemonic, KeyFile: file})
}

func keysShowCmd(config *keysConfig) error {
	mnemonic := config.Mnemonic
	if mnemonic == "" {
		b, err := os.ReadFile(config.keyFile())
		if err != nil {
			return fmt.Errorf("reading key file: %w", err)
		}
		mnemonic = string(b)
	}
	signer, err := signerFromMnemonic(mnemonic)
	if err != nil {
		return err
	}
	return printJSON(keyInfo{Pubkey: signerPubkey(signer)})
}

func (c *keysConfig) keyFile() string {
	if c.KeyFile != "" {
		return c.KeyFile
	}
	return filepath.Join(c.base.HomeDir, defaultKeyFileName)
}

// signerFromMnemonic derives ed25519 key from the first 32 bytes of the bip39 seed.
func signerFromMnemonic(mnemonic string) (*crypto.InMemoryEd25519Signer, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, errors.New("invalid mnemonic")
	}
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, "")
	if err != nil {
		return nil, fmt.Errorf("creating seed: %w", err)
	}
	return crypto.NewInMemoryEd25519SignerFromSeed(seed[:ed25519.SeedSize])
}

func signerPubkey(s *crypto.InMemoryEd25519Signer) types.Pubkey {
	var pk types.Pubkey
	copy(pk[:], s.PublicKey())
	return pk
}
