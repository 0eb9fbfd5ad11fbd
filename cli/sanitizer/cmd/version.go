package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kagren/solana-sdk/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints build information of the sanitizer",
		RunE: func(cmd *cobra.Command, args []string) error {
			info, ok := buildinfo.Read()
			if !ok {
				return errors.New("build information is not available")
			}
			return printJSON(info)
		},
	}
}
