package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kagren/solana-sdk/internal/buildinfo"
	"github.com/kagren/solana-sdk/logger"
	"github.com/kagren/solana-sdk/transaction/batch"
)

const (
	flagNameInput       = "input"
	flagNameWorkers     = "workers"
	flagNameMetricsFile = "metrics-file"
)

type (
	batchCmdConfig struct {
		sanitizeConfig
		Input       string
		Workers     int
		MetricsFile string
	}

	batchLine struct {
		Line int `json:"line"`
		*TxSummary
		Error string `json:"error,omitempty"`
	}
)

func newBatchCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &batchCmdConfig{sanitizeConfig: sanitizeConfig{base: baseConfig}}
	var cmd = &cobra.Command{
		Use:   "batch",
		Short: "Sanitizes transactions read from file, one hex or base64 encoded transaction per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			return batchCmd(cmd, config)
		},
	}
	config.addFlags(cmd)
	cmd.Flags().StringVar(&config.Input, flagNameInput, "", "input file, stdin when not set")
	cmd.Flags().IntVar(&config.Workers, flagNameWorkers, 0, "number of transactions sanitized concurrently (default is number of CPUs)")
	cmd.Flags().StringVar(&config.MetricsFile, flagNameMetricsFile, "", "write Prometheus metrics of the run into this file")
	return cmd
}

func batchCmd(cmd *cobra.Command, config *batchCmdConfig) (rErr error) {
	lines, err := config.readLines(cmd)
	if err != nil {
		return err
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

	info, _ := buildinfo.Read()
	config.base.log.DebugContext(cmd.Context(), fmt.Sprintf("starting batch of %d transactions: BuildInfo=%s", len(lines), info))

	reg := prometheus.NewRegistry()
	metrics, err := batch.NewMetrics(reg)
	if err != nil {
		return err
	}

	// lines which can't be decoded from text are reported as decode errors
	raw := make([][]byte, len(lines))
	for i, l := range lines {
		if raw[i], err = decodeTxString(l); err != nil {
			raw[i] = nil
		}
	}

	s := batch.New(
		batch.WithWorkers(config.Workers),
		batch.WithAddressLoader(loader),
		batch.WithReservedAccountKeys(reserved),
		batch.WithLockLimit(config.LockLimit),
		batch.WithVerify(config.Verify),
		batch.WithSimpleVote(isVote),
		batch.WithMetrics(metrics),
		batch.WithLogger(config.base.log),
	)
	results, err := s.Sanitize(cmd.Context(), raw)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		out := batchLine{Line: r.Index + 1}
		if r.Err != nil {
			failed++
			out.Error = r.Err.Error()
		} else {
			out.TxSummary = newTxSummary(r.Tx, r.Locks)
			out.Verified = r.Verified
		}
		if err := printJSON(out); err != nil {
			return err
		}
	}
	config.base.log.InfoContext(cmd.Context(), fmt.Sprintf("sanitized %d transactions, %d failed", len(results), failed), logger.Data(map[string]int{"total": len(results), "failed": failed}))

	if config.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(config.MetricsFile, reg); err != nil {
			return fmt.Errorf("writing metrics file: %w", err)
		}
	}
	return nil
}

// readLines returns non-empty lines of the input.
func (c *batchCmdConfig) readLines(cmd *cobra.Command) ([]string, error) {
	in := cmd.InOrStdin()
	if c.Input != "" {
		f, err := os.Open(c.Input)
		if err != nil {
			return nil, fmt.Errorf("opening input file: %w", err)
		}
		defer f.Close()
		in = f
	}

	var lines []string
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if l := strings.TrimSpace(scanner.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}
