package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/kagren/solana-sdk/logger"
	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/transaction"
	"github.com/kagren/solana-sdk/types"
)

var ErrCanceled = errors.New("batch canceled")

type (
	// DecodeError is returned for input which is not a valid wire transaction.
	DecodeError struct {
		err error
	}

	/*
	Result is the outcome of a single transaction of the batch. Exactly one of
	Tx and Err is set. Verified is nil when signatures were not checked.
	*/
	Result struct {
		Index    int
		Tx       *transaction.SanitizedTransaction
		Locks    *transaction.AccountLocks
		Verified []bool
		Err      error
	}

	Sanitizer struct {
		workers      int
		loader       message.AddressLoader
		reserved     message.ReservedAccountKeys
		lockLimit    int
		verify       bool
		isSimpleVote *bool
		metrics      *Metrics
		log          *slog.Logger
	}

	Option func(*Sanitizer)
)

func (e *DecodeError) Error() string { return fmt.Sprintf("decoding transaction: %v", e.err) }

func (e *DecodeError) Unwrap() error { return e.err }

// WithWorkers limits the number of transactions processed concurrently.
func WithWorkers(n int) Option {
	return func(s *Sanitizer) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithAddressLoader sets the loader for v0 transactions, without it v0 transactions fail.
func WithAddressLoader(loader message.AddressLoader) Option {
	return func(s *Sanitizer) {
		s.loader = loader
	}
}

func WithReservedAccountKeys(reserved message.ReservedAccountKeys) Option {
	return func(s *Sanitizer) {
		s.reserved = reserved
	}
}

func WithLockLimit(limit int) Option {
	return func(s *Sanitizer) {
		s.lockLimit = limit
	}
}

// WithVerify turns on signature verification.
func WithVerify(verify bool) Option {
	return func(s *Sanitizer) {
		s.verify = verify
	}
}

// WithSimpleVote overrides simple vote classification of every transaction.
func WithSimpleVote(isSimpleVote *bool) Option {
	return func(s *Sanitizer) {
		s.isSimpleVote = isSimpleVote
	}
}

func WithMetrics(m *Metrics) Option {
	return func(s *Sanitizer) {
		s.metrics = m
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Sanitizer) {
		s.log = log
	}
}

func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		workers:   runtime.NumCPU(),
		reserved:  message.DefaultReservedAccountKeys(),
		lockLimit: transaction.MaxTxAccountLocks,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

/*
Sanitize processes every raw transaction of the batch independently. The
result slice is in the order of "raw". Failure of a transaction is reported
in its Result, the returned error is only set when "ctx" was canceled.
*/
func (s *Sanitizer) Sanitize(ctx context.Context, raw [][]byte) ([]Result, error) {
	results := make([]Result, len(raw))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range raw {
		i := i
		if err := gctx.Err(); err != nil {
			results[i] = Result{Index: i, Err: fmt.Errorf("%w: %w", ErrCanceled, err)}
			s.metrics.observe(results[i].Err)
			continue
		}
		g.Go(func() error {
			results[i] = s.sanitize(gctx, i, raw[i])
			s.metrics.observe(results[i].Err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, fmt.Errorf("%w: %w", ErrCanceled, err)
	}
	return results, nil
}

func (s *Sanitizer) sanitize(ctx context.Context, idx int, raw []byte) Result {
	res := Result{Index: idx}
	if err := ctx.Err(); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrCanceled, err)
		return res
	}

	vtx, err := types.DecodeVersionedTransaction(raw)
	if err != nil {
		res.Err = &DecodeError{err: err}
		s.log.DebugContext(ctx, "invalid transaction", logger.Error(res.Err), slog.Int("index", idx))
		return res
	}
	tx, err := transaction.TryCreate(vtx, transaction.ComputeHash(), s.isSimpleVote, s.loader, s.reserved)
	if err != nil {
		res.Err = err
		s.log.DebugContext(ctx, "sanitizing transaction failed", logger.Error(err), slog.Int("index", idx))
		return res
	}
	locks, err := tx.AccountLocks(s.lockLimit)
	if err != nil {
		res.Err = err
		s.log.DebugContext(ctx, "transaction account locks", logger.Error(err), logger.Signature(tx.Signature()))
		return res
	}
	if s.verify {
		res.Verified = tx.VerifyWithResults()
		if slices.Contains(res.Verified, false) {
			res.Err = transaction.ErrSignatureFailure
			s.log.DebugContext(ctx, "signature verification failed", logger.Signature(tx.Signature()))
			return res
		}
	}
	res.Tx = tx
	res.Locks = locks
	return res
}
