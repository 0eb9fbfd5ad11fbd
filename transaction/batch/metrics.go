package batch

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kagren/solana-sdk/message"
	"github.com/kagren/solana-sdk/transaction"
)

// Outcome labels of the sanitizer_tx_total counter.
const (
	ResultOK             = "ok"
	ResultDecodeError    = "decode_error"
	ResultSanitizeError  = "sanitize_error"
	ResultLoaderError    = "loader_error"
	ResultLockError      = "lock_error"
	ResultSignatureError = "signature_error"
	ResultCanceled       = "canceled"
)

type Metrics struct {
	txTotal *prometheus.CounterVec
}

// NewMetrics creates the sanitizer counters and registers them with "reg".
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		txTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sanitizer_tx_total",
			Help: "Number of transactions processed by the batch sanitizer, by result.",
		}, []string{"result"}),
	}
	if err := reg.Register(m.txTotal); err != nil {
		return nil, fmt.Errorf("registering tx counter: %w", err)
	}
	return m, nil
}

func (m *Metrics) observe(err error) {
	if m == nil {
		return
	}
	m.txTotal.WithLabelValues(resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	var decodeErr *DecodeError
	switch {
	case err == nil:
		return ResultOK
	case errors.As(err, &decodeErr):
		return ResultDecodeError
	case errors.Is(err, ErrCanceled):
		return ResultCanceled
	case errors.Is(err, transaction.ErrSignatureFailure):
		return ResultSignatureError
	case errors.Is(err, transaction.ErrAccountLoadedTwice), errors.Is(err, transaction.ErrTooManyAccountLocks):
		return ResultLockError
	case errors.Is(err, message.ErrAddressLoaderDisabled),
		errors.Is(err, message.ErrLookupTableNotFound),
		errors.Is(err, message.ErrInvalidAccountOwner),
		errors.Is(err, message.ErrInvalidAccountData),
		errors.Is(err, message.ErrInvalidLookupIndex):
		return ResultLoaderError
	default:
		return ResultSanitizeError
	}
}
