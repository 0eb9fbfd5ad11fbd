package transaction

import (
	"errors"
	"fmt"
)

var (
	ErrSanitizeFailure        = errors.New("transaction failed to sanitize accounts offsets correctly")
	ErrSignatureCountMismatch = fmt.Errorf("%w: signature count mismatch", ErrSanitizeFailure)
	ErrAccountLoadedTwice     = errors.New("account loaded twice")
	ErrTooManyAccountLocks    = errors.New("transaction locked too many accounts")
	ErrSignatureFailure       = errors.New("transaction did not pass signature verification")
)
