package domain

import "errors"

// ErrStaleCursor means the external API rejected the stored scroll token.
// This is not transient: the only recovery is restarting enumeration.
var ErrStaleCursor = errors.New("pagination cursor expired")

// ErrAuthExpired means the access token was rejected mid-operation. Callers
// must surface this as a re-auth condition and never treat it as "no data".
var ErrAuthExpired = errors.New("credentials expired")

// RetryableError marks a transient upstream failure (5xx, timeout, gateway
// queue overflow). The gateway retries these; exhausted retries propagate
// still wrapped so HTTP callers can advertise retryable:true.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as transient.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err (or anything it wraps) is transient.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}
