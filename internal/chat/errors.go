package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a blank draft is submitted.
	ErrEmptyInput = errors.New("empty input rejected")
	// ErrBusy is returned when a draft is submitted while a reply is pending.
	ErrBusy = errors.New("request already in flight")
	// ErrEmptyMessage is returned by the session for blank message text.
	ErrEmptyMessage = errors.New("message text must not be empty")
)

// ProviderError reports any failure of the remote model call: missing
// credentials, transport errors, error statuses or unusable replies.
type ProviderError struct {
	Op  string // operation that failed, e.g. "start chat" or "send message"
	Err error
}

func (e *ProviderError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("provider %s failed", e.Op)
	}
	return fmt.Sprintf("provider %s failed: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// AsProviderError returns err unchanged if it already is (or wraps) a
// *ProviderError, and wraps it under op otherwise.
func AsProviderError(op string, err error) error {
	if err == nil {
		return nil
	}
	var pe *ProviderError
	if errors.As(err, &pe) {
		return err
	}
	return &ProviderError{Op: op, Err: err}
}
