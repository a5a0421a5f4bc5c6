package completion

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse means the model answered without usable text.
var ErrEmptyResponse = errors.New("completion: empty response")

// ProviderError wraps a transport or API failure from the remote model.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion: provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsFailure reports whether err is one of the completion failure kinds.
// Callers treat both kinds the same way.
func IsFailure(err error) bool {
	var pe *ProviderError
	return errors.Is(err, ErrEmptyResponse) || errors.As(err, &pe)
}
