package service

import (
	"errors"
	"fmt"
)

// Business-rule failures. These are expected outcomes surfaced to the user
// as short messages; anything else bubbling out of the service is a storage
// fault and fatal to the in-flight operation.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrDuplicateEmail      = errors.New("email already registered")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrUserNotFound        = errors.New("user not found")
)

// ValidationError names the registration or profile field that failed
// validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsBusinessError reports whether err is a recoverable business-rule failure
// rather than a storage fault.
func IsBusinessError(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrDuplicateEmail) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInsufficientBalance) ||
		errors.Is(err, ErrWalletNotFound) ||
		errors.Is(err, ErrUserNotFound)
}
