package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/krishimitra/krishi/internal/logger"
)

var (
	// ErrNotFound is returned when an operation addresses a user that is not in the store
	ErrNotFound = stderrors.New("not found")
	// ErrInvalidArgument is returned for malformed input such as an unparseable date
	ErrInvalidArgument = stderrors.New("invalid argument")
	// ErrStoreUnavailable is returned when the backing store cannot be read or written
	ErrStoreUnavailable = stderrors.New("store unavailable")
	// ErrAlreadyExists is returned when registering a mobile number that is already taken
	ErrAlreadyExists = stderrors.New("already exists")
	// ErrInvalidCredentials is returned when a password does not match the stored hash
	ErrInvalidCredentials = stderrors.New("invalid credentials")
)

// NotFoundf wraps ErrNotFound with a formatted message
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// InvalidArgumentf wraps ErrInvalidArgument with a formatted message
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Unavailable wraps ErrStoreUnavailable around the underlying cause
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrStoreUnavailable, op, err)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
