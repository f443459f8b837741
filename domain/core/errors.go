package core

import (
	"errors"
	"fmt"
	"strings"
)

// Domain errors - centralized error definitions
var (
	// Construction errors - the offending object never comes into existence
	ErrConfiguration      = errors.New("invalid prior configuration")
	ErrDuplicateParameter = errors.New("duplicate parameter")
	ErrCoverage           = errors.New("standard parameter coverage mismatch")

	// Call-time errors
	ErrDomain           = errors.New("value outside declared domain")
	ErrMissingParameter = errors.New("missing standard parameter")
	ErrDimension        = errors.New("sampled vector dimension mismatch")
)

// Error constructors with context
func NewConfigurationError(reason string) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, reason)
}

func NewDuplicateParameterError(name string, first, second string) error {
	return fmt.Errorf("%w: %q declared by both %s and %s", ErrDuplicateParameter, name, first, second)
}

func NewCoverageError(missing, extra []string) error {
	parts := make([]string, 0, 2)
	if len(missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing [%s]", strings.Join(missing, ", ")))
	}
	if len(extra) > 0 {
		parts = append(parts, fmt.Sprintf("extra [%s]", strings.Join(extra, ", ")))
	}
	return fmt.Errorf("%w: %s", ErrCoverage, strings.Join(parts, ", "))
}

func NewDomainError(name string, value, lower, upper float64) error {
	return fmt.Errorf("%w: %s=%g outside [%g, %g)", ErrDomain, name, value, lower, upper)
}

func NewMissingParameterError(name string) error {
	return fmt.Errorf("%w: %q", ErrMissingParameter, name)
}

func NewDimensionError(got, want int) error {
	return fmt.Errorf("%w: got %d sampled values, want %d", ErrDimension, got, want)
}

// Error checking helpers
func IsConstructionError(err error) bool {
	return errors.Is(err, ErrConfiguration) ||
		errors.Is(err, ErrDuplicateParameter) ||
		errors.Is(err, ErrCoverage)
}

func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain) || errors.Is(err, ErrDimension)
}

func IsMissingParameterError(err error) bool {
	return errors.Is(err, ErrMissingParameter)
}
