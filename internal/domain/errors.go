package domain

import (
	"errors"
	"fmt"

	"treasury_go/pkg/price"
)

// RetriableError defines an interface for errors that can be retried
type RetriableError interface {
	error
	IsRetriable() bool
}

// IsRetriable checks if an error is retriable
func IsRetriable(err error) bool {
	var re RetriableError
	if errors.As(err, &re) {
		return re.IsRetriable()
	}
	return false
}

// ParseError represents a malformed feed line or field (never retriable)
type ParseError struct {
	Input string // Offending line or field text
	Field string // Which field failed (e.g., "price", "side", "quantity")
	Err   error  // Underlying error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("parse error [%s]: %q", e.Field, e.Input)
	}
	return fmt.Sprintf("parse error [%s]: %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) IsRetriable() bool {
	return false
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is makes every ParseError match ErrParse regardless of the wrapped cause.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a parse error for one field of an input line
func NewParseError(field, input string, err error) *ParseError {
	return &ParseError{Field: field, Input: input, Err: err}
}

// IsParseError reports malformed input from either the feed layer or the price notation.
func IsParseError(err error) bool {
	return errors.Is(err, ErrParse) || errors.Is(err, price.ErrSyntax)
}

// ConfigError represents a configuration error (never retriable)
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return "config error [" + e.Field + "]: " + e.Err.Error()
}

func (e *ConfigError) IsRetriable() bool {
	return false
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

var (
	// ErrKeyNotFound is returned when a store lookup hits a key that was never published.
	ErrKeyNotFound = errors.New("key not found")

	// ErrEmptyBook is returned when best price or depth is requested on a book side with no orders.
	ErrEmptyBook = errors.New("empty order book")

	// ErrUnknownProduct is returned when a product has no entry yet (risk buckets, universe lookups).
	ErrUnknownProduct = errors.New("unknown product")

	// ErrParse is returned for malformed feed input.
	ErrParse = errors.New("parse error")

	// ErrInvalidSide is returned when a side string is neither of the two legal values.
	ErrInvalidSide = errors.New("invalid side")

	// ErrConfigNotFound is returned when configuration file is missing
	ErrConfigNotFound = errors.New("configuration not found")
)
