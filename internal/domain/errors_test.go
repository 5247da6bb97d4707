package domain

import (
	"errors"
	"fmt"
	"testing"

	"treasury_go/pkg/price"
)

func TestParseError(t *testing.T) {
	baseErr := errors.New("not a number")

	t.Run("matches ErrParse", func(t *testing.T) {
		err := NewParseError("quantity", "abc", baseErr)

		if !errors.Is(err, ErrParse) {
			t.Error("Expected ParseError to match ErrParse")
		}

		if !errors.Is(err, baseErr) {
			t.Error("Expected error to wrap baseErr")
		}

		if err.IsRetriable() {
			t.Error("ParseError should never be retriable")
		}
	})

	t.Run("message", func(t *testing.T) {
		err := NewParseError("side", "BYU", nil)
		expected := `parse error [side]: "BYU"`
		if err.Error() != expected {
			t.Errorf("Error message = %q, want %q", err.Error(), expected)
		}
	})

	t.Run("wrapped price syntax error", func(t *testing.T) {
		_, perr := price.Parse("99.5")
		err := fmt.Errorf("line 3: %w", NewParseError("price", "99.5", perr))

		if !IsParseError(err) {
			t.Error("IsParseError should return true for wrapped ParseError")
		}
		if !errors.Is(err, price.ErrSyntax) {
			t.Error("Expected price.ErrSyntax in chain")
		}
	})

	t.Run("IsParseError helper", func(t *testing.T) {
		_, perr := price.Parse("bogus")

		if !IsParseError(perr) {
			t.Error("IsParseError should return true for bare price errors")
		}
		if IsParseError(ErrKeyNotFound) {
			t.Error("IsParseError should return false for ErrKeyNotFound")
		}
	})
}

func TestConfigError(t *testing.T) {
	baseErr := errors.New("missing value")
	err := &ConfigError{Field: "booking.books", Err: baseErr}

	if err.IsRetriable() {
		t.Error("ConfigError should never be retriable")
	}

	expected := "config error [booking.books]: missing value"
	if err.Error() != expected {
		t.Errorf("Error message = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, baseErr) {
		t.Error("Expected error to wrap baseErr")
	}
}

func TestIsRetriable(t *testing.T) {
	if IsRetriable(errors.New("plain error")) {
		t.Error("IsRetriable should return false for plain error")
	}
	if IsRetriable(NewParseError("x", "y", nil)) {
		t.Error("IsRetriable should return false for ParseError")
	}
}
