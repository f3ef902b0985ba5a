package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidRegion, "unknown region %q", "Antarctica")
	if got, want := err.Error(), `INVALID_REGION: unknown region "Antarctica"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	cause := errors.New("connection reset")
	wrapped := Wrap(ErrCodeNetwork, cause, "fetch geometry")
	if !errors.Is(wrapped, cause) || errors.Unwrap(wrapped) != cause {
		t.Error("Wrap should keep the cause in the chain")
	}
	if got := wrapped.Error(); got != "NETWORK_ERROR: fetch geometry: connection reset" {
		t.Errorf("wrapped Error() = %q", got)
	}
}

// The pipeline and CLI add context with fmt.Errorf; codes must survive that.
func TestCodeThroughContext(t *testing.T) {
	base := New(ErrCodeInvalidYear, "start year %d is after end year %d", 2015, 2013)
	err := fmt.Errorf("render map: %w", fmt.Errorf("invalid options: %w", base))

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"Is", Is(err, ErrCodeInvalidYear), true},
		{"Is other code", Is(err, ErrCodeInvalidRegion), false},
		{"GetCode", GetCode(err), ErrCodeInvalidYear},
		{"IsInvalid", IsInvalid(err), true},
		{"UserMessage", UserMessage(err), "start year 2015 is after end year 2013"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestOuterCodeWins(t *testing.T) {
	err := Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer")
	if GetCode(err) != ErrCodeNetwork {
		t.Errorf("GetCode = %v, want the outermost code", GetCode(err))
	}
	if IsInvalid(err) {
		t.Error("a network failure wrapping bad input is not itself invalid input")
	}
}

func TestPlainErrors(t *testing.T) {
	plain := errors.New("plain")
	for _, err := range []error{plain, nil} {
		if Is(err, ErrCodeInvalidInput) || GetCode(err) != "" || IsInvalid(err) {
			t.Errorf("%v should carry no code", err)
		}
	}
	if UserMessage(plain) != "plain" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
}

func TestIsInvalidCodes(t *testing.T) {
	invalid := []Code{
		ErrCodeInvalidInput, ErrCodeInvalidRegion, ErrCodeInvalidYear, ErrCodeInvalidFormat,
		ErrCodeInvalidDataset, ErrCodeInvalidConfig, ErrCodeInvalidPath,
	}
	for _, code := range invalid {
		if !IsInvalid(New(code, "x")) {
			t.Errorf("IsInvalid(%s) = false", code)
		}
	}
	for _, code := range []Code{ErrCodeNotFound, ErrCodeFileNotFound, ErrCodeNetwork, ErrCodeTimeout, ErrCodeInternal, ErrCodeUnsupported} {
		if IsInvalid(New(code, "x")) {
			t.Errorf("IsInvalid(%s) = true", code)
		}
	}
}
