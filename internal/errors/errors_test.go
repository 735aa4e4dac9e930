package errors

import (
	"errors"
	"fmt"
	"testing"
)

type codedError struct{}

func (codedError) Error() string { return "coded" }
func (codedError) Code() Code    { return ErrCodeNoEquilibrium }

func TestGetCode(t *testing.T) {
	base := New(ErrCodeLayout, "bars do not fit")

	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"structured", base, ErrCodeLayout},
		{"wrapped by fmt", fmt.Errorf("check failed: %w", base), ErrCodeLayout},
		{"wrapped by Wrap", Wrap(ErrCodeInternal, base, "unexpected"), ErrCodeInternal},
		{"coder", codedError{}, ErrCodeNoEquilibrium},
		{"wrapped coder", fmt.Errorf("solve: %w", codedError{}), ErrCodeNoEquilibrium},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeGeometry, "d=%.1f mm", -3.0)
	if !Is(err, ErrCodeGeometry) {
		t.Error("Is(geometry) = false")
	}
	if Is(err, ErrCodeLayout) {
		t.Error("Is(layout) = true")
	}
	if Is(nil, "") {
		t.Error("Is(nil) = true")
	}
}

func TestMessages(t *testing.T) {
	cause := New(ErrCodeLayout, "no room")
	err := Wrap(ErrCodeInternal, cause, "placing bars")

	if got, want := err.Error(), "INTERNAL_ERROR: placing bars: LAYOUT_INFEASIBLE: no room"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got, want := UserMessage(err), "placing bars: no room"; got != want {
		t.Errorf("UserMessage() = %q, want %q", got, want)
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap does not reach the cause")
	}
}
