package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without cause",
			err:  New(ErrCodeInvalidConfig, "width must be positive"),
			want: "INVALID_CONFIG: width must be positive",
		},
		{
			name: "with cause",
			err:  Wrap(ErrCodeWrite, stderrors.New("disk full"), "writing chip.gds"),
			want: "WRITE_FAILED: writing chip.gds: disk full",
		},
		{
			name: "formatted message",
			err:  New(ErrCodeInfeasible, "device %d: segment length %.2f", 3, -1.5),
			want: "INFEASIBLE_GEOMETRY: device 3: segment length -1.50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs(t *testing.T) {
	base := New(ErrCodeInfeasible, "no solution")
	wrapped := Wrap(ErrCodeComposition, base, "cell %q", "res0")
	stdWrapped := fmt.Errorf("pipeline: %w", wrapped)

	if !Is(base, ErrCodeInfeasible) {
		t.Error("Is should match the error's own code")
	}
	if !Is(wrapped, ErrCodeComposition) {
		t.Error("Is should match the outer code of a wrapped error")
	}
	if !Is(wrapped, ErrCodeInfeasible) {
		t.Error("Is should find a code buried in the cause chain")
	}
	if !Is(stdWrapped, ErrCodeComposition) {
		t.Error("Is should unwrap fmt.Errorf %w wrapping")
	}
	if Is(base, ErrCodeInvalidConfig) {
		t.Error("Is should not match an absent code")
	}
	if Is(nil, ErrCodeInternal) {
		t.Error("Is(nil) should be false")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeWrite, "x")); got != ErrCodeWrite {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeWrite)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode of plain error = %q, want empty", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := Wrap(ErrCodeInternal, cause, "context")
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should reach the cause through Unwrap")
	}
}
