package sqerr

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

// -----------------------------------------------------------------------------
// Error Formatting Tests
// -----------------------------------------------------------------------------

func TestErrorFormat(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want []string
	}{
		{
			name: "code and message",
			err:  New(ErrTypeUnknown, "unknown column type"),
			want: []string{"[E2002] unknown column type"},
		},
		{
			name: "context is sorted",
			err: New(ErrAttributeInvalid, "attribute entry is nil").
				WithTable("users").
				WithField("role"),
			want: []string{
				"[E2001] attribute entry is nil",
				"field: role",
				"table: users",
			},
		},
		{
			name: "cause is appended",
			err:  Wrap(ErrOutputWrite, errors.New("disk full"), "failed to write script"),
			want: []string{
				"[E3002] failed to write script",
				"cause: disk full",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("Error() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestErrorContextOrder(t *testing.T) {
	err := New(ErrModelInvalid, "bad model").
		With("zebra", 1).
		With("apple", 2).
		With("mango", 3)

	got := err.Error()
	apple := strings.Index(got, "apple")
	mango := strings.Index(got, "mango")
	zebra := strings.Index(got, "zebra")
	if !(apple < mango && mango < zebra) {
		t.Errorf("context keys not sorted: %q", got)
	}
}

// -----------------------------------------------------------------------------
// Wrapping and Matching Tests
// -----------------------------------------------------------------------------

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrGeneration, cause, "generation failed")

	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestWrapNil(t *testing.T) {
	err := Wrap(ErrGeneration, nil, "no cause")
	if errors.Unwrap(err) != nil {
		t.Error("wrapping nil should have no cause")
	}
}

func TestIsMatchesByCode(t *testing.T) {
	err := New(ErrTypeUnknown, "first").WithField("a")
	other := New(ErrTypeUnknown, "second")

	if !errors.Is(err, other) {
		t.Error("errors with the same code should match")
	}
	if errors.Is(err, New(ErrModelInvalid, "different code")) {
		t.Error("errors with different codes should not match")
	}
}

func TestGetErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil error", nil, ""},
		{"plain error", errors.New("plain"), ""},
		{"coded error", New(ErrDBClose, "close failed"), ErrDBClose},
		{"wrapped in fmt", fmt.Errorf("outer: %w", New(ErrJSTimeout, "timeout")), ErrJSTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetErrorCode(tt.err); got != tt.want {
				t.Errorf("GetErrorCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsAndHasCode(t *testing.T) {
	err := Newf(ErrEnumCollision, "enum %s defined twice", "enum_users_role")

	if !Is(err, ErrEnumCollision) {
		t.Error("Is should match the code")
	}
	if Is(err, ErrEnumInvalid) {
		t.Error("Is should not match a different code")
	}
	if !HasCode(err) {
		t.Error("HasCode should be true for coded errors")
	}
	if HasCode(errors.New("plain")) {
		t.Error("HasCode should be false for plain errors")
	}
}
