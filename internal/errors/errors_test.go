package errors_test

import (
	stderrors "errors"
	"testing"

	"funntour/internal/errors"

	"github.com/stretchr/testify/assert"
)

type codedError struct{ code string }

func (e *codedError) Error() string { return e.code }

func TestWrap(t *testing.T) {
	base := &codedError{code: "boom"}
	wrapped := errors.Wrapf(errors.Wrap(base, "inner"), "outer %d", 1)

	assert.Equal(t, "outer 1: inner: boom", wrapped.Error())
	assert.True(t, errors.Is(wrapped, base))

	got, ok := errors.AsType[*codedError](wrapped)
	assert.True(t, ok)
	assert.Same(t, base, got)

	assert.NoError(t, errors.Wrap(nil, "nothing"))
	assert.NoError(t, errors.WithStack(nil))
}

func TestStack(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		empty bool
	}{
		{name: "plain stdlib error", err: stderrors.New("plain"), empty: true},
		{name: "created here", err: errors.New("created")},
		{name: "third-party error with stack", err: errors.WithStack(stderrors.New("plain"))},
		{name: "wrapped twice", err: errors.Wrap(errors.Errorf("deep %s", "cause"), "outer")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := errors.Stack(tt.err)
			if tt.empty {
				assert.Empty(t, stack)

				return
			}
			assert.Contains(t, stack, "errors_test.TestStack")
		})
	}
}
