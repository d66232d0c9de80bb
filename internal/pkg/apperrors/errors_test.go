package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError(t *testing.T) {
	err := NewBackendError("fee record locked")
	assert.Equal(t, "fee record locked", err.Error())
	assert.ErrorIs(t, err, ErrBackendRejected)

	// Wrapping again keeps the sentinel reachable.
	wrapped := fmt.Errorf("pay hostel fee: %w", err)
	assert.ErrorIs(t, wrapped, ErrBackendRejected)

	bare := &CustomError{Err: ErrValidationFailed}
	assert.Equal(t, ErrValidationFailed.Error(), bare.Error())

	empty := &CustomError{}
	assert.Equal(t, "unknown error", empty.Error())
}

func TestMessageFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{name: "nil error", err: nil, fallback: "x", want: ""},
		{name: "custom message wins", err: NewBackendError("db offline"), fallback: "x", want: "db offline"},
		{name: "plain error uses fallback", err: errors.New("dial tcp: refused"), fallback: "could not reach server", want: "could not reach server"},
		{name: "sentinel uses fallback", err: ErrNotFoundYet, fallback: "nothing here", want: "nothing here"},
		{
			name:     "wrapped custom message still found",
			err:      fmt.Errorf("outer: %w", NewValidationError("distance out of range")),
			fallback: "x",
			want:     "distance out of range",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MessageFor(tt.err, tt.fallback))
		})
	}
}
