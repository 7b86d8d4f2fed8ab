package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrLoad", ErrLoad},
		{"ErrGeneration", ErrGeneration},
		{"ErrAsk", ErrAsk},
		{"ErrMalformedResponse", ErrMalformedResponse},
		{"ErrNoActiveDocument", ErrNoActiveDocument},
		{"ErrAskPending", ErrAskPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrMalformedResponse_WrapsWithOperation(t *testing.T) {
	err := fmt.Errorf("%w: %w: total_income missing", ErrGeneration, ErrMalformedResponse)

	assert.True(t, errors.Is(err, ErrGeneration))
	assert.True(t, errors.Is(err, ErrMalformedResponse))
	assert.False(t, errors.Is(err, ErrAsk))
}
