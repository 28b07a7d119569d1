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
		{"ErrNotImplemented", ErrNotImplemented},
		{"ErrUnsupportedType", ErrUnsupportedType},
		{"ErrOversizeFile", ErrOversizeFile},
		{"ErrDecodeFailure", ErrDecodeFailure},
		{"ErrAnalyserUnavailable", ErrAnalyserUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestErrors_AreDistinct(t *testing.T) {
	parsing := []error{ErrUnsupportedType, ErrOversizeFile, ErrDecodeFailure}
	for i, a := range parsing {
		for j, b := range parsing {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

func TestErrors_WrappedMatch(t *testing.T) {
	wrapped := fmt.Errorf("%w: word/document.xml missing", ErrDecodeFailure)
	assert.ErrorIs(t, wrapped, ErrDecodeFailure)
	assert.NotErrorIs(t, wrapped, ErrUnsupportedType)
	assert.Equal(t, "document decode failed: word/document.xml missing", wrapped.Error())
}
