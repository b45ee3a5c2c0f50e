//go:build cgo && gosseract

package ocr

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGosseractBackend(t *testing.T) {
	assert.True(t, GosseractAvailable)

	e, err := New(BackendGosseract, "")
	require.NoError(t, err)
	assert.IsType(t, &Gosseract{}, e)

	if err := Validate(context.Background(), BackendGosseract, ""); err != nil {
		t.Skipf("tesseract language data not installed: %v", err)
	}
}

func TestGosseractValidateHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, Validate(ctx, BackendGosseract, ""), context.Canceled)
}
