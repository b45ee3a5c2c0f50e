//go:build !(cgo && gosseract)

package ocr

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGosseractNotBuilt(t *testing.T) {
	assert.False(t, GosseractAvailable)

	_, err := New(BackendGosseract, "")
	assert.ErrorIs(t, err, ErrUnavailable)

	err = Validate(context.Background(), BackendGosseract, "")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, ErrMsgGosseractNotBuilt)

	_, err = NewGosseract().Text(context.Background(), image.NewGray(image.Rect(0, 0, 4, 4)), image.Rect(0, 0, 4, 4))
	assert.ErrorIs(t, err, ErrUnavailable)
}
