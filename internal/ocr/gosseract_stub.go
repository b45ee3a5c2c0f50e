//go:build !(cgo && gosseract)

package ocr

import (
	"context"
	"fmt"
	"image"
)

// GosseractAvailable reports whether the in-process backend is compiled in.
// Build with cgo and -tags gosseract to enable it.
const GosseractAvailable = false

// Gosseract stands in for the in-process backend when it is not compiled in
type Gosseract struct{}

// NewGosseract creates the placeholder backend
func NewGosseract() *Gosseract {
	return &Gosseract{}
}

// Text always fails with ErrUnavailable
func (g *Gosseract) Text(context.Context, image.Image, image.Rectangle) (string, error) {
	return "", fmt.Errorf("%w: %s", ErrUnavailable, ErrMsgGosseractNotBuilt)
}

func validateGosseract(context.Context) error {
	return fmt.Errorf("%w: %s", ErrUnavailable, ErrMsgGosseractNotBuilt)
}
