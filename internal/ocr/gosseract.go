//go:build cgo && gosseract

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// GosseractAvailable reports whether the in-process backend is compiled in
const GosseractAvailable = true

// Gosseract recognizes text in-process through the tesseract library.
// A client is created per call since clients are not safe for concurrent use.
type Gosseract struct {
	language string
}

// NewGosseract creates an in-process backend
func NewGosseract() *Gosseract {
	return &Gosseract{language: language}
}

// Text implements Engine
func (g *Gosseract) Text(ctx context.Context, img image.Image, region image.Rectangle) (text string, err error) {
	start := time.Now()
	defer func() { observe(BackendGosseract, start, text, err) }()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := cropPNG(img, region)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(g.language); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRecognizeFailed, err)
	}
	if err := client.SetWhitelist(Whitelist); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRecognizeFailed, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRecognizeFailed, err)
	}
	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrRecognizeFailed, err)
	}

	text, err = client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRecognizeFailed, err)
	}
	return text, nil
}

// validateGosseract recognizes a blank image once so missing language data
// fails at startup rather than on the first reward screen
func validateGosseract(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var blank bytes.Buffer
	if err := imaging.Encode(&blank, imaging.New(8, 8, image.White), imaging.PNG); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(language); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := client.SetImageFromBytes(blank.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if _, err := client.Text(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	slog.Info(LogMsgGosseractVersion, "version", client.Version())
	return nil
}
