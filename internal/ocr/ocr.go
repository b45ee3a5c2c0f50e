// Package ocr recognizes text inside a region of a captured frame.
package ocr

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/semaphore"

	"github.com/osse101/RelicWatch_Go/internal/metrics"
)

var (
	ErrEmptyRegion     = errors.New(ErrMsgEmptyRegion)
	ErrRecognizeFailed = errors.New(ErrMsgRecognizeFailed)
	ErrUnavailable     = errors.New(ErrMsgUnavailable)
	ErrUnknownBackend  = errors.New(ErrMsgUnknownBackend)
)

// Engine recognizes the text of one region of an image
type Engine interface {
	Text(ctx context.Context, img image.Image, region image.Rectangle) (string, error)
}

// New returns the backend named by backend. path is the tesseract executable for the cli backend.
func New(backend, path string) (Engine, error) {
	switch backend {
	case BackendCLI, "":
		return NewTesseract(path), nil
	case BackendGosseract:
		if !GosseractAvailable {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, ErrMsgGosseractNotBuilt)
		}
		return NewGosseract(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// Validate checks that the backend can run on this machine
func Validate(ctx context.Context, backend, path string) error {
	switch backend {
	case BackendCLI, "":
		return ValidatePath(ctx, path)
	case BackendGosseract:
		return validateGosseract(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}

// cropPNG cuts region out of img and encodes it as PNG
func cropPNG(img image.Image, region image.Rectangle) ([]byte, error) {
	region = region.Intersect(img.Bounds())
	if region.Empty() {
		return nil, ErrEmptyRegion
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Crop(img, region), imaging.PNG); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEncodeFailed, err)
	}
	return buf.Bytes(), nil
}

func observe(backend string, start time.Time, text string, err error) {
	metrics.OCRCallDuration.WithLabelValues(backend).Observe(time.Since(start).Seconds())
	result := metrics.ResultOK
	switch {
	case err != nil:
		result = metrics.ResultError
	case text == "":
		result = metrics.ResultEmpty
	}
	metrics.OCRCallsTotal.WithLabelValues(backend, result).Inc()
}

// Limited bounds the number of concurrent recognitions of an engine
type Limited struct {
	engine Engine
	slots  *semaphore.Weighted
}

// NewLimited wraps engine allowing n concurrent calls. n <= 0 uses the CPU count.
func NewLimited(engine Engine, n int) *Limited {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	return &Limited{engine: engine, slots: semaphore.NewWeighted(int64(n))}
}

// Text waits for a free slot then delegates to the wrapped engine
func (l *Limited) Text(ctx context.Context, img image.Image, region image.Rectangle) (string, error) {
	if err := l.slots.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer l.slots.Release(1)

	text, err := l.engine.Text(ctx, img, region)
	if err == nil {
		slog.Debug(LogMsgRecognized, "region", region.String(), "chars", len(text))
	}
	return text, err
}
