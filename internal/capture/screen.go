package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/kbinani/screenshot"
)

// Screen captures the on-screen area of the game window, located by title
type Screen struct {
	enum Enumerator
	grab func(image.Rectangle) (image.Image, error)
}

// NewScreen creates a backend using the platform window enumerator
func NewScreen() *Screen {
	return NewScreenWithEnumerator(platformEnumerator())
}

// NewScreenWithEnumerator creates a backend that looks windows up through enum
func NewScreenWithEnumerator(enum Enumerator) *Screen {
	return &Screen{enum: enum, grab: captureRect}
}

// FindWindow implements Backend. It returns ErrWindowNotFound when no visible
// window carries title.
func (s *Screen) FindWindow(title string) (Window, error) {
	windows, err := s.enum.Windows()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgEnumerateWindows, err)
	}

	w, ok := findByTitle(windows, title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrWindowNotFound, title)
	}

	slog.Info(LogMsgWindowFound, "title", w.Title, "bounds", w.Bounds.String())
	return &rectWindow{bounds: w.Bounds, grab: s.grab}, nil
}

// Display captures a whole display regardless of which windows are open.
// It is meant for desktops where windows cannot be enumerated.
type Display struct {
	index int
}

// NewDisplay creates a backend capturing the display at index
func NewDisplay(index int) *Display {
	return &Display{index: index}
}

// FindWindow implements Backend. The title is only logged.
func (d *Display) FindWindow(title string) (Window, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("%w: %s", ErrWindowNotFound, ErrMsgNoActiveDisplay)
	}
	if d.index < 0 || d.index >= n {
		return nil, fmt.Errorf("%w: display %d of %d", ErrWindowNotFound, d.index, n)
	}

	bounds := screenshot.GetDisplayBounds(d.index)
	slog.Info(LogMsgWindowFound, "title", title, "display", d.index, "bounds", bounds.String())
	return &rectWindow{bounds: bounds, grab: captureRect}, nil
}

type rectWindow struct {
	bounds image.Rectangle
	grab   func(image.Rectangle) (image.Image, error)
}

func (w *rectWindow) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := w.grab(w.bounds)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}
	return img, nil
}

func captureRect(r image.Rectangle) (image.Image, error) {
	return screenshot.CaptureRect(r)
}
