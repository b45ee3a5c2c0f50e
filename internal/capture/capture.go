// Package capture grabs frames of the game window.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
)

var (
	ErrWindowNotFound = errors.New(ErrMsgWindowNotFound)
	ErrCaptureFailed  = errors.New(ErrMsgCaptureFailed)
	ErrUnknownBackend = errors.New(ErrMsgUnknownBackend)
)

// Backend locates the window frames are captured from
type Backend interface {
	FindWindow(title string) (Window, error)
}

// Window captures frames of one located window
type Window interface {
	Capture(ctx context.Context) (image.Image, error)
}

// Options selects and configures a backend
type Options struct {
	Backend      string
	DisplayIndex int
	ReplayDir    string
}

// New returns the backend named in opts
func New(opts Options) (Backend, error) {
	switch opts.Backend {
	case BackendScreen, "":
		return NewScreen(), nil
	case BackendDisplay:
		return NewDisplay(opts.DisplayIndex), nil
	case BackendReplay:
		return NewReplay(opts.ReplayDir), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, opts.Backend)
	}
}
