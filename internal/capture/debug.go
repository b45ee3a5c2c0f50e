package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/disintegration/imaging"
)

// DebugWriter saves every captured frame of a window into a directory
type DebugWriter struct {
	window Window
	dir    string
	seq    atomic.Int64
}

// WithDebug wraps w so frames are saved to dir. An empty dir returns w unchanged.
func WithDebug(w Window, dir string) Window {
	if dir == "" {
		return w
	}
	return &DebugWriter{window: w, dir: dir}
}

// Capture implements Window. Failing to save a frame does not fail the capture.
func (d *DebugWriter) Capture(ctx context.Context) (image.Image, error) {
	img, err := d.window.Capture(ctx)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("frame_%s_%04d.png", time.Now().Format("20060102_150405"), d.seq.Add(1))
	path := filepath.Join(d.dir, name)
	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		slog.Warn(LogMsgDebugSaveFailed, "path", path, "error", err)
		return img, nil
	}
	if err := imaging.Save(img, path); err != nil {
		slog.Warn(LogMsgDebugSaveFailed, "path", path, "error", err)
	}
	return img, nil
}
