package capture

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// Replay serves the image files of a directory in name order, wrapping around at the end
type Replay struct {
	dir string
}

// NewReplay creates a backend reading frames from dir
func NewReplay(dir string) *Replay {
	return &Replay{dir: dir}
}

// FindWindow implements Backend. A directory without frames has no window.
func (r *Replay) FindWindow(title string) (Window, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWindowNotFound, err)
	}

	var frames []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := frameExtensions[strings.ToLower(filepath.Ext(e.Name()))]; ok {
			frames = append(frames, filepath.Join(r.dir, e.Name()))
		}
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("%w: no frames in %s", ErrWindowNotFound, r.dir)
	}
	sort.Strings(frames)

	slog.Info(LogMsgReplayLoaded, "title", title, "dir", r.dir, "frames", len(frames))
	return &replayWindow{frames: frames}, nil
}

type replayWindow struct {
	mu     sync.Mutex
	frames []string
	next   int
}

func (w *replayWindow) Capture(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	path := w.frames[w.next]
	w.next = (w.next + 1) % len(w.frames)
	w.mu.Unlock()

	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}
	return img, nil
}
