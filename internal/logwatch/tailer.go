// Package logwatch follows the game log and parses its lines into typed entries.
package logwatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/osse101/RelicWatch_Go/internal/metrics"
)

// Tailer follows a log file from its current end, like tail -f
type Tailer struct {
	path string
	poll time.Duration
}

// NewTailer creates a tailer for the file at path
func NewTailer(path string) *Tailer {
	return &Tailer{path: path, poll: PollInterval}
}

// Entries opens the log and streams parsed entries until ctx ends.
// Only lines appended after the call are read. The channel is closed when the tailer stops.
func (t *Tailer) Entries(ctx context.Context) (<-chan Entry, error) {
	f, err := os.Open(t.path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenFailed, err)
	}
	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", ErrMsgOpenFailed, err)
	}

	out := make(chan Entry, EntryBuffer)
	go t.run(ctx, f, offset, out)

	slog.Info(LogMsgTailing, "path", t.path)
	return out, nil
}

func (t *Tailer) run(ctx context.Context, f *os.File, offset int64, out chan<- Entry) {
	defer close(out)
	defer f.Close()
	defer slog.Debug(LogMsgTailerStopped, "path", t.path)

	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	if w, err := fsnotify.NewWatcher(); err != nil {
		slog.Warn(LogMsgWatchFallback, "error", err)
	} else {
		defer w.Close()
		if err := w.Add(t.path); err != nil {
			slog.Warn(LogMsgWatchFallback, "error", err)
		} else {
			events, watchErrs = w.Events, w.Errors
		}
	}

	ticker := time.NewTicker(t.poll)
	defer ticker.Stop()

	reader := bufio.NewReader(f)
	var partial string

	for {
		for {
			line, err := reader.ReadString('\n')
			offset += int64(len(line))
			if err != nil {
				partial += line
				if !errors.Is(err, io.EOF) {
					slog.Warn(LogMsgReadFailed, "path", t.path, "error", err)
				}
				break
			}
			if !emit(ctx, out, partial+line) {
				return
			}
			partial = ""
		}

		if info, err := f.Stat(); err == nil && info.Size() < offset {
			slog.Info(LogMsgTruncated, "path", t.path)
			if _, err := f.Seek(0, io.SeekStart); err == nil {
				reader.Reset(f)
				offset, partial = 0, ""
			}
		}

		select {
		case <-ctx.Done():
			return
		case err, ok := <-watchErrs:
			if ok {
				slog.Debug(LogMsgWatchError, "error", err)
			} else {
				watchErrs = nil
			}
		case _, ok := <-events:
			if !ok {
				events = nil
			}
		case <-ticker.C:
		}
	}
}

// emit parses line and sends it. It returns false once ctx is done.
func emit(ctx context.Context, out chan<- Entry, line string) bool {
	entry, err := Parse(line)
	if err != nil {
		metrics.LogEntriesTotal.WithLabelValues(metrics.ResultIgnored).Inc()
		slog.Debug(LogMsgLineSkipped, "line", line, "error", err)
		return ctx.Err() == nil
	}
	metrics.LogEntriesTotal.WithLabelValues(metrics.ResultParsed).Inc()

	select {
	case out <- entry:
		return true
	case <-ctx.Done():
		return false
	}
}
