// Package screen locates reward frames on a captured reward screen and reads their item names.
package screen

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/osse101/RelicWatch_Go/internal/domain"
	"github.com/osse101/RelicWatch_Go/internal/ocr"
)

// ItemMatcher resolves cleaned text to a single catalog item
type ItemMatcher interface {
	Match(text string) (domain.Item, bool)
}

// Recognizer reads the item name of one reward frame
type Recognizer struct {
	ocr      ocr.Engine
	matcher  ItemMatcher
	debugDir string
}

// NewRecognizer creates a recognizer. debugDir may be empty to disable crop dumps.
func NewRecognizer(engine ocr.Engine, matcher ItemMatcher, debugDir string) *Recognizer {
	return &Recognizer{ocr: engine, matcher: matcher, debugDir: debugDir}
}

// Recognize returns the cleaned text of the frame starting at x.
//
// Fixed windows are tried first and returned as soon as one uniquely matches
// an item. Otherwise the frame is read one line at a time upwards until an
// empty line, the top of the image or MaxGrowingLines.
func (r *Recognizer) Recognize(ctx context.Context, frame image.Image, g Geometry, x int) (string, error) {
	for _, lines := range FixedWindows {
		region := g.Window(x, lines)
		if !g.Contains(region) {
			continue
		}
		text, err := r.read(ctx, frame, region, fmt.Sprintf("%d_w%d", x, lines))
		if err != nil {
			return "", err
		}
		cleaned := Cleanup(text)
		if _, ok := r.matcher.Match(cleaned); ok {
			slog.Debug(LogMsgFixedWindowMatched, "x", x, "lines", lines, "text", cleaned)
			return cleaned, nil
		}
	}

	var buffer string
	for i := 1; i <= MaxGrowingLines; i++ {
		region := g.Line(x, i)
		if !g.Contains(region) {
			break
		}
		text, err := r.read(ctx, frame, region, fmt.Sprintf("%d_%d", x, i))
		if err != nil {
			return "", err
		}
		line := strings.TrimSpace(text)
		if line == "" {
			break
		}
		buffer = line + buffer
	}

	cleaned := Cleanup(buffer)
	slog.Debug(LogMsgGrowingWindowDone, "x", x, "text", cleaned)
	return cleaned, nil
}

func (r *Recognizer) read(ctx context.Context, frame image.Image, region image.Rectangle, name string) (string, error) {
	if r.debugDir != "" {
		r.dump(frame, region, name)
	}
	return r.ocr.Text(ctx, frame, region)
}

func (r *Recognizer) dump(frame image.Image, region image.Rectangle, name string) {
	if err := os.MkdirAll(r.debugDir, 0o755); err != nil {
		slog.Warn(LogMsgDebugDumpFailed, "dir", r.debugDir, "error", err)
		return
	}
	path := filepath.Join(r.debugDir, name+".png")
	if err := imaging.Save(imaging.Crop(frame, region), path); err != nil {
		slog.Warn(LogMsgDebugDumpFailed, "path", path, "error", err)
	}
}
