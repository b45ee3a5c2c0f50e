package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Tesseract runs the tesseract executable once per region, piping a PNG through stdin
type Tesseract struct {
	path string
}

// NewTesseract creates a backend using the executable at path
func NewTesseract(path string) *Tesseract {
	return &Tesseract{path: path}
}

// Text implements Engine
func (t *Tesseract) Text(ctx context.Context, img image.Image, region image.Rectangle) (text string, err error) {
	start := time.Now()
	defer func() { observe(BackendCLI, start, text, err) }()

	data, err := cropPNG(img, region)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, t.path, argStdin, argStdout, argConfig, whitelistConfig+Whitelist)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %w: %s", ErrRecognizeFailed, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// ValidatePath checks that path is a runnable tesseract executable
func ValidatePath(ctx context.Context, path string) error {
	out, err := exec.CommandContext(ctx, path, argVersion).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
	}

	version, _, _ := strings.Cut(string(out), "\n")
	slog.Info(LogMsgTesseractVersion, "path", path, "version", strings.TrimSpace(version))
	return nil
}
