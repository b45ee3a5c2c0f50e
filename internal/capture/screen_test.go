package capture

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeWindows(windows ...WindowInfo) Enumerator {
	return EnumeratorFunc(func() ([]WindowInfo, error) { return windows, nil })
}

func TestScreenFindWindow(t *testing.T) {
	game := WindowInfo{Title: "Warframe", Bounds: image.Rect(100, 50, 2020, 1130)}
	browser := WindowInfo{Title: "Warframe Market - Firefox", Bounds: image.Rect(0, 0, 800, 600)}

	tests := []struct {
		name    string
		windows []WindowInfo
		title   string
		want    image.Rectangle
		found   bool
	}{
		{"exact title", []WindowInfo{browser, game}, "Warframe", game.Bounds, true},
		{"title differs in case", []WindowInfo{{Title: "WARFRAME", Bounds: game.Bounds}}, "Warframe", game.Bounds, true},
		{"exact beats case-insensitive", []WindowInfo{{Title: "warframe", Bounds: browser.Bounds}, game}, "Warframe", game.Bounds, true},
		{"game not running", []WindowInfo{browser}, "Warframe", image.Rectangle{}, false},
		{"no windows", nil, "Warframe", image.Rectangle{}, false},
		{"minimized window", []WindowInfo{{Title: "Warframe"}}, "Warframe", image.Rectangle{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var grabbed image.Rectangle
			s := NewScreenWithEnumerator(fakeWindows(tt.windows...))
			s.grab = func(r image.Rectangle) (image.Image, error) {
				grabbed = r
				return imaging.New(r.Dx(), r.Dy(), image.Black), nil
			}

			w, err := s.FindWindow(tt.title)
			if !tt.found {
				assert.ErrorIs(t, err, ErrWindowNotFound)
				assert.Nil(t, w)
				return
			}
			require.NoError(t, err)

			img, err := w.Capture(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, grabbed)
			assert.Equal(t, tt.want.Dx(), img.Bounds().Dx())
		})
	}
}

func TestScreenEnumerationFailure(t *testing.T) {
	s := NewScreenWithEnumerator(EnumeratorFunc(func() ([]WindowInfo, error) {
		return nil, errors.New("no display")
	}))

	_, err := s.FindWindow("Warframe")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrWindowNotFound)
	assert.ErrorContains(t, err, ErrMsgEnumerateWindows)
}

func TestScreenCaptureErrors(t *testing.T) {
	s := NewScreenWithEnumerator(fakeWindows(WindowInfo{Title: "Warframe", Bounds: image.Rect(0, 0, 10, 10)}))
	s.grab = func(image.Rectangle) (image.Image, error) { return nil, errors.New("boom") }

	w, err := s.FindWindow("Warframe")
	require.NoError(t, err)

	_, err = w.Capture(context.Background())
	assert.ErrorIs(t, err, ErrCaptureFailed)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = w.Capture(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
