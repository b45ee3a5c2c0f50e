package capture

import (
	"image"
	"strings"
)

// WindowInfo is one top-level window as reported by the window system
type WindowInfo struct {
	Title  string
	Bounds image.Rectangle
}

// Enumerator lists the top-level windows of the desktop
type Enumerator interface {
	Windows() ([]WindowInfo, error)
}

// EnumeratorFunc adapts a function to Enumerator
type EnumeratorFunc func() ([]WindowInfo, error)

// Windows implements Enumerator
func (f EnumeratorFunc) Windows() ([]WindowInfo, error) {
	return f()
}

// findByTitle returns the first visible window titled title. An exact title
// wins over a case-insensitive one.
func findByTitle(windows []WindowInfo, title string) (WindowInfo, bool) {
	title = strings.TrimSpace(title)
	var fold *WindowInfo
	for i := range windows {
		w := &windows[i]
		if w.Bounds.Empty() {
			continue
		}
		name := strings.TrimSpace(w.Title)
		if name == title {
			return *w, true
		}
		if fold == nil && strings.EqualFold(name, title) {
			fold = w
		}
	}
	if fold != nil {
		return *fold, true
	}
	return WindowInfo{}, false
}
