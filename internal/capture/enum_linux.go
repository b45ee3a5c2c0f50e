//go:build linux

package capture

import (
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
)

func platformEnumerator() Enumerator {
	return EnumeratorFunc(x11Windows)
}

// x11Windows lists the client windows managed by the X11 window manager
func x11Windows() ([]WindowInfo, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	defer xu.Conn().Close()

	clients, err := ewmh.ClientListGet(xu)
	if err != nil {
		return nil, err
	}

	windows := make([]WindowInfo, 0, len(clients))
	for _, win := range clients {
		title := x11Title(xu, win)
		if title == "" {
			continue
		}
		bounds, err := x11Bounds(xu, win)
		if err != nil {
			continue
		}
		windows = append(windows, WindowInfo{Title: title, Bounds: bounds})
	}
	return windows, nil
}

// x11Title prefers _NET_WM_NAME; Wine windows often only set WM_NAME
func x11Title(xu *xgbutil.XUtil, win xproto.Window) string {
	if name, err := ewmh.WmNameGet(xu, win); err == nil && name != "" {
		return name
	}
	name, _ := icccm.WmNameGet(xu, win)
	return name
}

func x11Bounds(xu *xgbutil.XUtil, win xproto.Window) (image.Rectangle, error) {
	geom, err := xproto.GetGeometry(xu.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	pos, err := xproto.TranslateCoordinates(xu.Conn(), win, xu.RootWin(), 0, 0).Reply()
	if err != nil {
		return image.Rectangle{}, err
	}
	x, y := int(pos.DstX), int(pos.DstY)
	return image.Rect(x, y, x+int(geom.Width), y+int(geom.Height)), nil
}
