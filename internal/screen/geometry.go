package screen

import "image"

// Geometry is the reward screen layout scaled to one frame
type Geometry struct {
	Bounds      image.Rectangle
	FrameWidth  int
	FrameBottom int
	LineHeight  int
	Mid         int
}

// NewGeometry scales the reference layout to bounds
func NewGeometry(bounds image.Rectangle) Geometry {
	w, h := bounds.Dx(), bounds.Dy()
	return Geometry{
		Bounds:      bounds,
		FrameWidth:  w * ReferenceFrame / ReferenceWidth,
		FrameBottom: bounds.Min.Y + h*ReferenceBottom/ReferenceHeight,
		LineHeight:  h * ReferenceLineSize / ReferenceHeight,
		Mid:         bounds.Min.X + w/2,
	}
}

// Offsets returns the left edge of every reward frame for a squad, left to right.
// Unsupported squad sizes have no frames.
func (g Geometry) Offsets(squad int) []int {
	fw, mid := g.FrameWidth, g.Mid
	switch squad {
	case 4:
		return []int{mid - 2*fw, mid - fw, mid, mid + fw}
	case 3:
		return []int{mid - 3*fw/2, mid - fw/2, mid + fw/2}
	case 2:
		return []int{mid - fw, mid}
	case 1:
		return []int{mid - fw/2}
	default:
		return nil
	}
}

// Window is the region of lines text lines ending at the frame bottom
func (g Geometry) Window(x, lines int) image.Rectangle {
	return image.Rect(x, g.FrameBottom-lines*g.LineHeight, x+g.FrameWidth, g.FrameBottom)
}

// Line is the i-th text line counted upwards from the frame bottom, starting at 1
func (g Geometry) Line(x, i int) image.Rectangle {
	return image.Rect(x, g.FrameBottom-i*g.LineHeight, x+g.FrameWidth, g.FrameBottom-(i-1)*g.LineHeight)
}

// Contains reports whether r lies inside the frame
func (g Geometry) Contains(r image.Rectangle) bool {
	return r.In(g.Bounds)
}
