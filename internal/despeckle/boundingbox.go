package despeckle

import "math"

// BoundingBox is an inclusive top/left/bottom/right pixel rectangle. Its
// zero-ish initial state (Top/Left at MaxInt, Bottom/Right at MinInt) is
// such that the first Extend call initializes it correctly, so the
// label-count bounding box never needs special-case handling for
// components smaller than one pixel.
type BoundingBox struct {
	Top, Left, Bottom, Right int
}

// NewBoundingBox returns an empty bounding box ready for Extend calls.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Top:    math.MaxInt32,
		Left:   math.MaxInt32,
		Bottom: math.MinInt32,
		Right:  math.MinInt32,
	}
}

// Width returns the inclusive pixel width of the box.
func (b BoundingBox) Width() int { return b.Right - b.Left + 1 }

// Height returns the inclusive pixel height of the box.
func (b BoundingBox) Height() int { return b.Bottom - b.Top + 1 }

// Extend grows the box to include pixel (x, y).
func (b *BoundingBox) Extend(x, y int) {
	if y < b.Top {
		b.Top = y
	}
	if x < b.Left {
		b.Left = x
	}
	if y > b.Bottom {
		b.Bottom = y
	}
	if x > b.Right {
		b.Right = x
	}
}
