package despeckle

import "math"

// verticalScale and verticalScaleSq implement the anisotropic weighting
// from spec.md's GLOSSARY: vertical differences count for more than
// horizontal ones, so horizontal proximity dominates Voronoi grouping,
// reflecting the horizontal layout of text.
const (
	verticalScale   = 2
	verticalScaleSq = verticalScale * verticalScale
)

// Distance is the vector from a background pixel to its nearest
// foreground pixel under the Voronoi passes. The source implementation
// aliases this pair with a uint32 for O(1) equality; a plain comparable
// struct gets the same O(1) equality in Go without the aliasing trick.
type Distance struct {
	DX, DY int16
}

// ZeroDistance is the sentinel for a pixel that sits on its own source —
// i.e. a foreground pixel.
func ZeroDistance() Distance { return Distance{} }

// SpecialDistance marks a pixel as frozen during the second-chance
// Voronoi pass: it neither grows nor is overwritten.
func SpecialDistance() Distance { return Distance{DX: math.MaxInt16, DY: math.MaxInt16} }

// ResetDistance seeds a border/open-region pixel at column x with
// DX = MaxInt16 - x, DY = 0: a vector to a virtual source far past the
// right edge, so its squared distance is large enough that propagation
// from any real foreground pixel replaces it, bounding border influence.
func ResetDistance(x int) Distance { return Distance{DX: int16(math.MaxInt16 - x), DY: 0} }

// IsZero reports whether d is the zero-distance sentinel.
func (d Distance) IsZero() bool { return d == ZeroDistance() }

// IsSpecial reports whether d is the frozen-pixel sentinel.
func (d Distance) IsSpecial() bool { return d == SpecialDistance() }

// Sqdist returns the anisotropic squared distance dx^2 + VS^2*dy^2 that
// the Voronoi passes compare against. Intermediate arithmetic runs in
// int64 to avoid any risk of unsigned wraparound on values that are
// always, mathematically, non-negative.
func (d Distance) Sqdist() uint32 {
	dx, dy := int64(d.DX), int64(d.DY)
	return uint32(dx*dx + verticalScaleSq*dy*dy)
}
