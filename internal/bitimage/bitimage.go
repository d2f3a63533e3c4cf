// Package bitimage implements the 1-bit image container the despeckle
// engine operates on: a width x height rectangle of bits, packed MSB-first
// into 32-bit words, one row of whole words per scanline. Foreground
// (ink) pixels are 1.
//
// This is the "Image" data structure from the despeckle engine's
// external-collaborator boundary: nothing else in the ecosystem provides
// a packed-bit container with this exact bit order, so it lives here
// rather than inside internal/despeckle.
package bitimage

import "fmt"

// BinaryImage is a packed 1-bit raster, MSB-first within each 32-bit word.
type BinaryImage struct {
	width  int
	height int
	stride int // words per row
	words  []uint32
}

// New allocates an all-white (all-zero) image of the given dimensions.
func New(width, height int) (*BinaryImage, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("bitimage: invalid dimensions %dx%d", width, height)
	}
	stride := (width + 31) / 32
	return &BinaryImage{
		width:  width,
		height: height,
		stride: stride,
		words:  make([]uint32, stride*height),
	}, nil
}

// Clone returns a deep copy, used by the out-of-place Despeckle entry point
// so the caller's image is never mutated.
func (b *BinaryImage) Clone() *BinaryImage {
	words := make([]uint32, len(b.words))
	copy(words, b.words)
	return &BinaryImage{width: b.width, height: b.height, stride: b.stride, words: words}
}

func (b *BinaryImage) Width() int  { return b.width }
func (b *BinaryImage) Height() int { return b.height }

// WordsPerLine returns the row stride in whole 32-bit words.
func (b *BinaryImage) WordsPerLine() int { return b.stride }

// Row exposes the packed word buffer for a single row, for callers that
// need raw bit-twiddling access.
func (b *BinaryImage) Row(y int) []uint32 {
	return b.words[y*b.stride : (y+1)*b.stride]
}

const msb = uint32(1) << 31

// Get reports whether pixel (x, y) is foreground.
func (b *BinaryImage) Get(x, y int) bool {
	word := b.words[y*b.stride+(x>>5)]
	return word&(msb>>uint(x&31)) != 0
}

// Set sets pixel (x, y) to foreground.
func (b *BinaryImage) Set(x, y int) {
	b.words[y*b.stride+(x>>5)] |= msb >> uint(x&31)
}

// Clear clears pixel (x, y) to background. Bit order is MSB-first within
// the 32-bit word at index x>>5, exactly as spec'd: mask 0x80000000>>(x&31).
func (b *BinaryImage) Clear(x, y int) {
	b.words[y*b.stride+(x>>5)] &^= msb >> uint(x&31)
}

// ValidateForOperation checks the invariants the despeckle engine relies
// on before it touches an image, mirroring the teacher's
// safe.ValidateMatForOperation shape (nil check, dimension check) adapted
// to this packed-bit container.
func ValidateForOperation(b *BinaryImage, operation string) error {
	if b == nil {
		return fmt.Errorf("bitimage: image is nil for operation: %s", operation)
	}
	if b.width <= 0 || b.height <= 0 {
		return fmt.Errorf("bitimage: invalid dimensions %dx%d for operation: %s", b.width, b.height, operation)
	}
	if b.stride != (b.width+31)/32 {
		return fmt.Errorf("bitimage: stride %d inconsistent with width %d for operation: %s", b.stride, b.width, operation)
	}
	if len(b.words) != b.stride*b.height {
		return fmt.Errorf("bitimage: word buffer size %d inconsistent with %dx%d for operation: %s",
			len(b.words), b.width, b.height, operation)
	}
	return nil
}
