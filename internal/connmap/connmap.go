// Package connmap implements the padded label buffer the despeckle engine
// runs its Voronoi passes over, plus the 8-connectivity labeler that
// produces it from a bitimage.BinaryImage. Both are external-collaborator
// infrastructure spec.md assumes exists; nothing in the example corpus
// performs connected-component labeling, so the labeler here is original
// code written in the corpus's idiom rather than adapted from a specific
// file.
package connmap

import (
	"fmt"

	"despeckle/internal/bitimage"
)

// ConnectivityMap is a width x height rectangle of 32-bit labels (0 =
// background), surrounded by a one-pixel border of 0s. Row stride is
// width+2 words.
type ConnectivityMap struct {
	width    int
	height   int
	stride   int // width + 2
	labels   []uint32
	maxLabel uint32
}

func newMap(width, height int) *ConnectivityMap {
	stride := width + 2
	return &ConnectivityMap{
		width:  width,
		height: height,
		stride: stride,
		labels: make([]uint32, stride*(height+2)),
	}
}

func (c *ConnectivityMap) Width() int     { return c.width }
func (c *ConnectivityMap) Height() int    { return c.height }
func (c *ConnectivityMap) Stride() int    { return c.stride }
func (c *ConnectivityMap) MaxLabel() uint32 { return c.maxLabel }

// PaddedData returns the full padded buffer, indexable with Stride() as
// the row stride, row 0 / column 0 being the border.
func (c *ConnectivityMap) PaddedData() []uint32 { return c.labels }

// unpaddedOffset returns the index of the first real pixel: one row down,
// one column in from the padded buffer's origin.
func (c *ConnectivityMap) unpaddedOffset() int { return c.stride + 1 }

// Data returns the unpadded view: Data()[y*Stride()+x] addresses a real
// pixel using the padded stride, matching the ConnectivityMap::data()
// pointer-arithmetic idiom from the original implementation.
func (c *ConnectivityMap) Data() []uint32 { return c.labels[c.unpaddedOffset():] }

// At returns the label at unpadded pixel (x, y).
func (c *ConnectivityMap) At(x, y int) uint32 {
	return c.labels[c.unpaddedOffset()+y*c.stride+x]
}

// Set writes the label at unpadded pixel (x, y).
func (c *ConnectivityMap) Set(x, y int, label uint32) {
	c.labels[c.unpaddedOffset()+y*c.stride+x] = label
}

// ValidateForOperation mirrors bitimage.ValidateForOperation's shape,
// checking the invariants the engine relies on before consuming a map.
func ValidateForOperation(c *ConnectivityMap, operation string) error {
	if c == nil {
		return fmt.Errorf("connmap: map is nil for operation: %s", operation)
	}
	if c.width <= 0 || c.height <= 0 {
		return fmt.Errorf("connmap: invalid dimensions %dx%d for operation: %s", c.width, c.height, operation)
	}
	if c.stride != c.width+2 {
		return fmt.Errorf("connmap: stride %d inconsistent with width %d for operation: %s", c.stride, c.width, operation)
	}
	if len(c.labels) != c.stride*(c.height+2) {
		return fmt.Errorf("connmap: buffer size %d inconsistent with %dx%d for operation: %s",
			len(c.labels), c.width, c.height, operation)
	}
	return nil
}

// Label runs an 8-connectivity connected-components pass over img and
// returns a freshly labeled, padded ConnectivityMap. Labels are assigned
// in a dense range starting at 1; label 0 means background (including the
// one-pixel padding border).
func Label(img *bitimage.BinaryImage) (*ConnectivityMap, error) {
	if err := bitimage.ValidateForOperation(img, "connmap.Label"); err != nil {
		return nil, err
	}

	width, height := img.Width(), img.Height()
	cmap := newMap(width, height)

	parent := make([]uint32, 1)           // union-find over provisional labels, 0 unused
	provisional := make([]uint32, width*height)

	find := func(x uint32) uint32 {
		for parent[x] != x {
			x = parent[x]
		}
		return x
	}
	union := func(a, b uint32) uint32 {
		ra, rb := find(a), find(b)
		if ra == rb {
			return ra
		}
		if ra < rb {
			parent[rb] = ra
			return ra
		}
		parent[ra] = rb
		return rb
	}
	newLabel := func() uint32 {
		id := uint32(len(parent))
		parent = append(parent, id)
		return id
	}

	// First pass: assign provisional labels, unioning across the
	// already-visited west/northwest/north/northeast neighbors (8-connectivity).
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !img.Get(x, y) {
				continue
			}

			var neighbors []uint32
			if x > 0 && provisional[y*width+x-1] != 0 {
				neighbors = append(neighbors, provisional[y*width+x-1])
			}
			if y > 0 {
				if x > 0 && provisional[(y-1)*width+x-1] != 0 {
					neighbors = append(neighbors, provisional[(y-1)*width+x-1])
				}
				if provisional[(y-1)*width+x] != 0 {
					neighbors = append(neighbors, provisional[(y-1)*width+x])
				}
				if x+1 < width && provisional[(y-1)*width+x+1] != 0 {
					neighbors = append(neighbors, provisional[(y-1)*width+x+1])
				}
			}

			if len(neighbors) == 0 {
				provisional[y*width+x] = newLabel()
				continue
			}

			label := neighbors[0]
			for _, n := range neighbors[1:] {
				label = union(label, n)
			}
			provisional[y*width+x] = label
		}
	}

	// Second pass: resolve to final dense roots and assign final labels
	// in first-seen order.
	finalLabel := make(map[uint32]uint32)
	var next uint32 = 1
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := provisional[y*width+x]
			if p == 0 {
				continue
			}
			root := find(p)
			label, ok := finalLabel[root]
			if !ok {
				label = next
				next++
				finalLabel[root] = label
			}
			cmap.Set(x, y, label)
		}
	}

	cmap.maxLabel = next - 1
	return cmap, nil
}
