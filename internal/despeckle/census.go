package despeckle

import "despeckle/internal/connmap"

// census counts pixels and computes a bounding box for every label in
// cmap (spec.md §4.1, steps 1–2). Index 0 of both returned slices is
// unused, matching the 1-based label space.
func census(cmap *connmap.ConnectivityMap) ([]Component, []BoundingBox) {
	maxLabel := int(cmap.MaxLabel())
	components := make([]Component, maxLabel+1)
	boxes := make([]BoundingBox, maxLabel+1)
	for i := range boxes {
		boxes[i] = NewBoundingBox()
	}

	width, height := cmap.Width(), cmap.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			label := cmap.At(x, y)
			components[label].AddPixel()
			boxes[label].Extend(x, y)
		}
	}

	return components, boxes
}

// unifyBigComponents collapses every component whose bounding box
// reaches bigObjectThreshold in either dimension into one synthetic "big"
// component, and compacts the remaining small components to a dense
// label range starting at 1 (spec.md §4.1, steps 3–5). It rewrites every
// pixel of cmap through the resulting remap table.
//
// Returns the compacted components slice, the label of the synthetic big
// component, and the new maximum label.
func unifyBigComponents(cmap *connmap.ConnectivityMap, components []Component, boxes []BoundingBox, bigObjectThreshold int) ([]Component, uint32, uint32) {
	width, height := cmap.Width(), cmap.Height()
	remap := make([]uint32, len(components))

	var unifiedBig uint32
	next := uint32(1)

	for label := uint32(1); label <= cmap.MaxLabel(); label++ {
		box := boxes[label]
		if box.Width() < bigObjectThreshold && box.Height() < bigObjectThreshold {
			components[next] = components[label]
			remap[label] = next
			next++
			continue
		}

		if unifiedBig == 0 {
			unifiedBig = next
			next++
			components[unifiedBig] = components[label]
			// Saturating sentinel so size comparisons against the big
			// component always pass.
			components[unifiedBig].SetPixels(uint32(width * height))
		}
		remap[label] = unifiedBig
	}

	maxLabel := next - 1
	components = components[:next]

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			cmap.Set(x, y, remap[cmap.At(x, y)])
		}
	}

	return components, unifiedBig, maxLabel
}
