package despeckle

import "despeckle/internal/connmap"

// Connection is an undirected pair of component labels, always stored with
// the lesser label first so (a, b) and (b, a) canonicalize identically.
type Connection struct {
	Label1, Label2 uint32
}

func newConnection(a, b uint32) Connection {
	if a > b {
		a, b = b, a
	}
	return Connection{Label1: a, Label2: b}
}

// voronoiDistances walks every pixel of the padded Voronoi diagram and, for
// each pair of orthogonally adjacent pixels carrying two different nonzero
// labels, records the squared distance between the two source pixels their
// Distance vectors point to — the isotropic (non-vertically-scaled)
// distance spec.md §4.4 calls for, not the anisotropic metric voronoi used
// to build the diagram. Only the minimum squared distance seen for each
// label pair survives. into, if non-nil, is updated in place and returned,
// so a second-chance recomputation accumulates into the connections found
// by the primary pass rather than replacing them (spec.md §4.6 step 3).
func voronoiDistances(cmap *connmap.ConnectivityMap, dist []Distance, into map[Connection]uint32) map[Connection]uint32 {
	stride := cmap.Stride()
	height := cmap.Height()
	cmapData := cmap.PaddedData()

	distances := into
	if distances == nil {
		distances = make(map[Connection]uint32)
	}

	// record considers the pair (idx1, idx2), where idx2 sits offsetX/offsetY
	// pixels away from idx1 in the padded grid, and upserts the true squared
	// distance between the two foreground source points their Distance
	// vectors point to.
	record := func(idx1, idx2 int, offsetX, offsetY int64) {
		label1, label2 := cmapData[idx1], cmapData[idx2]
		if label1 == 0 || label2 == 0 || label1 == label2 {
			return
		}
		d1, d2 := dist[idx1], dist[idx2]
		deltaX := int64(d1.DX) - int64(d2.DX) - offsetX
		deltaY := int64(d1.DY) - int64(d2.DY) - offsetY
		sqdist := uint32(deltaX*deltaX + deltaY*deltaY)

		conn := newConnection(label1, label2)
		if prev, ok := distances[conn]; !ok || sqdist < prev {
			distances[conn] = sqdist
		}
	}

	// Padded rows run 0..height+1; compare each pixel against its right
	// and lower neighbor, which visits every adjacent pair exactly once
	// (the pair's other two orthogonal neighbors, left and up, are the
	// same pair seen from the opposite pixel).
	for y := 0; y <= height; y++ {
		rowOff := y * stride
		nextRowOff := rowOff + stride
		for x := 0; x < stride-1; x++ {
			idx := rowOff + x
			record(idx, idx+1, 1, 0)        // right neighbor
			record(idx, nextRowOff+x, 0, 1) // lower neighbor
		}
	}

	return distances
}
