package despeckle

import "despeckle/internal/connmap"

// voronoi computes, for every pixel in the padded image, the Distance
// vector to the nearest foreground pixel under the anisotropic metric,
// relabeling the padded connectivity map so every pixel carries the
// label of that nearest foreground pixel.
//
// This is a two-pass sequential distance transform (Danielsson-style)
// with rotating line buffers of squared distances so neighbor access is
// O(1), translated directly from the reference implementation's four
// scans: top-to-bottom/left-to-right, top-to-bottom/right-to-left,
// bottom-to-top/right-to-left, bottom-to-top/left-to-right.
//
// dist must be pre-allocated to len(cmap.PaddedData()); its zero value
// (ZeroDistance) is the correct initial state for every pixel.
func voronoi(cmap *connmap.ConnectivityMap, dist []Distance) {
	stride := cmap.Stride()
	paddedHeight := cmap.Height() + 2
	cmapData := cmap.PaddedData()

	prevSqdist := make([]uint32, stride)
	thisSqdist := make([]uint32, stride)

	for x := 0; x < stride; x++ {
		dist[x] = ResetDistance(x)
		prevSqdist[x] = dist[x].Sqdist()
	}

	rowOff := 0
	// Top-to-bottom scan.
	for y := 1; y < paddedHeight; y++ {
		prevRowOff := rowOff
		rowOff += stride

		dist[rowOff] = ResetDistance(0)
		dist[rowOff+stride-1] = ResetDistance(stride - 1)
		thisSqdist[0] = dist[rowOff].Sqdist()
		thisSqdist[stride-1] = dist[rowOff+stride-1].Sqdist()

		// Left to right.
		for x := 1; x < stride-1; x++ {
			idx := rowOff + x
			if cmapData[idx] != 0 {
				thisSqdist[x] = 0
				continue
			}

			leftDist := dist[idx-1]
			sqdistLeft := int64(thisSqdist[x-1]) + 1 - 2*int64(leftDist.DX)

			topDist := dist[prevRowOff+x]
			sqdistTop := int64(prevSqdist[x]) + verticalScaleSq - 2*verticalScaleSq*int64(topDist.DY)

			if sqdistLeft < sqdistTop {
				thisSqdist[x] = uint32(sqdistLeft)
				leftDist.DX--
				dist[idx] = leftDist
				cmapData[idx] = cmapData[idx-1]
			} else {
				thisSqdist[x] = uint32(sqdistTop)
				topDist.DY--
				dist[idx] = topDist
				cmapData[idx] = cmapData[prevRowOff+x]
			}
		}

		// Right to left.
		for x := stride - 2; x >= 1; x-- {
			idx := rowOff + x
			rightDist := dist[idx+1]
			sqdistRight := int64(thisSqdist[x+1]) + 1 + 2*int64(rightDist.DX)

			if sqdistRight < int64(thisSqdist[x]) {
				thisSqdist[x] = uint32(sqdistRight)
				rightDist.DX++
				dist[idx] = rightDist
				cmapData[idx] = cmapData[idx+1]
			}
		}

		prevSqdist, thisSqdist = thisSqdist, prevSqdist
	}

	// Bottom-to-top scan.
	for y := paddedHeight - 2; y >= 1; y-- {
		nextRowOff := rowOff
		rowOff -= stride

		dist[rowOff] = ResetDistance(0)
		dist[rowOff+stride-1] = ResetDistance(stride - 1)
		thisSqdist[0] = dist[rowOff].Sqdist()
		thisSqdist[stride-1] = dist[rowOff+stride-1].Sqdist()

		// Right to left.
		for x := stride - 2; x >= 1; x-- {
			idx := rowOff + x

			rightDist := dist[idx+1]
			sqdistRight := int64(thisSqdist[x+1]) + 1 + 2*int64(rightDist.DX)

			bottomDist := dist[nextRowOff+x]
			sqdistBottom := int64(prevSqdist[x]) + verticalScaleSq + 2*verticalScaleSq*int64(bottomDist.DY)

			thisSqdist[x] = dist[idx].Sqdist()

			if sqdistRight < int64(thisSqdist[x]) {
				thisSqdist[x] = uint32(sqdistRight)
				rightDist.DX++
				dist[idx] = rightDist
				cmapData[idx] = cmapData[idx+1]
			}
			if sqdistBottom < int64(thisSqdist[x]) {
				thisSqdist[x] = uint32(sqdistBottom)
				bottomDist.DY++
				dist[idx] = bottomDist
				cmapData[idx] = cmapData[nextRowOff+x]
			}
		}

		// Left to right.
		for x := 1; x < stride-1; x++ {
			idx := rowOff + x

			leftDist := dist[idx-1]
			sqdistLeft := int64(thisSqdist[x-1]) + 1 - 2*int64(leftDist.DX)

			if sqdistLeft < int64(thisSqdist[x]) {
				thisSqdist[x] = uint32(sqdistLeft)
				leftDist.DX--
				dist[idx] = leftDist
				cmapData[idx] = cmapData[idx-1]
			}
		}

		prevSqdist, thisSqdist = thisSqdist, prevSqdist
	}
}

// voronoiSpecial recomputes the Voronoi diagram a second time, treating
// any pixel whose distance is already SpecialDistance as frozen: it is
// skipped entirely, both as a target of propagation and as a source
// (frozen pixels never spread and are never overwritten). Unlike voronoi,
// it performs no re-seeding of foreground pixels — the caller has already
// written ResetDistance/SpecialDistance into dist to express "open" and
// "frozen" regions.
//
// The top-to-bottom phase iterates y from 1 to height-2 inclusive
// (exclusive of the last row) while the bottom-to-top phase iterates y
// from height-2 down to 1 — this asymmetry relative to voronoi is
// intentional, reproduced exactly as specified.
func voronoiSpecial(cmap *connmap.ConnectivityMap, dist []Distance) {
	stride := cmap.Stride()
	paddedHeight := cmap.Height() + 2
	cmapData := cmap.PaddedData()

	prevSqdist := make([]uint32, stride)
	thisSqdist := make([]uint32, stride)

	for x := 0; x < stride; x++ {
		dist[x] = ResetDistance(x)
		prevSqdist[x] = dist[x].Sqdist()
	}

	rowOff := 0
	// Top-to-bottom scan, y from 1 to paddedHeight-2 inclusive.
	for y := 1; y < paddedHeight-1; y++ {
		prevRowOff := rowOff
		rowOff += stride

		dist[rowOff] = ResetDistance(0)
		dist[rowOff+stride-1] = ResetDistance(stride - 1)
		thisSqdist[0] = dist[rowOff].Sqdist()
		thisSqdist[stride-1] = dist[rowOff+stride-1].Sqdist()

		// Left to right.
		for x := 1; x < stride-1; x++ {
			idx := rowOff + x
			if dist[idx].IsSpecial() {
				continue
			}

			thisSqdist[x] = dist[idx].Sqdist()

			leftDist := dist[idx-1]
			if !leftDist.IsSpecial() {
				sqdistLeft := int64(thisSqdist[x-1]) + 1 - 2*int64(leftDist.DX)
				if sqdistLeft < int64(thisSqdist[x]) {
					thisSqdist[x] = uint32(sqdistLeft)
					leftDist.DX--
					dist[idx] = leftDist
					cmapData[idx] = cmapData[idx-1]
				}
			}

			topDist := dist[prevRowOff+x]
			if !topDist.IsSpecial() {
				sqdistTop := int64(prevSqdist[x]) + verticalScaleSq - 2*verticalScaleSq*int64(topDist.DY)
				if sqdistTop < int64(thisSqdist[x]) {
					thisSqdist[x] = uint32(sqdistTop)
					topDist.DY--
					dist[idx] = topDist
					cmapData[idx] = cmapData[prevRowOff+x]
				}
			}
		}

		// Right to left.
		for x := stride - 2; x >= 1; x-- {
			idx := rowOff + x
			if dist[idx].IsSpecial() {
				continue
			}

			rightDist := dist[idx+1]
			if !rightDist.IsSpecial() {
				sqdistRight := int64(thisSqdist[x+1]) + 1 + 2*int64(rightDist.DX)
				if sqdistRight < int64(thisSqdist[x]) {
					thisSqdist[x] = uint32(sqdistRight)
					rightDist.DX++
					dist[idx] = rightDist
					cmapData[idx] = cmapData[idx+1]
				}
			}
		}

		prevSqdist, thisSqdist = thisSqdist, prevSqdist
	}

	// Bottom-to-top scan, y from paddedHeight-2 down to 1.
	for y := paddedHeight - 2; y >= 1; y-- {
		nextRowOff := rowOff
		rowOff -= stride

		dist[rowOff] = ResetDistance(0)
		dist[rowOff+stride-1] = ResetDistance(stride - 1)
		thisSqdist[0] = dist[rowOff].Sqdist()
		thisSqdist[stride-1] = dist[rowOff+stride-1].Sqdist()

		// Right to left.
		for x := stride - 2; x >= 1; x-- {
			idx := rowOff + x
			if dist[idx].IsSpecial() {
				continue
			}

			thisSqdist[x] = dist[idx].Sqdist()

			rightDist := dist[idx+1]
			if !rightDist.IsSpecial() {
				sqdistRight := int64(thisSqdist[x+1]) + 1 + 2*int64(rightDist.DX)
				if sqdistRight < int64(thisSqdist[x]) {
					thisSqdist[x] = uint32(sqdistRight)
					rightDist.DX++
					dist[idx] = rightDist
					cmapData[idx] = cmapData[idx+1]
				}
			}

			bottomDist := dist[nextRowOff+x]
			if !bottomDist.IsSpecial() {
				sqdistBottom := int64(prevSqdist[x]) + verticalScaleSq + 2*verticalScaleSq*int64(bottomDist.DY)
				if sqdistBottom < int64(thisSqdist[x]) {
					thisSqdist[x] = uint32(sqdistBottom)
					bottomDist.DY++
					dist[idx] = bottomDist
					cmapData[idx] = cmapData[nextRowOff+x]
				}
			}
		}

		// Left to right.
		for x := 1; x < stride-1; x++ {
			idx := rowOff + x
			if dist[idx].IsSpecial() {
				continue
			}

			leftDist := dist[idx-1]
			if !leftDist.IsSpecial() {
				sqdistLeft := int64(thisSqdist[x-1]) + 1 - 2*int64(leftDist.DX)
				if sqdistLeft < int64(thisSqdist[x]) {
					thisSqdist[x] = uint32(sqdistLeft)
					leftDist.DX--
					dist[idx] = leftDist
					cmapData[idx] = cmapData[idx-1]
				}
			}
		}

		prevSqdist, thisSqdist = thisSqdist, prevSqdist
	}
}
