package despeckle

import "despeckle/internal/connmap"

// TriggerPolicy selects how the second-chance trigger in spec.md §4.6 is
// evaluated.
type TriggerPolicy int

const (
	// TriggerLastComponent reproduces the reference implementation's
	// literal behavior: the trigger fires iff the LAST component
	// iterated is anchored-to-small-but-not-big, since the source
	// assigns (rather than ORs) the predicate inside its loop. This is
	// almost certainly an unintentional bug, but it is the default here
	// for byte-for-byte compatibility with the reference tool's output.
	TriggerLastComponent TriggerPolicy = iota

	// TriggerAnyComponent fires the second chance as soon as any
	// component is anchored-to-small-but-not-big, which is what the
	// source most likely intended. Opt in explicitly when exact
	// reference-output compatibility is not required.
	TriggerAnyComponent
)

// tagSourceComponent tags source with ANCHORED_TO_SMALL or ANCHORED_TO_BIG
// based on its distance to target, per spec.md §4.5. It never downgrades a
// component already anchored to big.
func tagSourceComponent(source, target *Component, sqdist uint32, p Parameters) {
	if source.AnchoredToBig() {
		return
	}

	if uint64(sqdist) > uint64(source.Pixels())*uint64(p.PixelsToSqDist) {
		return
	}

	if float64(target.Pixels()) >= p.MinRelativeParentWeight*float64(source.Pixels()) {
		source.SetAnchoredToBig()
	} else {
		source.SetAnchoredToSmall()
	}
}

// canBeAttachedTo reports whether comp may be attached to target given
// their squared distance, per spec.md §4.7. It is the same predicate
// tagSourceComponent evaluates, without the ANCHORED_TO_BIG early-out, and
// is applied symmetrically in both directions by the caller.
func canBeAttachedTo(comp, target *Component, sqdist uint32, p Parameters) bool {
	if uint64(sqdist) > uint64(comp.Pixels())*uint64(p.PixelsToSqDist) {
		return false
	}
	return float64(target.Pixels()) >= float64(comp.Pixels())*p.MinRelativeParentWeight
}

// tagComponents applies tagSourceComponent to every connection in both
// directions, then forces the synthetic big component's ANCHORED_TO_BIG so
// it is never eligible to grow further in the second-chance pass.
func tagComponents(components []Component, distances map[Connection]uint32, unifiedBig uint32, p Parameters) {
	for conn, sqdist := range distances {
		comp1, comp2 := &components[conn.Label1], &components[conn.Label2]
		tagSourceComponent(comp1, comp2, sqdist, p)
		tagSourceComponent(comp2, comp1, sqdist, p)
	}
	components[unifiedBig].SetAnchoredToBig()
}

// needsSecondChance evaluates the spec.md §4.6 trigger predicate according
// to policy. Component 0 (the unused background slot) is excluded, matching
// the reference implementation's 1-based component iteration.
func needsSecondChance(components []Component, policy TriggerPolicy) bool {
	switch policy {
	case TriggerAnyComponent:
		for i := 1; i < len(components); i++ {
			if components[i].AnchoredToSmallButNotBig() {
				return true
			}
		}
		return false
	default: // TriggerLastComponent
		if len(components) <= 1 {
			return false
		}
		return components[len(components)-1].AnchoredToSmallButNotBig()
	}
}

// freezeOrOpen rewrites dist, per spec.md §4.6 step 1, ahead of the second
// voronoiSpecial pass: components that are NOT anchored-to-small-but-not-big
// are frozen (their foreground pixels become special; their background
// territory becomes an open region other components may take over).
// Components anchored-to-small-but-not-big are left untouched, keeping
// their existing Voronoi territory eligible to be overtaken as-is.
func freezeOrOpen(cmap *connmap.ConnectivityMap, dist []Distance, components []Component) {
	stride := cmap.Stride()
	height := cmap.Height()
	cmapData := cmap.PaddedData()

	for y := 0; y < height; y++ {
		rowOff := (y + 1) * stride
		for x := 0; x < cmap.Width(); x++ {
			idx := rowOff + x + 1
			label := cmapData[idx]
			if components[label].AnchoredToSmallButNotBig() {
				continue
			}
			if dist[idx].IsZero() {
				dist[idx] = SpecialDistance()
			} else {
				dist[idx] = ResetDistance(x + 1)
			}
		}
	}
}
