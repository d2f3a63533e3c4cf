package despeckle

import (
	"testing"

	"despeckle/internal/bitimage"
)

func TestTagSourceComponentSetsAnchoredToBig(t *testing.T) {
	source := Component{}
	source.SetPixels(10)
	target := Component{}
	target.SetPixels(1000)

	p := Parameters{MinRelativeParentWeight: 0.1, PixelsToSqDist: 100}
	tagSourceComponent(&source, &target, 50, p)

	if !source.AnchoredToBig() {
		t.Fatal("a close, large target should anchor the source to big")
	}
}

func TestTagSourceComponentSetsAnchoredToSmall(t *testing.T) {
	source := Component{}
	source.SetPixels(10)
	target := Component{}
	target.SetPixels(5) // too small relative to source

	p := Parameters{MinRelativeParentWeight: 1.0, PixelsToSqDist: 100}
	tagSourceComponent(&source, &target, 50, p)

	if source.AnchoredToBig() {
		t.Fatal("an undersized target must not anchor the source to big")
	}
	if !source.AnchoredToSmall() {
		t.Fatal("expected the source to be anchored-to-small")
	}
}

func TestTagSourceComponentSkipsWhenTooFar(t *testing.T) {
	source := Component{}
	source.SetPixels(10)
	target := Component{}
	target.SetPixels(1000)

	p := Parameters{MinRelativeParentWeight: 0.1, PixelsToSqDist: 1}
	tagSourceComponent(&source, &target, 9999, p)

	if source.AnchoredToBig() || source.AnchoredToSmall() {
		t.Fatal("a too-distant target must not tag the source at all")
	}
}

func TestTagSourceComponentNeverDowngradesFromBig(t *testing.T) {
	source := Component{}
	source.SetPixels(10)
	source.SetAnchoredToBig()
	target := Component{}
	target.SetPixels(1)

	p := Parameters{MinRelativeParentWeight: 1.0, PixelsToSqDist: 10000}
	tagSourceComponent(&source, &target, 1, p)

	if !source.AnchoredToBig() {
		t.Fatal("AnchoredToBig must never be cleared by a later call")
	}
	if source.AnchoredToSmall() {
		t.Fatal("a component already anchored to big must not also gain AnchoredToSmall")
	}
}

func TestCanBeAttachedTo(t *testing.T) {
	comp := Component{}
	comp.SetPixels(10)
	target := Component{}
	target.SetPixels(1000)

	p := Parameters{MinRelativeParentWeight: 0.1, PixelsToSqDist: 100}
	if !canBeAttachedTo(&comp, &target, 50, p) {
		t.Fatal("expected attach to be allowed")
	}
	if canBeAttachedTo(&comp, &target, 50, Parameters{MinRelativeParentWeight: 0.1, PixelsToSqDist: 1}) {
		t.Fatal("expected attach to be rejected once the distance exceeds the budget")
	}
}

func TestNeedsSecondChanceTriggerLastComponent(t *testing.T) {
	components := make([]Component, 4)
	components[3].SetAnchoredToSmall()

	if !needsSecondChance(components, TriggerLastComponent) {
		t.Fatal("expected trigger when the last component is anchored-to-small-but-not-big")
	}

	components[1].SetAnchoredToSmall() // not the last component
	components[3].SetAnchoredToBig()   // last component no longer qualifies
	if needsSecondChance(components, TriggerLastComponent) {
		t.Fatal("TriggerLastComponent must ignore every component but the last")
	}
}

func TestNeedsSecondChanceTriggerAnyComponent(t *testing.T) {
	components := make([]Component, 4)
	components[1].SetAnchoredToSmall()

	if !needsSecondChance(components, TriggerAnyComponent) {
		t.Fatal("expected trigger when any non-last component is anchored-to-small-but-not-big")
	}
}

func TestNeedsSecondChanceEmptyComponentList(t *testing.T) {
	if needsSecondChance(nil, TriggerLastComponent) {
		t.Fatal("an empty component list must never trigger a second chance")
	}
}

func TestTagComponentsForcesUnifiedBigAnchoredToBig(t *testing.T) {
	components := make([]Component, 3)
	components[1].SetPixels(5)
	components[2].SetPixels(1000)
	distances := map[Connection]uint32{}

	tagComponents(components, distances, 2, Parameters{MinRelativeParentWeight: 0.1, PixelsToSqDist: 100})

	if !components[2].AnchoredToBig() {
		t.Fatal("the synthetic big component must always end anchored-to-big")
	}
}

// TestFreezeOrOpenAndVoronoiSpecialReclaimFrozenTerritory drives the
// freeze/open partition and the second Voronoi pass directly, mirroring
// TestVoronoiAssignsEveryPixelTheNearestLabel's single-row setup. Component
// A (anchored-to-big) sits at x=0; component B (anchored-to-small-but-not-
// big) sits at x=10. The primary pass gives A everything up to the
// midpoint, including x=4. freezeOrOpen must then wall A off (its source
// pixel becomes special, its claimed background becomes open) while
// leaving B untouched, and voronoiSpecial must let B reclaim the territory
// A surrendered, since A's frozen source pixel can never propagate again.
func TestFreezeOrOpenAndVoronoiSpecialReclaimFrozenTerritory(t *testing.T) {
	img, err := bitimage.New(21, 1)
	if err != nil {
		t.Fatalf("bitimage.New: %v", err)
	}
	img.Set(0, 0)  // component A
	img.Set(10, 0) // component B
	cmap := label(t, img)

	dist := make([]Distance, len(cmap.PaddedData()))
	voronoi(cmap, dist)

	if cmap.At(4, 0) != 1 {
		t.Fatalf("before freezing, x=4 should belong to A (label 1), got %d", cmap.At(4, 0))
	}

	components := make([]Component, 3)
	components[1].SetAnchoredToBig()
	components[2].SetAnchoredToSmall()
	if !components[2].AnchoredToSmallButNotBig() {
		t.Fatal("component B must be anchored-to-small-but-not-big going into the freeze")
	}

	stride := cmap.Stride()
	idxA := stride + 1    // unpadded (0, 0)
	idxOpen := stride + 5 // unpadded (4, 0), A's surrendered territory
	idxB := stride + 11   // unpadded (10, 0)

	freezeOrOpen(cmap, dist, components)

	if !dist[idxA].IsSpecial() {
		t.Fatal("A's own source pixel must become special once A is frozen")
	}
	if dist[idxOpen].IsSpecial() {
		t.Fatal("A's surrendered background territory must be reset, not special")
	}
	if dist[idxOpen] != ResetDistance(5) {
		t.Fatalf("expected x=4 to be reset with ResetDistance(5), got %+v", dist[idxOpen])
	}
	if !dist[idxB].IsZero() {
		t.Fatal("B is anchored-to-small-but-not-big and must be left completely untouched")
	}
	if cmap.At(4, 0) != 1 {
		t.Fatal("freezeOrOpen must not touch the connectivity map, only dist")
	}

	voronoiSpecial(cmap, dist)

	if cmap.At(0, 0) != 1 {
		t.Fatal("A's frozen source pixel must keep its own label forever")
	}
	if !dist[idxA].IsSpecial() {
		t.Fatal("A's frozen source pixel must never be overwritten by voronoiSpecial")
	}
	if cmap.At(4, 0) != 2 {
		t.Fatalf("B should reclaim the territory A surrendered, got label %d", cmap.At(4, 0))
	}
	if cmap.At(10, 0) != 2 {
		t.Fatal("B's own source pixel must keep its own label")
	}
}
