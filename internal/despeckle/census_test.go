package despeckle

import (
	"testing"

	"despeckle/internal/bitimage"
	"despeckle/internal/connmap"
)

func labelRect(t *testing.T, w, h, x0, y0, rw, rh int) *connmap.ConnectivityMap {
	t.Helper()
	img, err := bitimage.New(w, h)
	if err != nil {
		t.Fatalf("bitimage.New: %v", err)
	}
	for y := y0; y < y0+rh; y++ {
		for x := x0; x < x0+rw; x++ {
			img.Set(x, y)
		}
	}
	cmap, err := connmap.Label(img)
	if err != nil {
		t.Fatalf("connmap.Label: %v", err)
	}
	return cmap
}

func TestCensusCountsPixelsAndBox(t *testing.T) {
	cmap := labelRect(t, 20, 20, 3, 4, 5, 6)
	components, boxes := census(cmap)

	if len(components) != int(cmap.MaxLabel())+1 {
		t.Fatalf("expected %d components, got %d", cmap.MaxLabel()+1, len(components))
	}
	if components[1].Pixels() != 30 {
		t.Fatalf("expected 30 pixels (5x6), got %d", components[1].Pixels())
	}
	box := boxes[1]
	if box.Left != 3 || box.Top != 4 || box.Width() != 5 || box.Height() != 6 {
		t.Fatalf("unexpected box: %+v", box)
	}
}

func TestUnifyBigComponentsCompactsSmallLabels(t *testing.T) {
	img, err := bitimage.New(30, 30)
	if err != nil {
		t.Fatalf("bitimage.New: %v", err)
	}
	img.Set(1, 1)   // speck, label 1
	for y := 20; y < 25; y++ {
		for x := 20; x < 25; x++ {
			img.Set(x, y) // 5x5 component, label 2
		}
	}
	cmap, err := connmap.Label(img)
	if err != nil {
		t.Fatalf("connmap.Label: %v", err)
	}
	components, boxes := census(cmap)

	// threshold 10: neither component reaches it, so no unification happens
	// and both stay distinct, compacted labels.
	out, unifiedBig, maxLabel := unifyBigComponents(cmap, components, boxes, 10)
	if unifiedBig != 0 {
		t.Fatalf("expected no unified big component, got label %d", unifiedBig)
	}
	if maxLabel != 2 {
		t.Fatalf("expected 2 labels after compaction, got %d", maxLabel)
	}
	if len(out) != 3 {
		t.Fatalf("expected 3 slots (including index 0), got %d", len(out))
	}
}

func TestUnifyBigComponentsCreatesSyntheticBig(t *testing.T) {
	width, height := 30, 30
	img, err := bitimage.New(width, height)
	if err != nil {
		t.Fatalf("bitimage.New: %v", err)
	}
	img.Set(1, 1) // speck, stays small
	for y := 5; y < 25; y++ {
		for x := 5; x < 25; x++ {
			img.Set(x, y) // 20x20, reaches any reasonable threshold
		}
	}
	cmap, err := connmap.Label(img)
	if err != nil {
		t.Fatalf("connmap.Label: %v", err)
	}
	components, boxes := census(cmap)

	out, unifiedBig, maxLabel := unifyBigComponents(cmap, components, boxes, 12)
	if unifiedBig == 0 {
		t.Fatal("expected a synthetic big component")
	}
	if out[unifiedBig].Pixels() != uint32(width*height) {
		t.Fatalf("synthetic big component should carry the saturating width*height sentinel, got %d", out[unifiedBig].Pixels())
	}
	if maxLabel != 2 {
		t.Fatalf("expected 2 labels (speck + unified big), got %d", maxLabel)
	}

	// Every pixel of the former 20x20 square must now carry the unified label.
	for y := 5; y < 25; y++ {
		for x := 5; x < 25; x++ {
			if cmap.At(x, y) != unifiedBig {
				t.Fatalf("pixel (%d,%d) should carry the unified big label %d, got %d", x, y, unifiedBig, cmap.At(x, y))
			}
		}
	}
}

func TestUnifyBigComponentsMergesMultipleBigComponentsOntoOneLabel(t *testing.T) {
	img, err := bitimage.New(40, 40)
	if err != nil {
		t.Fatalf("bitimage.New: %v", err)
	}
	for y := 0; y < 15; y++ {
		for x := 0; x < 15; x++ {
			img.Set(x, y)
		}
	}
	for y := 25; y < 40; y++ {
		for x := 25; x < 40; x++ {
			img.Set(x, y)
		}
	}
	cmap, err := connmap.Label(img)
	if err != nil {
		t.Fatalf("connmap.Label: %v", err)
	}
	components, boxes := census(cmap)

	_, unifiedBig, maxLabel := unifyBigComponents(cmap, components, boxes, 12)
	if maxLabel != 1 {
		t.Fatalf("two disjoint big components must unify onto a single label, got maxLabel=%d", maxLabel)
	}
	if cmap.At(0, 0) != unifiedBig || cmap.At(30, 30) != unifiedBig {
		t.Fatal("both disjoint big squares must carry the unified label")
	}
}
