package despeckle

import "testing"

func TestNewBoundingBoxExtend(t *testing.T) {
	b := NewBoundingBox()
	b.Extend(5, 5)
	if b.Width() != 1 || b.Height() != 1 {
		t.Fatalf("single-pixel box should be 1x1, got %dx%d", b.Width(), b.Height())
	}

	b.Extend(10, 8)
	b.Extend(2, 20)
	if b.Left != 2 || b.Right != 10 || b.Top != 5 || b.Bottom != 20 {
		t.Fatalf("unexpected box after extends: %+v", b)
	}
	if b.Width() != 9 || b.Height() != 16 {
		t.Fatalf("expected 9x16, got %dx%d", b.Width(), b.Height())
	}
}

func TestComponentAnchorFlags(t *testing.T) {
	var c Component
	if c.AnchoredToBig() || c.AnchoredToSmall() || c.AnchoredToSmallButNotBig() {
		t.Fatal("a fresh component should carry no anchor flags")
	}

	c.SetAnchoredToSmall()
	if !c.AnchoredToSmallButNotBig() {
		t.Fatal("anchored-to-small-only should report AnchoredToSmallButNotBig")
	}

	c.SetAnchoredToBig()
	if c.AnchoredToSmallButNotBig() {
		t.Fatal("AnchoredToBig must dominate AnchoredToSmallButNotBig")
	}

	c.ClearTags()
	if c.AnchoredToBig() || c.AnchoredToSmall() {
		t.Fatal("ClearTags should reset both flags")
	}
}

func TestComponentPixelsAndSetPixels(t *testing.T) {
	var c Component
	c.AddPixel()
	c.AddPixel()
	if c.Pixels() != 2 {
		t.Fatalf("expected 2 pixels, got %d", c.Pixels())
	}
	c.SetPixels(1000)
	if c.Pixels() != 1000 {
		t.Fatalf("expected 1000 pixels after SetPixels, got %d", c.Pixels())
	}
}

func TestAddPixelPanicsAtTheCap(t *testing.T) {
	var c Component
	c.SetPixels(maxPixelCount)
	defer func() {
		if recover() == nil {
			t.Fatal("expected AddPixel to panic at the 30-bit cap")
		}
	}()
	c.AddPixel()
}
