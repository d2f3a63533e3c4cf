package bitimage

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestNewIsAllWhite(t *testing.T) {
	img, err := New(10, 5)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if img.Get(x, y) {
				t.Fatalf("pixel (%d,%d) expected background", x, y)
			}
		}
	}
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	if _, err := New(0, 5); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := New(5, -1); err == nil {
		t.Fatal("expected error for negative height")
	}
}

func TestSetGetClear(t *testing.T) {
	img, err := New(40, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img.Set(33, 1)
	if !img.Get(33, 1) {
		t.Fatal("pixel not set")
	}
	img.Clear(33, 1)
	if img.Get(33, 1) {
		t.Fatal("pixel not cleared")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	img, err := New(40, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img.Set(5, 1)
	clone := img.Clone()
	clone.Set(6, 1)

	if img.Get(6, 1) {
		t.Fatal("mutating the clone mutated the original")
	}
	if !clone.Get(5, 1) {
		t.Fatal("clone lost the original's pixel")
	}
}

func TestValidateForOperation(t *testing.T) {
	if err := ValidateForOperation(nil, "test"); err == nil {
		t.Fatal("expected error for nil image")
	}
	img, err := New(10, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := ValidateForOperation(img, "test"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromImageThreshold(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 1))
	gray.SetGray(0, 0, color.Gray{Y: 10})  // dark -> foreground
	gray.SetGray(1, 0, color.Gray{Y: 250}) // light -> background

	out, err := FromImage(gray, 128)
	if err != nil {
		t.Fatalf("FromImage: %v", err)
	}
	if !out.Get(0, 0) {
		t.Fatal("dark pixel should be foreground")
	}
	if out.Get(1, 0) {
		t.Fatal("light pixel should be background")
	}
}

func TestOtsuThresholdSeparatesTwoLevels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			v := uint8(20)
			if x >= 2 {
				v = 235
			}
			gray.SetGray(x, y, color.Gray{Y: v})
		}
	}
	threshold := OtsuThreshold(gray)
	if threshold < 20 || threshold > 235 {
		t.Fatalf("threshold %d not between the two levels", threshold)
	}
}

func TestPNGRoundTrip(t *testing.T) {
	img, err := New(16, 8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img.Set(3, 3)
	img.Set(15, 7)

	var buf bytes.Buffer
	if err := img.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}

	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Width() != 16 || out.Height() != 8 {
		t.Fatalf("dimensions changed: got %dx%d", out.Width(), out.Height())
	}
	if !out.Get(3, 3) || !out.Get(15, 7) {
		t.Fatal("foreground pixels lost across PNG round trip")
	}
}

func TestBMPRoundTrip(t *testing.T) {
	img, err := New(20, 10)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img.Set(1, 1)
	img.Set(18, 9)

	var buf bytes.Buffer
	if err := img.EncodeBMP(&buf); err != nil {
		t.Fatalf("EncodeBMP: %v", err)
	}

	out, err := DecodeBMP(&buf)
	if err != nil {
		t.Fatalf("DecodeBMP: %v", err)
	}
	if !out.Get(1, 1) || !out.Get(18, 9) {
		t.Fatal("foreground pixels lost across BMP round trip")
	}
}

func TestWebPRoundTrip(t *testing.T) {
	img, err := New(12, 12)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	img.Set(0, 0)
	img.Set(11, 11)

	var buf bytes.Buffer
	if err := img.EncodeWebP(&buf); err != nil {
		t.Fatalf("EncodeWebP: %v", err)
	}

	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !out.Get(0, 0) || !out.Get(11, 11) {
		t.Fatal("foreground pixels lost across WebP round trip")
	}
}

func TestThumbnailShrinksOversizedImages(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 400, 200))
	thumb := Thumbnail(src, 100, 100)
	b := thumb.Bounds()
	if b.Dx() > 100 || b.Dy() > 100 {
		t.Fatalf("thumbnail %dx%d exceeds the requested bound", b.Dx(), b.Dy())
	}
}

func TestThumbnailPassesThroughSmallImages(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 50, 50))
	thumb := Thumbnail(src, 100, 100)
	if thumb != src {
		t.Fatal("an already-small image should be returned unchanged")
	}
}
