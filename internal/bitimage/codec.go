package bitimage

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/jsummers/gobmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/bmp"

	_ "github.com/ftrvxmtrx/tga" // registers the TGA decoder with image.Decode
)

// ToImage renders the binary image as an image.Gray (black ink on white
// paper), suitable for encoding with any standard library or ecosystem
// codec.
func (b *BinaryImage) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			v := uint8(255)
			if b.Get(x, y) {
				v = 0
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// FromImage binarizes an arbitrary image.Image with a fixed 8-bit
// threshold (pixels at or below the threshold become foreground ink).
// Use OtsuThreshold to compute a data-driven threshold first when the
// source isn't already known to be bilevel.
func FromImage(src image.Image, threshold uint8) (*BinaryImage, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	out, err := New(width, height)
	if err != nil {
		return nil, err
	}

	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, src, bounds.Min, draw.Src)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if gray.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y <= threshold {
				out.Set(x, y)
			}
		}
	}
	return out, nil
}

// OtsuThreshold computes the classic between-class-variance-maximizing
// threshold for a grayscale image, the same formula the teacher uses as a
// ground-truth baseline in internal/pipeline/metrics.go
// (calculateOtsuThreshold), reused here to binarize scans that aren't
// already bilevel before despeckling.
func OtsuThreshold(src image.Image) uint8 {
	bounds := src.Bounds()
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, src, bounds.Min, draw.Src)

	var histogram [256]int
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			histogram[gray.GrayAt(x, y).Y]++
		}
	}

	total := bounds.Dx() * bounds.Dy()
	sum := 0.0
	for i, count := range histogram {
		sum += float64(i) * float64(count)
	}

	sumB := 0.0
	weightB := 0
	maxVariance := 0.0
	threshold := 0

	for i, count := range histogram {
		weightB += count
		if weightB == 0 {
			continue
		}
		weightF := total - weightB
		if weightF == 0 {
			break
		}
		sumB += float64(i) * float64(count)

		meanB := sumB / float64(weightB)
		meanF := (sum - sumB) / float64(weightF)
		between := float64(weightB) * float64(weightF) * (meanB - meanF) * (meanB - meanF)

		if between > maxVariance {
			maxVariance = between
			threshold = i
		}
	}
	return uint8(threshold)
}

// Decode reads a page image in any registered format (PNG, BMP, TGA,
// WebP) and binarizes it, applying Otsu thresholding when the source
// isn't already pure black/white.
func Decode(r io.Reader) (*BinaryImage, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		// image.Decode only tries formats registered via blank import
		// (png is in the standard library, bmp and webp are not).
		return nil, fmt.Errorf("bitimage: decode: %w", err)
	}

	threshold := OtsuThreshold(img)
	out, err := FromImage(img, threshold)
	if err != nil {
		return nil, fmt.Errorf("bitimage: binarize %s image: %w", format, err)
	}
	return out, nil
}

// DecodeBMP decodes a BMP page image specifically, using
// golang.org/x/image/bmp rather than the registry, for callers that know
// their input is BMP and want to skip format sniffing.
func DecodeBMP(r io.Reader) (*BinaryImage, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bitimage: decode bmp: %w", err)
	}
	return FromImage(img, OtsuThreshold(img))
}

// EncodePNG writes the image as a 1-bit-per-pixel-looking (8-bit gray,
// two-tone) PNG.
func (b *BinaryImage) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToImage()); err != nil {
		return fmt.Errorf("bitimage: encode png: %w", err)
	}
	return nil
}

// EncodeBMP writes the image as a paletted 1-bpp BMP via gobmp, which
// (unlike golang.org/x/image/bmp's encoder) emits a true 1-bit-per-pixel
// bitmap for a two-color palette instead of 8 or 24 bits per pixel —
// matching the scanner fax/BMP container these pages originate from.
func (b *BinaryImage) EncodeBMP(w io.Writer) error {
	palette := color.Palette{color.White, color.Black}
	img := image.NewPaletted(image.Rect(0, 0, b.width, b.height), palette)
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			if b.Get(x, y) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	if err := gobmp.Encode(w, img); err != nil {
		return fmt.Errorf("bitimage: encode bmp: %w", err)
	}
	return nil
}

// EncodeWebP writes the image losslessly as WebP, used for archiving
// processed pages and for the debug sink's ConnectivityMap snapshots.
func (b *BinaryImage) EncodeWebP(w io.Writer) error {
	if err := nativewebp.Encode(w, b.ToImage(), nil); err != nil {
		return fmt.Errorf("bitimage: encode webp: %w", err)
	}
	return nil
}

// Thumbnail returns a downscaled copy of img for quick-preview debug
// snapshots, using the same high-quality scaler
// (golang.org/x/image/draw.ApproxBiLinear) the texture pipeline in the
// corpus uses for resampling.
func Thumbnail(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return img
	}

	scale := float64(maxWidth) / float64(width)
	if hs := float64(maxHeight) / float64(height); hs < scale {
		scale = hs
	}
	dstW := int(float64(width) * scale)
	dstH := int(float64(height) * scale)
	if dstW < 1 {
		dstW = 1
	}
	if dstH < 1 {
		dstH = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dstW, dstH))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Over, nil)
	return dst
}
