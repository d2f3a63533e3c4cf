// Package pipeline wires the despeckle engine into a load -> binarize ->
// despeckle -> save flow over real page-image files, mirroring the
// teacher's internal/pipeline package's load -> process -> save shape
// (internal/pipeline/metrics.go's Otsu thresholding pipeline), generalized
// from 8-bit grayscale thresholding to 1-bit despeckling.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"despeckle/internal/bitimage"
	"despeckle/internal/despeckle"
	"despeckle/internal/dpi"
	"despeckle/internal/logger"
	"despeckle/internal/metrics"
)

// Options configures one page's run through the pipeline.
type Options struct {
	DPI     dpi.DPI
	Level   despeckle.Level
	Sink    despeckle.Sink
	Log     *logger.ZerologAdapter
	Tracker *metrics.Tracker
}

// ProcessFile loads the page image at inputPath, despeckles it, and writes
// the result to outputPath. The output format is chosen from outputPath's
// extension (.png, .bmp, .webp); an input with a .bmp extension is decoded
// as BMP, any other input format is sniffed from content.
func ProcessFile(ctx context.Context, inputPath, outputPath string, opts Options) error {
	img, err := loadImage(ctx, inputPath, opts)
	if err != nil {
		return fmt.Errorf("pipeline: loading %s: %w", inputPath, err)
	}

	despeckleCtx := opts.Tracker.Start(metrics.StageDespeckle)
	out, err := despeckle.Despeckle(ctx, img, opts.DPI, opts.Level, opts.Sink)
	opts.Tracker.End(despeckleCtx)
	if err != nil {
		return fmt.Errorf("pipeline: despeckling %s: %w", inputPath, err)
	}

	if err := saveImage(out, outputPath, opts); err != nil {
		return fmt.Errorf("pipeline: saving %s: %w", outputPath, err)
	}

	if opts.Log != nil {
		opts.Log.Info("pipeline", "page processed", map[string]interface{}{
			"input":  inputPath,
			"output": outputPath,
		})
	}
	return nil
}

// loadImage reads and binarizes the page at path. Binarization (Otsu
// thresholding for non-bilevel sources) happens inside bitimage.Decode/
// DecodeBMP, so it is timed together with decoding under one stage rather
// than split into load-then-binarize sub-stages.
func loadImage(_ context.Context, path string, opts Options) (*bitimage.BinaryImage, error) {
	loadCtx := opts.Tracker.Start(metrics.StageLoad)
	defer opts.Tracker.End(loadCtx)

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		return bitimage.DecodeBMP(f)
	}
	return bitimage.Decode(f)
}

func saveImage(img *bitimage.BinaryImage, path string, opts Options) error {
	saveCtx := opts.Tracker.Start(metrics.StageSave)
	defer opts.Tracker.End(saveCtx)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".bmp":
		return img.EncodeBMP(f)
	case ".webp":
		return img.EncodeWebP(f)
	default:
		return img.EncodePNG(f)
	}
}
