// Package despeckle removes speckle noise from a binary page image while
// preserving small marks close to larger ones. It implements connected
// component census, big-component unification, a weighted-Voronoi
// partition, inter-component distance measurement, anchor tagging, a
// second-chance recomputation for components whose path to a big neighbor
// was blocked, and a reachability sweep that decides what survives.
package despeckle

import (
	"context"

	"despeckle/internal/bitimage"
	"despeckle/internal/connmap"
	"despeckle/internal/dpi"
	"despeckle/internal/status"
)

// Option configures a Despeckle/DespeckleInPlace call beyond the mandatory
// src/dpi/level/sink arguments.
type Option func(*options)

type options struct {
	trigger TriggerPolicy
}

// WithTriggerPolicy overrides the default second-chance trigger policy
// (TriggerLastComponent). See TriggerPolicy for the tradeoff.
func WithTriggerPolicy(p TriggerPolicy) Option {
	return func(o *options) { o.trigger = p }
}

func resolveOptions(opts []Option) options {
	o := options{trigger: TriggerLastComponent}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Despeckle returns a despeckled copy of src, leaving src unchanged. ctx is
// polled at the ten cancellation checkpoints spec.md §5 specifies; sink,
// if non-nil, receives the intermediate ConnectivityMap snapshots spec.md
// §6 describes. level is either a Preset or a ContinuousLevel.
func Despeckle(ctx context.Context, src *bitimage.BinaryImage, d dpi.DPI, level Level, sink Sink, opts ...Option) (*bitimage.BinaryImage, error) {
	if err := bitimage.ValidateForOperation(src, "despeckle.Despeckle"); err != nil {
		return nil, err
	}
	out := src.Clone()
	if err := despeckleInPlace(status.New(ctx), out, d, level, sink, resolveOptions(opts)); err != nil {
		return nil, err
	}
	return out, nil
}

// DespeckleInPlace despeckles img in place. On cancellation, img may be
// left mutated through the most recently completed checkpoint; callers
// that need atomicity should use Despeckle instead.
func DespeckleInPlace(ctx context.Context, img *bitimage.BinaryImage, d dpi.DPI, level Level, sink Sink, opts ...Option) error {
	if err := bitimage.ValidateForOperation(img, "despeckle.DespeckleInPlace"); err != nil {
		return err
	}
	return despeckleInPlace(status.New(ctx), img, d, level, sink, resolveOptions(opts))
}

func despeckleInPlace(tok status.Token, img *bitimage.BinaryImage, d dpi.DPI, level Level, sink Sink, opts options) error {
	params := DeriveParameters(level, d)

	cmap, err := connmap.Label(img)
	if err != nil {
		return err
	}
	if err := tok.Check(); err != nil { // checkpoint 1: after building the ConnectivityMap
		return err
	}

	if cmap.MaxLabel() == 0 {
		// Empty/white image: return unchanged, not an error (spec.md §7).
		return nil
	}

	components, boxes := census(cmap)
	if err := tok.Check(); err != nil { // checkpoint 2: after the per-pixel census
		return err
	}

	components, unifiedBig, maxLabel := unifyBigComponents(cmap, components, boxes, params.BigObjectThreshold)
	if err := tok.Check(); err != nil { // checkpoint 3: after compaction and pixel remap
		return err
	}
	if sink != nil {
		sink.Add("big_components_unified", cmap)
	}

	dist := make([]Distance, len(cmap.PaddedData()))
	voronoi(cmap, dist)
	if err := tok.Check(); err != nil { // checkpoint 4: after the primary Voronoi pass
		return err
	}
	if sink != nil {
		sink.Add("voronoi", cmap)
	}

	distances := voronoiDistances(cmap, dist, nil)
	if err := tok.Check(); err != nil { // checkpoint 5: after voronoiDistances (primary)
		return err
	}

	tagComponents(components, distances, unifiedBig, params)

	if needsSecondChance(components, opts.trigger) {
		if err := tok.Check(); err != nil { // checkpoint 6: before re-seeding for the second pass
			return err
		}

		freezeOrOpen(cmap, dist, components)
		voronoiSpecial(cmap, dist)
		if err := tok.Check(); err != nil { // checkpoint 7: after the second Voronoi pass
			return err
		}
		if sink != nil {
			sink.Add("voronoi_special", cmap)
		}

		distances = voronoiDistances(cmap, dist, distances)
		if err := tok.Check(); err != nil { // checkpoint 8: after the second voronoiDistances
			return err
		}
	}

	edges, idx := buildAttachmentGraph(components, distances, maxLabel, params)
	if err := tok.Check(); err != nil { // checkpoint 9: after sorting the directed edges
		return err
	}
	if gs, ok := sink.(GraphSink); ok {
		gs.AddGraph("attachment_graph", edges, components)
	}

	reachabilitySweep(components, edges, idx, unifiedBig)

	if err := tok.Check(); err != nil { // checkpoint 10: before the final image mask-out loop
		return err
	}

	finalize(img, cmap, components)
	return nil
}

// finalize clears every foreground bit whose component did not survive the
// reachability sweep, per spec.md §4.9.
func finalize(img *bitimage.BinaryImage, cmap *connmap.ConnectivityMap, components []Component) {
	width, height := img.Width(), img.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			label := cmap.At(x, y)
			if label != 0 && !components[label].AnchoredToBig() {
				img.Clear(x, y)
			}
		}
	}
}
