package debugsink

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/goccy/go-graphviz"

	"despeckle/internal/connmap"
	"despeckle/internal/despeckle"
)

// FileSink renders every snapshot to a WebP file (one color per label,
// following spec.md §6's "colorized rendering") under dir, and renders the
// attachment graph to an SVG alongside it via go-graphviz, following
// matzehuels-stacktower/pkg/render/nodelink/dot.go's build-DOT-then-
// graphviz.Render shape, retargeted from a dependency DAG to the despeckle
// attach-candidate graph.
type FileSink struct {
	dir   string
	count int
}

// NewFileSink returns a FileSink writing under dir, creating it if needed.
func NewFileSink(dir string) (*FileSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("debugsink: creating %s: %w", dir, err)
	}
	return &FileSink{dir: dir}, nil
}

// Add renders cmap as a colorized WebP image named "NNN_tag.webp".
func (s *FileSink) Add(tag string, cmap *connmap.ConnectivityMap) {
	img := colorize(cmap)
	path := s.nextPath(tag, "webp")

	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	_ = nativewebp.Encode(f, img, nil)
}

// AddGraph renders the directed attach-candidate graph as an SVG named
// "NNN_tag.svg".
func (s *FileSink) AddGraph(tag string, edges []despeckle.TargetSourceConn, components []despeckle.Component) {
	dot := attachGraphDOT(edges, components)

	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return
	}
	defer g.Close()

	path := s.nextPath(tag, "svg")
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	_ = gv.Render(ctx, g, graphviz.SVG, f)
}

func (s *FileSink) nextPath(tag, ext string) string {
	s.count++
	return filepath.Join(s.dir, fmt.Sprintf("%03d_%s.%s", s.count, tag, ext))
}

// colorize assigns a distinct color to every label (background stays
// white) and renders the unpadded region of cmap as an RGBA image.
func colorize(cmap *connmap.ConnectivityMap) image.Image {
	width, height := cmap.Width(), cmap.Height()
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	palette := make(map[uint32]color.RGBA)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			label := cmap.At(x, y)
			if label == 0 {
				img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
				continue
			}
			c, ok := palette[label]
			if !ok {
				c = labelColor(label)
				palette[label] = c
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

// labelColor derives a stable, visually distinct color from a label via a
// golden-ratio hue rotation, so adjacent labels rarely collide.
func labelColor(label uint32) color.RGBA {
	const goldenAngle = 0.6180339887498949
	hue := float64(label) * goldenAngle
	hue -= float64(int(hue))
	return hsvToRGBA(hue*360, 0.65, 0.95)
}

func hsvToRGBA(h, s, v float64) color.RGBA {
	c := v * s
	x := c * (1 - absFloat(modFloat(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return color.RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

func absFloat(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func modFloat(a, b float64) float64 {
	for a >= b {
		a -= b
	}
	return a
}

// attachGraphDOT renders the directed attach-candidate graph built in
// spec.md §4.7: one node per component (labeled with its pixel count),
// one edge per source->target attachment candidate.
func attachGraphDOT(edges []despeckle.TargetSourceConn, components []despeckle.Component) string {
	dot := "digraph attach {\n"
	dot += "  rankdir=LR;\n"
	dot += "  node [shape=circle, style=filled, fillcolor=white];\n\n"

	seen := make(map[uint32]bool)
	addNode := func(label uint32) string {
		if !seen[label] {
			seen[label] = true
			pixels := uint32(0)
			if int(label) < len(components) {
				pixels = components[label].Pixels()
			}
			dot += fmt.Sprintf("  %q [label=%q];\n", nodeID(label), fmt.Sprintf("%d\\n%d px", label, pixels))
		}
		return nodeID(label)
	}

	for _, e := range edges {
		addNode(e.Target)
		addNode(e.Source)
	}
	dot += "\n"
	for _, e := range edges {
		dot += fmt.Sprintf("  %q -> %q;\n", nodeID(e.Source), nodeID(e.Target))
	}
	dot += "}\n"
	return dot
}

func nodeID(label uint32) string {
	return fmt.Sprintf("c%d", label)
}
