package despeckle

import (
	"math"

	"despeckle/internal/dpi"
)

// Preset is one of the three discrete despeckling levels.
type Preset int

const (
	Cautious Preset = iota
	Normal
	Aggressive
)

// ContinuousLevel is a fractional despeckling strength used by UI sliders,
// e.g. 0.0 (gentlest) through higher values (more aggressive).
type ContinuousLevel float64

// Level selects how aggressively the engine prunes small components. It
// is satisfied by both Preset and ContinuousLevel, giving Despeckle /
// DespeckleInPlace the overload-on-level behavior spec.md §6 describes
// without Go's lack of function overloading getting in the way.
type Level interface {
	parameters(d dpi.DPI) Parameters
}

// Parameters holds the three numeric thresholds every stage of the engine
// is driven by, already scaled for DPI.
type Parameters struct {
	// MinRelativeParentWeight: multiplied by a component's pixel count,
	// gives the minimum size a neighbor must have for this component to
	// be attached to it.
	MinRelativeParentWeight float64

	// PixelsToSqDist: multiplied by a component's pixel count, gives the
	// maximum squared distance to a component it may attach to.
	PixelsToSqDist uint32

	// BigObjectThreshold: minimum width or height, in pixels, that
	// guarantees a component is never removed.
	BigObjectThreshold int
}

func (p Preset) parameters(d dpi.DPI) Parameters {
	factor := d.Factor()
	switch p {
	case Cautious:
		return Parameters{
			MinRelativeParentWeight: 0.125 * factor,
			PixelsToSqDist:          100, // uint32(10^2)
			BigObjectThreshold:      roundInt(7 * factor),
		}
	case Aggressive:
		return Parameters{
			MinRelativeParentWeight: 0.225 * factor,
			PixelsToSqDist:          12, // uint32(3.5^2) = uint32(12.25)
			BigObjectThreshold:      roundInt(17 * factor),
		}
	default: // Normal
		return Parameters{
			MinRelativeParentWeight: 0.175 * factor,
			PixelsToSqDist:          42, // uint32(6.5^2) = uint32(42.25)
			BigObjectThreshold:      roundInt(12 * factor),
		}
	}
}

func (l ContinuousLevel) parameters(d dpi.DPI) Parameters {
	factor := d.Factor()
	level := float64(l)

	return Parameters{
		MinRelativeParentWeight: (0.05*level + 0.075) * factor,
		PixelsToSqDist:          uint32(math.Floor(math.Pow(0.25*level*level-4.25*level+14, 2))),
		BigObjectThreshold:      roundInt((5*level + 2) * factor),
	}
}

// DeriveParameters computes the numeric thresholds for level at the given
// resolution, per spec.md §3.
func DeriveParameters(level Level, d dpi.DPI) Parameters {
	return level.parameters(d)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
