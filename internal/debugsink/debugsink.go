// Package debugsink provides optional observers for intermediate despeckle
// state: a logging-only sink for headless runs and tests, and a file sink
// that renders snapshots and the attachment graph to disk. Both satisfy
// despeckle.Sink (and FileSink additionally satisfies despeckle.GraphSink),
// following the teacher's toggleable debug.Manager pattern
// (debug/debug_image.go's LogImageLoad/LogImageProcessing reports) but
// retargeted from image-load diagnostics to connectivity-map snapshots.
package debugsink

import (
	"despeckle/internal/connmap"
	"despeckle/internal/despeckle"
	"despeckle/internal/logger"
)

// LoggingSink logs a one-line summary of every snapshot instead of
// rendering it, for tests and headless batch runs where no artifact
// directory is configured.
type LoggingSink struct {
	log *logger.ZerologAdapter
}

// NewLoggingSink returns a LoggingSink that writes through log.
func NewLoggingSink(log *logger.ZerologAdapter) *LoggingSink {
	return &LoggingSink{log: log}
}

// Add logs the snapshot's max label, the number of distinct labels present
// in the unpadded area, and the map dimensions.
func (s *LoggingSink) Add(tag string, cmap *connmap.ConnectivityMap) {
	histogram := make(map[uint32]int)
	width, height := cmap.Width(), cmap.Height()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			histogram[cmap.At(x, y)]++
		}
	}

	s.log.Info("debugsink", "connectivity map snapshot", map[string]interface{}{
		"tag":         tag,
		"max_label":   cmap.MaxLabel(),
		"distinct":    len(histogram),
		"width":       width,
		"height":      height,
	})
}

// AddGraph logs the size of the attachment graph rather than rendering it.
func (s *LoggingSink) AddGraph(tag string, edges []despeckle.TargetSourceConn, components []despeckle.Component) {
	s.log.Info("debugsink", "attachment graph snapshot", map[string]interface{}{
		"tag":        tag,
		"edges":      len(edges),
		"components": len(components),
	})
}
