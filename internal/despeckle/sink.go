package despeckle

import "despeckle/internal/connmap"

// Sink receives intermediate ConnectivityMap snapshots during a despeckle
// run, keyed by the tags spec.md §6 names: "big_components_unified",
// "voronoi", and, when the second-chance pass triggers, "voronoi_special".
// Implementations are expected to render or log cmap without retaining a
// reference to it, since the engine reuses and mutates the same buffer
// across stages.
type Sink interface {
	Add(tag string, cmap *connmap.ConnectivityMap)
}

// GraphSink is a Sink that additionally accepts the directed
// attach-candidate graph built while §4.7 processes the distance table,
// under the supplemental "attachment_graph" tag. A Sink that does not
// implement GraphSink simply never receives it.
type GraphSink interface {
	Sink
	AddGraph(tag string, edges []TargetSourceConn, components []Component)
}
