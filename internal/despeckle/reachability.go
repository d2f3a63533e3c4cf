package despeckle

import "sort"

// TargetSourceConn is a directed edge: Source may be attached to Target.
// Edges are sorted by (Target, Source) so every target's edges occupy a
// contiguous slice, per spec.md §4.7.
type TargetSourceConn struct {
	Target, Source uint32
}

// buildAttachmentGraph clears every component's anchor tags, drains
// distances into a sorted directed edge list via canBeAttachedTo evaluated
// in both directions, and returns that edge list alongside an index array
// idx such that edges with target == L occupy idx[L]..idx[L+1).
func buildAttachmentGraph(components []Component, distances map[Connection]uint32, maxLabel uint32, p Parameters) ([]TargetSourceConn, []int) {
	for i := range components {
		components[i].ClearTags()
	}

	edges := make([]TargetSourceConn, 0, 2*len(distances))
	for conn, sqdist := range distances {
		comp1, comp2 := &components[conn.Label1], &components[conn.Label2]
		if canBeAttachedTo(comp1, comp2, sqdist, p) {
			edges = append(edges, TargetSourceConn{Target: conn.Label2, Source: conn.Label1})
		}
		if canBeAttachedTo(comp2, comp1, sqdist, p) {
			edges = append(edges, TargetSourceConn{Target: conn.Label1, Source: conn.Label2})
		}
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Target != edges[j].Target {
			return edges[i].Target < edges[j].Target
		}
		return edges[i].Source < edges[j].Source
	})

	idx := make([]int, maxLabel+2)
	pos := 0
	for label := uint32(0); label <= maxLabel; label++ {
		idx[label] = pos
		for pos < len(edges) && edges[pos].Target == label {
			pos++
		}
	}
	idx[maxLabel+1] = len(edges)

	return edges, idx
}

// reachabilitySweep runs the FIFO BFS of spec.md §4.8: starting from
// unifiedBig, it marks every component reachable via the attachment graph
// built by buildAttachmentGraph as ANCHORED_TO_BIG, i.e. surviving.
func reachabilitySweep(components []Component, edges []TargetSourceConn, idx []int, unifiedBig uint32) {
	queue := []uint32{unifiedBig}

	for len(queue) > 0 {
		label := queue[0]
		queue = queue[1:]

		comp := &components[label]
		if comp.AnchoredToBig() {
			continue
		}
		comp.SetAnchoredToBig()

		for i := idx[label]; i < idx[label+1]; i++ {
			queue = append(queue, edges[i].Source)
		}
	}
}
