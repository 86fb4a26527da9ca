package index

// Edge is a single key -> value entry of an index.
type Edge struct {
	From, To string
}

// BackEdges returns the edges that close a cycle when the index is walked
// depth-first from its keys in sorted order. Removing them leaves an
// acyclic index.
func (ix Index) BackEdges() []Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int)
	var back []Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, next := range ix.Get(node).Sorted() {
			switch color[next] {
			case white:
				dfs(next)
			case gray:
				back = append(back, Edge{From: node, To: next})
			}
		}
		color[node] = black
	}

	for _, k := range ix.Keys() {
		if color[k] == white {
			dfs(k)
		}
	}
	return back
}
