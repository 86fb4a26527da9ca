package index

import (
	"errors"
	"fmt"

	"github.com/dominikbraun/graph"

	"github.com/matzehuels/archdeps/pkg/set"
)

// Graph converts the index into a directed graph with an edge K -> V for
// every value V under key K. Cycles are allowed.
func (ix Index) Graph() (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())

	for _, k := range ix.Keys() {
		if err := addVertex(g, k); err != nil {
			return nil, err
		}
		for _, v := range ix[k].Sorted() {
			if err := addVertex(g, v); err != nil {
				return nil, err
			}
			if err := g.AddEdge(k, v); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("edge %s->%s: %w", k, v, err)
			}
		}
	}
	return g, nil
}

func addVertex(g graph.Graph[string, string], v string) error {
	if err := g.AddVertex(v); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return fmt.Errorf("vertex %s: %w", v, err)
	}
	return nil
}

// Closure returns the reachability-closed index: each key lists every
// name reachable from it through one or more edges. A key reaches itself
// only through a cycle.
func (ix Index) Closure() (Index, error) {
	g, err := ix.Graph()
	if err != nil {
		return nil, err
	}

	out := New()
	for _, k := range ix.Keys() {
		reached := set.New()
		out[k] = reached
		for _, v := range ix[k].Sorted() {
			if reached.Has(v) {
				continue
			}
			err := graph.DFS(g, v, func(name string) bool {
				reached.Add(name)
				return false
			})
			if err != nil {
				return nil, fmt.Errorf("walk from %s: %w", v, err)
			}
		}
	}
	return out, nil
}

// Reachable returns the part of the index that can be reached from root,
// including root's own edges. A root that is not a key yields an empty
// index.
func (ix Index) Reachable(root string) (Index, error) {
	out := New()
	if _, ok := ix[root]; !ok {
		return out, nil
	}

	g, err := ix.Graph()
	if err != nil {
		return nil, err
	}

	err = graph.DFS(g, root, func(name string) bool {
		if values, ok := ix[name]; ok {
			out.Put(name, values)
		}
		return false
	})
	if err != nil {
		return nil, fmt.Errorf("walk from %s: %w", root, err)
	}
	return out, nil
}
