// Package render draws dependency indexes as node-link diagrams.
//
// [ToDOT] converts an [index.Index] into Graphviz DOT text with one edge per
// dependency, pointing from the dependent to what it depends on. [Render]
// lays the DOT out with the embedded Graphviz from
// [github.com/goccy/go-graphviz] and produces SVG or PNG, so no external
// tools are needed.
//
//	dot := render.ToDOT(ix, render.Options{Highlight: "glibc"})
//	svg, err := render.Render(ctx, dot, render.FormatSVG)
//
// Large mirrors produce very large graphs. Restrict the index first with
// [index.Index.Reachable] to draw the neighbourhood of one package.
package render
