package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/archdeps/pkg/errors"
	"github.com/matzehuels/archdeps/pkg/index"
	"github.com/matzehuels/archdeps/pkg/set"
)

// Output formats.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Formats lists the supported output formats.
var Formats = []string{FormatDOT, FormatSVG, FormatPNG}

// ValidateFormats rejects unknown format names.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(Formats, f) {
			return errors.New(errors.ErrCodeInvalidConfig, "unknown format %q (want one of %s)", f, strings.Join(Formats, ", "))
		}
	}
	return nil
}

// Options configures DOT generation.
type Options struct {
	// Title is drawn above the graph when set.
	Title string

	// Highlight names a package drawn with a coloured fill, typically the
	// root passed to Reachable.
	Highlight string

	// Cycles are drawn dashed in red. See index.Index.BackEdges.
	Cycles []index.Edge
}

// ToDOT converts a reverse index to Graphviz DOT. Every value V under a key
// K becomes the edge V -> K ("V depends on K"). Nodes and edges are emitted
// in sorted order so equal indexes give byte-identical output.
func ToDOT(ix index.Index, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}
	buf.WriteString("\n")

	nodes := set.New()
	for k, deps := range ix {
		nodes.Add(k)
		nodes.AddAll(deps)
	}
	for _, n := range nodes.Sorted() {
		if n == opts.Highlight {
			fmt.Fprintf(&buf, "  %q [fillcolor=\"#ffd966\"];\n", n)
			continue
		}
		fmt.Fprintf(&buf, "  %q;\n", n)
	}

	buf.WriteString("\n")
	cyclic := make(map[index.Edge]bool, len(opts.Cycles))
	for _, e := range opts.Cycles {
		cyclic[e] = true
	}
	for _, k := range ix.Keys() {
		for _, v := range ix.Get(k).Sorted() {
			if cyclic[index.Edge{From: k, To: v}] {
				fmt.Fprintf(&buf, "  %q -> %q [style=dashed, color=\"#c0392b\"];\n", v, k)
				continue
			}
			fmt.Fprintf(&buf, "  %q -> %q;\n", v, k)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// Render lays out a DOT graph with Graphviz and encodes it as format
// (FormatSVG or FormatPNG). FormatDOT returns the input unchanged.
func Render(ctx context.Context, dot string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, ValidateFormats([]string{format})
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-based svg tag with a plain
// viewBox so browsers scale the drawing.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
