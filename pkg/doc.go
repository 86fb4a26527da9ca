// Package pkg provides the libraries behind archdeps, a tool that reports
// dependency facts about a mirror of Arch Linux package archives.
//
// # Overview
//
// Every package archive carries two metadata records: .PKGINFO, which lists
// what the packager declared (depend, makedepend, optdepend), and
// .BUILDINFO, which lists every package that was installed in the build
// environment. archdeps reads both, compares them and writes date-stamped
// JSON snapshots.
//
// # Architecture
//
// The typical data flow:
//
//	*.pkg.tar.zst / *.pkg.tar.xz
//	         ↓
//	    [archive] package (discover, decompress, extract records, cache)
//	         ↓
//	    [metadata] package (decode PKGINFO and BUILDINFO)
//	         ↓                 ↘
//	    [transitive] package    [index] package (reverse indexes, expansion)
//	         ↓                 ↙        ↘
//	    [snapshot] package (date-stamped JSON)   [render] package (Graphviz)
//
// [report] drives the whole flow for each report mode and is what the
// command-line interface calls.
//
// # Main Packages
//
// ## Domain
//
// [pkgid] - Package identifiers (name, version, release, architecture) and
// the parsers that split compound strings into them: a strict grammar, a
// loose right-split and a sibling lookup against the mirror's file names.
//
// [metadata] - Line-oriented decoders for .PKGINFO and .BUILDINFO.
//
// [transitive] - The set of packages installed at build time but never
// declared, and its counts.
//
// [index] - Reverse dependency indexes at three key granularities, one-hop
// expansion, full closure and cycle detection.
//
// ## Infrastructure
//
// [archive] - Archive discovery, zstd/xz/gzip decompression, record
// extraction and a cached reader.
//
// [cache] - File and null caches with xxhash keys.
//
// [snapshot] - Date-stamped file names and atomic JSON writes.
//
// [render] - DOT generation and Graphviz rendering to SVG and PNG.
//
// [errors] - Coded errors shared across the packages.
//
// [observability] - Hooks for scan progress and cache events.
//
// # Quick Start
//
//	runner := report.NewRunner(nil, nil)
//	sum, err := runner.TransitiveCount(ctx, report.Options{
//	    Input:  "/srv/mirror/core/os/x86_64",
//	    Output: "snapshots",
//	})
//
// [archive]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/archive
// [cache]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/errors
// [index]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/index
// [metadata]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/metadata
// [observability]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/observability
// [pkgid]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/pkgid
// [render]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/render
// [report]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/report
// [snapshot]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/snapshot
// [transitive]: https://pkg.go.dev/github.com/matzehuels/archdeps/pkg/transitive
package pkg
