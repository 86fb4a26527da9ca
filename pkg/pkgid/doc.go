// Package pkgid decodes compound package identifiers.
//
// A compound identifier is the dash-joined string
// name-version-build-architecture, for example "bash-5.2.026-2-x86_64".
// Names may contain hyphens, which makes a positional split ambiguous, so
// [Parse] matches an explicit grammar instead:
//
//	name    [a-z0-9_-]+
//	version [0-9A-Za-z.+:_]+
//	build   [0-9]+
//	arch    any | x86_64   (optional, defaults to x86_64)
//
// [Loose] keeps the naive right split for callers that cross-reference
// sibling archives ([Siblings]) and must accept identifiers the grammar
// rejects.
//
// All parsers implement [Parser] and can be combined with [Chain]:
//
//	p := pkgid.Chain(pkgid.Grammar, pkgid.NewSiblings(paths))
//	id, err := p.Parse("foo-bar-1.0-1")
package pkgid
