// Package metadata decodes the two text records embedded in a package
// archive.
//
// The package-info record (.PKGINFO) names the package and declares its
// dependencies:
//
//	pkgname = foo
//	pkgver = 1.0-1
//	depend = glibc>=2.39
//	makedepend = cmake
//	optdepend = python: scripting support
//
// [DecodePackageInfo] reduces every dependency value to a bare name, so the
// example declares the explicit set {glibc, cmake, python}.
//
// The build-info record (.BUILDINFO) lists every package installed in the
// build environment:
//
//	installed = glibc-2.39-1-x86_64
//	installed = bash-5.2.026-2-x86_64
//
// [BuildInfoDecoder] parses each identifier with a [pkgid.Parser]. Neither
// decoder fails: malformed input is reported through the Issues field and
// left out of the result.
package metadata
