// Package archive locates package archives on disk and extracts their
// metadata records.
//
// A package archive is a tarball, usually zstd or xz compressed, that
// carries two text records next to the package files:
//
//   - .PKGINFO: the package's own name, version and declared dependencies
//   - .BUILDINFO: every package installed in the build environment
//
// [Discover] lists archives in a directory and [Reader] pulls the two
// records out of one archive. The compression format is detected from the
// leading magic bytes, not the file extension.
//
// Extraction is best-effort. Only an unusable path is returned as an error;
// a missing record or a corrupt archive is reported as an issue on
// [Records] and leaves the corresponding text empty, so a single broken
// archive never aborts a scan of a whole mirror.
//
// [CachedReader] wraps a [Reader] with a [cache.Cache] so unchanged
// archives are not decompressed again on the next run.
package archive
