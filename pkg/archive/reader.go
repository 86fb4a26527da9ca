package archive

import (
	"archive/tar"
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz"

	"github.com/matzehuels/archdeps/pkg/errors"
)

// Names of the metadata entries inside a package archive.
const (
	PkgInfoEntry   = ".PKGINFO"
	BuildInfoEntry = ".BUILDINFO"
)

// maxRecordSize bounds how much of a metadata entry is read.
const maxRecordSize = 16 << 20

var (
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicXz   = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
	magicGzip = []byte{0x1f, 0x8b}
)

// Records holds the decoded text of the two metadata entries.
type Records struct {
	PkgInfo   string `json:"pkginfo"`
	BuildInfo string `json:"buildinfo"`

	// HasPkgInfo and HasBuildInfo distinguish an absent entry from an
	// empty one.
	HasPkgInfo   bool `json:"has_pkginfo"`
	HasBuildInfo bool `json:"has_buildinfo"`

	// Issues are the non-fatal problems met while extracting:
	// MISSING_RECORD per absent entry, INVALID_ARCHIVE for a corrupt file.
	Issues []error `json:"-"`
}

// Corrupt reports whether extraction stopped on an unreadable archive.
func (r *Records) Corrupt() bool {
	for _, err := range r.Issues {
		if errors.Is(err, errors.ErrCodeInvalidArchive) {
			return true
		}
	}
	return false
}

// Missing returns a MISSING_RECORD issue for each of entries that the
// archive does not contain.
func (r *Records) Missing(path string, entries ...string) []error {
	var out []error
	for _, e := range entries {
		if (e == PkgInfoEntry && !r.HasPkgInfo) || (e == BuildInfoEntry && !r.HasBuildInfo) {
			out = append(out, errors.New(errors.ErrCodeMissingRecord, "%s: no %s entry", path, e))
		}
	}
	return out
}

// missingIssues rebuilds the MISSING_RECORD issues from the presence flags.
func (r *Records) missingIssues(path string) {
	r.Issues = append(r.Issues, r.Missing(path, PkgInfoEntry, BuildInfoEntry)...)
}

// RecordReader extracts metadata records from one archive.
type RecordReader interface {
	Read(ctx context.Context, path string) (Records, error)
}

// Reader extracts metadata records straight from archive files.
// It holds no state and is safe for concurrent use.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read opens the archive at path and extracts .PKGINFO and .BUILDINFO.
//
// The only error returned is INVALID_PATH (path missing or not a regular
// file) or the context's error. Everything else is reported on
// [Records.Issues]. Reading stops as soon as both entries are found.
func (r *Reader) Read(ctx context.Context, path string) (Records, error) {
	if err := errors.ValidateArchivePath(path); err != nil {
		return Records{}, err
	}
	if err := ctx.Err(); err != nil {
		return Records{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return Records{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	var rec Records
	if err := extract(ctx, f, &rec); err != nil {
		if ctx.Err() != nil {
			return Records{}, ctx.Err()
		}
		rec.Issues = append(rec.Issues, errors.Wrap(errors.ErrCodeInvalidArchive, err, "%s", path))
	}
	rec.missingIssues(path)
	return rec, nil
}

func extract(ctx context.Context, r io.Reader, rec *Records) error {
	stream, closeFn, err := decompress(r)
	if err != nil {
		return err
	}
	defer closeFn()

	tr := tar.NewReader(stream)
	entries := 0
	for !(rec.HasPkgInfo && rec.HasBuildInfo) {
		if err := ctx.Err(); err != nil {
			return err
		}
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		entries++

		var dst *string
		switch strings.TrimPrefix(hdr.Name, "./") {
		case PkgInfoEntry:
			dst, rec.HasPkgInfo = &rec.PkgInfo, true
		case BuildInfoEntry:
			dst, rec.HasBuildInfo = &rec.BuildInfo, true
		default:
			continue
		}
		data, err := io.ReadAll(io.LimitReader(tr, maxRecordSize))
		if err != nil {
			return err
		}
		*dst = string(data)
	}
	if entries == 0 {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// decompress sniffs the magic bytes of r and returns a reader over the
// uncompressed tar stream. Unrecognized input is passed through as a plain
// tar.
func decompress(r io.Reader) (io.Reader, func(), error) {
	br := bufio.NewReader(r)
	magic, _ := br.Peek(len(magicXz))
	nop := func() {}

	switch {
	case bytes.HasPrefix(magic, magicZstd):
		d, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, nop, err
		}
		return d, d.Close, nil
	case bytes.HasPrefix(magic, magicXz):
		x, err := xz.NewReader(br)
		if err != nil {
			return nil, nop, err
		}
		return x, nop, nil
	case bytes.HasPrefix(magic, magicGzip):
		g, err := gzip.NewReader(br)
		if err != nil {
			return nil, nop, err
		}
		return g, func() { g.Close() }, nil
	default:
		return br, nop, nil
	}
}
