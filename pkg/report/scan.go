package report

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/archdeps/pkg/archive"
	"github.com/matzehuels/archdeps/pkg/errors"
	"github.com/matzehuels/archdeps/pkg/metadata"
	"github.com/matzehuels/archdeps/pkg/observability"
	"github.com/matzehuels/archdeps/pkg/pkgid"
	"github.com/matzehuels/archdeps/pkg/set"
)

// Record is everything known about one archive after decoding.
type Record struct {
	Path  string
	File  pkgid.ID // identifier from the archive file name; zero if unparseable
	Info  metadata.PackageInfo
	Build metadata.BuildInfo

	// Issues collects extraction and decoding problems in the order they
	// were found.
	Issues []error
}

// Name is the key results are stored under: the .PKGINFO pkgname, else the
// name from the archive file name. Empty means the package cannot be keyed.
func (r *Record) Name() string {
	if r.Info.Name != "" {
		return r.Info.Name
	}
	return r.File.Name
}

// ID identifies the package itself: the archive file name when it parses,
// else the name, version and architecture from .PKGINFO.
func (r *Record) ID() pkgid.ID {
	if !r.File.IsZero() {
		return r.File
	}
	id := pkgid.ID{Name: r.Info.Name, Version: r.Info.Version, Arch: r.Info.Arch}
	if i := strings.LastIndex(id.Version, "-"); i >= 0 {
		id.Version, id.Build = r.Info.Version[:i], r.Info.Version[i+1:]
	}
	if !pkgid.KnownArch(id.Arch) {
		id.Arch = pkgid.DefaultArch
	}
	return id
}

// Explicit returns the declared dependencies.
func (r *Record) Explicit() set.Set { return r.Info.Explicit() }

// Installed returns the names installed at build time.
func (r *Record) Installed() set.Set { return r.Build.Names() }

// uses names the metadata records a report reads. A nil Parser means the
// .BUILDINFO record is not decoded.
type uses struct {
	Parser  pkgid.Parser
	Entries []string // archive.PkgInfoEntry, archive.BuildInfoEntry
}

var (
	usesPkgInfo   = uses{Entries: []string{archive.PkgInfoEntry}}
	usesBoth      = uses{Parser: pkgid.Grammar, Entries: []string{archive.PkgInfoEntry, archive.BuildInfoEntry}}
	usesInstalled = uses{Parser: pkgid.Grammar, Entries: []string{archive.BuildInfoEntry}}
)

// decode builds a Record. Only the records in u count as missing when the
// archive lacks them.
func decode(path string, recs archive.Records, u uses) Record {
	rec := Record{
		Path: path,
		Info: metadata.DecodePackageInfo(recs.PkgInfo),
	}
	if u.Parser != nil {
		rec.Build = metadata.BuildInfoDecoder{Parser: u.Parser}.Decode(recs.BuildInfo)
	}
	for _, err := range recs.Issues {
		if !errors.Is(err, errors.ErrCodeMissingRecord) {
			rec.Issues = append(rec.Issues, err)
		}
	}
	rec.Issues = append(rec.Issues, recs.Missing(path, u.Entries...)...)

	id, err := pkgid.FromFileName(path)
	if err != nil {
		rec.Issues = append(rec.Issues, err)
	} else {
		rec.File = id
	}
	rec.Issues = append(rec.Issues, rec.Info.Issues...)
	rec.Issues = append(rec.Issues, rec.Build.Issues...)
	return rec
}

// scan reads and decodes every archive in paths.
//
// Archives are read concurrently by up to opts.Workers goroutines. Each
// goroutine only writes its own slot of the result, so the returned slice
// is in path order regardless of scheduling. The first fatal error (an
// unusable path or cancellation) stops the scan.
func (r *Runner) scan(ctx context.Context, rn *run, paths []string, u uses) ([]Record, error) {
	hooks := observability.Scan()
	start := time.Now()
	hooks.OnScanStart(ctx, string(rn.mode), len(paths))
	rn.logger.Info("scanning archives", "count", len(paths), "workers", rn.opts.Workers)

	records := make([]Record, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rn.opts.Workers)

	for i, path := range paths {
		g.Go(func() error {
			t := time.Now()
			recs, err := r.Reader.Read(gctx, path)
			if err != nil {
				hooks.OnArchiveComplete(gctx, path, time.Since(t), 0, err)
				return err
			}
			records[i] = decode(path, recs, u)
			hooks.OnArchiveComplete(gctx, path, time.Since(t), len(records[i].Issues), nil)
			return nil
		})
	}

	err := g.Wait()
	hooks.OnScanComplete(ctx, string(rn.mode), len(paths), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	rn.sum.Archives = len(paths)
	for i := range records {
		rn.report(&records[i])
	}
	rn.logger.Info("scanned archives", "count", len(paths), "duration", time.Since(start))
	return records, nil
}

// report logs and counts the issues of one record.
func (rn *run) report(rec *Record) {
	for _, err := range rec.Issues {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeInternal
		}
		rn.sum.Issues[code]++
		switch code {
		case errors.ErrCodeInvalidArchive, errors.ErrCodeUnparseableIdentifier, errors.ErrCodeInvalidIdentifier:
			rn.logger.Warn(errors.UserMessage(err), "archive", rec.Path, "code", code)
		default:
			rn.logger.Debug(errors.UserMessage(err), "archive", rec.Path, "code", code)
		}
	}
}

// keyed returns the records that can be stored under a name, logging and
// counting the rest.
func (rn *run) keyed(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if rec.Name() == "" {
			rn.logger.Warn("skipping package without a name", "archive", rec.Path)
			rn.sum.Skipped++
			continue
		}
		out = append(out, rec)
	}
	rn.sum.Packages = len(out)
	return out
}

// discover lists the archives of the run's input directory.
func (rn *run) discover() ([]string, error) {
	paths, err := archive.Discover(rn.opts.Input, rn.opts.Extensions)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		rn.logger.Warn("no archives found", "dir", rn.opts.Input)
	}
	return paths, nil
}
