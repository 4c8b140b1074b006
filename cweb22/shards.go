package cweb22

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"sort"

	"github.com/klauspost/compress/gzip"

	"github.com/quay/cweb22/align"
	"github.com/quay/cweb22/catalog"
	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
	"github.com/quay/cweb22/format/html"
	"github.com/quay/cweb22/format/link"
	"github.com/quay/cweb22/format/txt"
	"github.com/quay/cweb22/format/vdom"
	"github.com/quay/cweb22/internal/layout"
	"github.com/quay/cweb22/internal/xio"
	"github.com/quay/cweb22/metrics"
	"github.com/quay/cweb22/record"
	"github.com/quay/cweb22/sparse"
)

// openGzipStream opens a GZIP-compressed format's offset sidecar and shard
// file, and returns a decompressed stream serving exactly the requested
// local indices. The shard file and the gzip reader are both registered on
// scope, so they release whenever scope closes (the gzip reader first, then
// the shard file).
func openGzipStream(ctx context.Context, root fs.FS, scope *xio.Scope, f corpus.Format, fid corpusid.FileId, indices []int) (io.Reader, error) {
	shardPath := layout.ShardPath(f, fid)
	offPath := layout.OffsetPath(f, fid)

	offFile, err := root.Open(offPath)
	if err != nil {
		return nil, fmt.Errorf("cweb22: opening offset sidecar %s: %w", offPath, err)
	}
	offsets, err := catalog.ReadOffsets(offFile, shardPath)
	offFile.Close()
	if err != nil {
		return nil, fmt.Errorf("cweb22: reading offset sidecar %s: %w", offPath, err)
	}

	shardFile, err := root.Open(shardPath)
	if err != nil {
		return nil, fmt.Errorf("cweb22: opening shard %s: %w", shardPath, err)
	}
	src, ok := shardFile.(sparse.Source)
	if !ok {
		shardFile.Close()
		return nil, fmt.Errorf("cweb22: shard %s does not support seeking", shardPath)
	}
	scope.Defer(shardFile)
	metrics.ShardsOpened.WithLabelValues(string(f.ID)).Inc()

	sr := sparse.PlanAndOpen(ctx, src, offsets, indices)
	gzr, err := gzip.NewReader(sr)
	if err != nil {
		return nil, fmt.Errorf("cweb22: opening gzip stream for %s: %w", shardPath, err)
	}
	scope.Defer(gzr)
	return gzr, nil
}

// openVdomRecords opens a VDOM shard's ZIP archive and returns a sequence
// over exactly the requested members, in ascending local-index order. VDOM
// shards carry no offset sidecar and aren't routed through package sparse;
// the ZIP central directory already gives random access by member name.
func openVdomRecords(root fs.FS, scope *xio.Scope, f corpus.Format, fid corpusid.FileId, indices []int) (record.Iter[record.VdomRecord], error) {
	shardPath := layout.ShardPath(f, fid)
	shardFile, err := root.Open(shardPath)
	if err != nil {
		return nil, fmt.Errorf("cweb22: opening shard %s: %w", shardPath, err)
	}
	scope.Defer(shardFile)

	fi, err := shardFile.Stat()
	if err != nil {
		return nil, fmt.Errorf("cweb22: stat shard %s: %w", shardPath, err)
	}
	ra, ok := shardFile.(io.ReaderAt)
	if !ok {
		return nil, fmt.Errorf("cweb22: shard %s does not support random access reads", shardPath)
	}
	zr, err := zip.NewReader(ra, fi.Size())
	if err != nil {
		return nil, fmt.Errorf("cweb22: opening zip archive %s: %w", shardPath, err)
	}
	metrics.ShardsOpened.WithLabelValues(string(f.ID)).Inc()

	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	return func(yield func(record.VdomRecord, error) bool) {
		for _, i := range sorted {
			rec, err := vdom.At(zr, fid, i)
			if err != nil {
				yield(record.VdomRecord{}, fmt.Errorf("cweb22: %s: %w", shardPath, err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}, nil
}

// newFormatInputs opens every format required by view, under that format's
// <format-id>/ directory of root, for the local indices of one shard,
// registering each opened handle on scope, and
// returns the align.Inputs ready to hand to align.Combine.
func newFormatInputs(ctx context.Context, root fs.FS, scope *xio.Scope, view corpus.SubsetID, fid corpusid.FileId, indices []int) (align.Inputs, error) {
	var in align.Inputs
	for _, fmtID := range corpus.RequiredFormatsFor(view) {
		f, _ := corpus.FormatByID(fmtID)
		// layout paths are relative to the format's own <format-id>/
		// directory under the dataset root.
		fsys, err := fs.Sub(root, string(fmtID))
		if err != nil {
			return align.Inputs{}, fmt.Errorf("cweb22: opening %s tree: %w", fmtID, err)
		}
		switch fmtID {
		case corpus.TXT:
			r, err := openGzipStream(ctx, fsys, scope, f, fid, indices)
			if err != nil {
				return align.Inputs{}, err
			}
			in.Txt = txt.New(r)
		case corpus.HTML:
			r, err := openGzipStream(ctx, fsys, scope, f, fid, indices)
			if err != nil {
				return align.Inputs{}, err
			}
			in.Html = html.New(r)
		case corpus.INLINK:
			r, err := openGzipStream(ctx, fsys, scope, f, fid, indices)
			if err != nil {
				return align.Inputs{}, err
			}
			in.Inlink = link.New(r, link.Inlink)
		case corpus.OUTLINK:
			r, err := openGzipStream(ctx, fsys, scope, f, fid, indices)
			if err != nil {
				return align.Inputs{}, err
			}
			in.Outlink = link.New(r, link.Outlink)
		case corpus.VDOM:
			vi, err := openVdomRecords(fsys, scope, f, fid, indices)
			if err != nil {
				return align.Inputs{}, err
			}
			in.Vdom = vi
		}
	}
	return in, nil
}
