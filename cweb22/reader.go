package cweb22

import (
	"context"
	"fmt"
	"io/fs"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/quay/cweb22/align"
	"github.com/quay/cweb22/catalog"
	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
	"github.com/quay/cweb22/internal/xio"
	"github.com/quay/cweb22/plan"
	"github.com/quay/cweb22/record"
)

var tracer = otel.Tracer("github.com/quay/cweb22")

// Reader is a handle onto one on-disk ClueWeb22 dataset copy, serving one
// subset view of it. Reader values are immutable after Open/SubsetView:
// the catalog and version are read once and never refreshed.
type Reader struct {
	root    fs.FS
	onDisk  corpus.SubsetID
	view    corpus.SubsetID
	lang    *corpusid.Language
	version corpus.Version
	catalog *catalog.Catalog
}

// Open reads the version marker at the root of a dataset copy and builds a
// Reader serving opts.View (or the on-disk subset itself, if opts.View is
// zero).
func Open(ctx context.Context, root fs.FS, opts Options) (*Reader, error) {
	version, err := corpus.ReadVersion(root)
	if err != nil {
		return nil, fmt.Errorf("cweb22: opening dataset: %w", err)
	}
	view := opts.View
	if view == "" {
		view = version.Subset
	}
	if _, ok := corpus.SubsetByID(view); !ok {
		return nil, fmt.Errorf("cweb22: unknown subset view %q", view)
	}
	if view != version.Subset && !corpus.Extends(version.Subset, view) {
		return nil, fmt.Errorf("cweb22: on-disk subset %q does not extend requested view %q", version.Subset, view)
	}

	cat, err := catalog.SubsetConstrained(root, version.Subset, view, opts.Language)
	if err != nil {
		return nil, fmt.Errorf("cweb22: loading catalog: %w", err)
	}
	return &Reader{
		root:    root,
		onDisk:  version.Subset,
		view:    view,
		lang:    opts.Language,
		version: version,
		catalog: cat,
	}, nil
}

// Count returns the subset-constrained total record count.
func (r *Reader) Count() int {
	return r.catalog.Total()
}

// Iterate returns a lazy sequence of every document in catalog order.
func (r *Reader) Iterate(ctx context.Context) record.Iter[align.Doc] {
	return r.Slice(ctx, 0, r.Count(), 1)
}

// Slice returns a lazy sequence of the documents selected by the
// Python-style (start, stop, step) slice over the global document index.
// Shards whose range doesn't intersect the request are never opened.
func (r *Reader) Slice(ctx context.Context, start, stop, step int) record.Iter[align.Doc] {
	ctx, span := tracer.Start(ctx, "Slice")
	defer span.End()
	span.SetAttributes(
		attribute.Int("cweb22.start", start),
		attribute.Int("cweb22.stop", stop),
		attribute.Int("cweb22.step", step),
	)

	plans, err := plan.GlobalSlice(r.catalog.Entries, start, stop, step)
	if err != nil {
		return errSeq(err)
	}
	return r.runPlans(ctx, plans)
}

// Get returns the single document identified by id.
func (r *Reader) Get(ctx context.Context, id corpusid.DocId) (align.Doc, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()

	for doc, err := range r.GetMany(ctx, []corpusid.DocId{id}) {
		return doc, err
	}
	return align.Doc{}, fmt.Errorf("cweb22: %s: %w", id, errNoSuchDocument)
}

// GetMany returns a lazy sequence of exactly the requested documents. The
// order follows the grouping of input identifiers by shard, in first-seen
// shard order; within a shard, documents come out in ascending local-index
// order.
func (r *Reader) GetMany(ctx context.Context, ids []corpusid.DocId) record.Iter[align.Doc] {
	ctx, span := tracer.Start(ctx, "GetMany")
	defer span.End()
	span.SetAttributes(attribute.Int("cweb22.requested", len(ids)))

	plans, err := plan.IdentifierSet(ids, r.lang)
	if err != nil {
		return errSeq(err)
	}
	return r.runPlans(ctx, plans)
}

// SubsetView returns a Reader serving a narrower (or equal) subset view of
// the same on-disk copy, re-deriving the subset-constrained catalog for
// view rather than mutating the receiver.
func (r *Reader) SubsetView(view corpus.SubsetID) (*Reader, error) {
	if _, ok := corpus.SubsetByID(view); !ok {
		return nil, fmt.Errorf("cweb22: unknown subset view %q", view)
	}
	if view != r.onDisk && !corpus.Extends(r.onDisk, view) {
		return nil, fmt.Errorf("cweb22: on-disk subset %q does not extend requested view %q", r.onDisk, view)
	}
	cat, err := catalog.SubsetConstrained(r.root, r.onDisk, view, r.lang)
	if err != nil {
		return nil, fmt.Errorf("cweb22: loading catalog for view %q: %w", view, err)
	}
	nr := *r
	nr.view = view
	nr.catalog = cat
	return &nr, nil
}

// runPlans steps every shard plan's required-format inputs through
// align.Combine in order, stopping at the first fatal error.
func (r *Reader) runPlans(ctx context.Context, plans []plan.ShardPlan) record.Iter[align.Doc] {
	return func(yield func(align.Doc, error) bool) {
		for _, sp := range plans {
			var scope xio.Scope
			in, err := newFormatInputs(ctx, r.root, &scope, r.view, sp.FileId, sp.Indices)
			if err != nil {
				scope.Close()
				yield(align.Doc{}, err)
				return
			}
			for doc, err := range align.Combine(ctx, r.view, sp.FileId, sp.Indices, in) {
				if err != nil {
					scope.Close()
					yield(align.Doc{}, err)
					return
				}
				if !yield(doc, nil) {
					scope.Close()
					return
				}
			}
			if err := scope.Close(); err != nil {
				yield(align.Doc{}, fmt.Errorf("cweb22: releasing shard handles: %w", err))
				return
			}
		}
	}
}

var errNoSuchDocument = fmt.Errorf("no such document in this view")

// errSeq returns a record.Iter that yields only err.
func errSeq(err error) record.Iter[align.Doc] {
	return func(yield func(align.Doc, error) bool) {
		yield(align.Doc{}, err)
	}
}
