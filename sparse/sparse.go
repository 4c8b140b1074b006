// Package sparse implements the sparse stream adapter: it presents the
// concatenation of selected byte ranges of a shard file as one contiguous
// [io.Reader], so a gzip decoder downstream sees only the records it was
// asked for.
package sparse

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("github.com/quay/cweb22/sparse")

// PlanAndOpen computes the byte ranges covering indices into a shard whose
// records start at offsets, and returns a Reader over src serving exactly
// those ranges. It's the usual entry point; Plan and NewReader are exposed
// separately for callers (and tests) that want to inspect the computed
// ranges before reading.
func PlanAndOpen(ctx context.Context, src Source, offsets []int64, indices []int) *Reader {
	_, span := tracer.Start(ctx, "Plan")
	defer span.End()
	ranges := Plan(offsets, indices)
	span.SetAttributes(
		attribute.Int("sparse.requested_indices", len(indices)),
		attribute.Int("sparse.merged_ranges", len(ranges)),
	)
	return NewReader(src, ranges)
}

// Source is the seekable byte source a Reader pulls ranges from. *os.File
// satisfies it; tests substitute a mock (see sparse_test.go) over a
// bytes.Reader-backed fake.
type Source interface {
	io.Reader
	io.Seeker
}

// byteRange is a half-open [Start, End) span of the underlying source.
// End == -1 means "read to EOF" -- used for the final included range,
// since the last record in a shard has no known upper-bound offset.
type byteRange struct {
	Start, End int64
}

// Plan computes the sorted, merged list of byte ranges that cover exactly
// the requested local indices of a shard whose records start at the given
// offsets. offsets has one entry per record; the last record's range is
// open-ended to EOF.
//
// Indices outside [0, len(offsets)) are ignored.
func Plan(offsets []int64, indices []int) []byteRange {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)

	ranges := make([]byteRange, 0, len(sorted))
	for _, i := range sorted {
		if i < 0 || i >= len(offsets) {
			continue
		}
		start := offsets[i]
		end := int64(-1)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		ranges = append(ranges, byteRange{Start: start, End: end})
	}
	return mergeAdjacent(ranges)
}

// mergeAdjacent coalesces consecutive ranges whose boundaries touch, so the
// reader performs one seek+read instead of many when the requested indices
// are contiguous.
func mergeAdjacent(ranges []byteRange) []byteRange {
	if len(ranges) == 0 {
		return nil
	}
	out := ranges[:1]
	for _, r := range ranges[1:] {
		last := &out[len(out)-1]
		if last.End == r.Start {
			last.End = r.End
		} else {
			out = append(out, r)
		}
	}
	return out
}

// Reader presents the concatenation of a shard's selected byte ranges as a
// contiguous io.Reader. Bytes between ranges are never read: the
// underlying Source is seeked past them.
//
// When the requested indices are contiguous and include index 0, Plan
// produces a single range starting at offset 0, and Reader degenerates to
// a single seek-then-read-through, exactly the "no sparseness needed" case
// described by the design.
type Reader struct {
	src    Source
	ranges []byteRange
	cur    int   // index of the range currently being read
	pos    int64 // current read position within src
	seeked bool  // whether src has been positioned for ranges[cur]
}

// NewReader returns a Reader over src serving exactly the ranges in plan,
// which must be sorted and non-overlapping (as produced by [Plan]).
func NewReader(src Source, ranges []byteRange) *Reader {
	return &Reader{src: src, ranges: ranges}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	for {
		if r.cur >= len(r.ranges) {
			return 0, io.EOF
		}
		rg := r.ranges[r.cur]
		if !r.seeked {
			pos, err := r.src.Seek(rg.Start, io.SeekStart)
			if err != nil {
				return 0, fmt.Errorf("sparse: seeking to range start %d: %w", rg.Start, err)
			}
			r.pos = pos
			r.seeked = true
		}

		max := int64(len(p))
		if rg.End >= 0 {
			if remaining := rg.End - r.pos; remaining < max {
				max = remaining
			}
		}
		if max == 0 {
			r.cur++
			r.seeked = false
			continue
		}

		n, err := r.src.Read(p[:max])
		r.pos += int64(n)
		if err == io.EOF && rg.End < 0 {
			// Final open-ended range legitimately ends at shard EOF.
			r.cur++
			r.seeked = false
			if n > 0 {
				return n, nil
			}
			continue
		}
		if err != nil && err != io.EOF {
			return n, fmt.Errorf("sparse: reading range: %w", err)
		}
		if rg.End >= 0 && r.pos >= rg.End {
			r.cur++
			r.seeked = false
		}
		if n > 0 {
			return n, nil
		}
	}
}
