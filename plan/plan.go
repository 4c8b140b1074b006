// Package plan implements the slice planner: it converts a global
// (start, stop, step) slice, or a set of requested document identifiers,
// into a per-shard plan of which shards to open and which local indices to
// materialize from each. Shards whose range doesn't intersect the request
// are skipped entirely and never opened.
package plan

import (
	"fmt"
	"sort"

	"github.com/quay/cweb22/catalog"
	"github.com/quay/cweb22/corpusid"
)

// ShardPlan names one shard to open and the local record indices within it
// to extract, in ascending order.
type ShardPlan struct {
	FileId  corpusid.FileId
	Indices []int
}

// LanguageMismatchError reports that a requested identifier's language
// disagrees with the reader's language filter. The whole request is
// rejected rather than silently dropping the offending identifier.
type LanguageMismatchError struct {
	DocID    corpusid.DocId
	Expected corpusid.Language
}

func (e *LanguageMismatchError) Error() string {
	return fmt.Sprintf("plan: identifier %s has language %q, reader is filtered to %q",
		e.DocID, e.DocID.Language.Id, e.Expected.Id)
}

// GlobalSlice computes the shard plan for a Python-style slice over the
// catalog's running record-count offset. start and stop are clamped to
// [0, N] after resolving negative indices the way Python's slice() does;
// step must be positive -- negative step is an explicit open question this
// reader declines to guess at (see DESIGN.md).
//
// Entries whose count range doesn't intersect [start, stop) are skipped
// without computing an index set or appearing in the plan at all, so
// those shards are never opened by a caller that only opens what's
// planned.
func GlobalSlice(entries []catalog.Entry, start, stop, step int) ([]ShardPlan, error) {
	if step == 0 {
		return nil, fmt.Errorf("plan: step must be non-zero")
	}
	if step < 0 {
		return nil, fmt.Errorf("plan: negative step is not supported")
	}

	n := 0
	for _, e := range entries {
		n += e.Count
	}
	start = clampIndex(start, n)
	stop = clampIndex(stop, n)
	if start >= stop {
		return nil, nil
	}

	var out []ShardPlan
	running := 0
	for _, e := range entries {
		shardStart, shardEnd := running, running+e.Count
		running = shardEnd
		if shardEnd <= start || shardStart >= stop {
			continue
		}

		var indices []int
		for i := 0; i < e.Count; i++ {
			global := shardStart + i
			if global < start || global >= stop {
				continue
			}
			if (global-start)%step != 0 {
				continue
			}
			indices = append(indices, i)
		}
		if len(indices) == 0 {
			continue
		}
		out = append(out, ShardPlan{FileId: e.FileId, Indices: indices})
	}
	return out, nil
}

// clampIndex resolves a Python-style slice bound (negative counts back
// from n) and clamps it into [0, n].
func clampIndex(i, n int) int {
	if i < 0 {
		i += n
	}
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// IdentifierSet groups ids by FileId, preserving first-seen shard order,
// and returns the per-shard local indices to extract, sorted ascending:
// the sparse adapter (and the VDOM ZIP reader) always yields a shard's
// records in ascending local-index order regardless of request order,
// since §4.7 describes the per-shard extraction as a *set* of local
// indices, not an ordered list. If lang is non-nil and any identifier's
// language disagrees with it, the entire request is rejected with a
// *LanguageMismatchError rather than silently dropping the offending
// identifier.
func IdentifierSet(ids []corpusid.DocId, lang *corpusid.Language) ([]ShardPlan, error) {
	if lang != nil {
		for _, id := range ids {
			if id.Language.Id != lang.Id {
				return nil, &LanguageMismatchError{DocID: id, Expected: *lang}
			}
		}
	}

	seen := make(map[corpusid.FileId]int, len(ids))
	var out []ShardPlan
	for _, id := range ids {
		fid := id.FileId
		idx, ok := seen[fid]
		if !ok {
			idx = len(out)
			seen[fid] = idx
			out = append(out, ShardPlan{FileId: fid})
		}
		out[idx].Indices = append(out[idx].Indices, id.Doc)
	}
	for i := range out {
		sort.Ints(out[i].Indices)
	}
	return out, nil
}
