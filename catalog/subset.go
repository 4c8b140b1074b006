package catalog

import (
	"fmt"
	"io/fs"

	"golang.org/x/sync/errgroup"

	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
)

// DiffCatalog loads the authoritative record-count catalog for subset:
// whichever of its diff formats (see [corpus.DiffFormats]) has counts on
// disk, or the HTML format's counts if the subset has no diff formats with
// an implemented reader (the documented fallback for "a format's readers
// are not yet implemented").
//
// Candidate formats are loaded concurrently with an errgroup, mirroring
// debian/sourcemapper.go's concurrent per-repo fetch in the teacher
// repository: every load runs to completion, and the first error any of
// them returned is reported.
func DiffCatalog(root fs.FS, subset corpus.SubsetID, lang *corpusid.Language) (*Catalog, error) {
	diffs := corpus.DiffFormats(subset)
	candidates := diffs
	if len(candidates) == 0 {
		candidates = []corpus.FormatID{corpus.HTML}
	}

	cats := make([]*Catalog, len(candidates))
	g := new(errgroup.Group)
	for i, fid := range candidates {
		i, fid := i, fid
		g.Go(func() error {
			c, err := Load(root, fid, lang)
			if err != nil {
				return fmt.Errorf("catalog: loading diff format %s for subset %s: %w", fid, subset, err)
			}
			cats[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, c := range cats {
		if len(c.Entries) > 0 {
			return c, nil
		}
	}
	// Every candidate (and the HTML fallback) came back empty; return the
	// last one loaded so callers see a consistent, if empty, catalog.
	return cats[len(cats)-1], nil
}

// SubsetConstrained computes the final shard listing a reader serving
// `view` over an on-disk copy of `onDisk` should see: view's diff-format
// counts, restricted to the FileIds that actually appear in onDisk's own
// authoritative catalog. This is how an L-subset view of a partial A-subset
// download is faithfully sized -- files onDisk never received are excluded
// even if a stray TXT shard for them exists on disk.
func SubsetConstrained(root fs.FS, onDisk, view corpus.SubsetID, lang *corpusid.Language) (*Catalog, error) {
	var broader, diff *Catalog
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		broader, err = DiffCatalog(root, onDisk, lang)
		return err
	})
	g.Go(func() (err error) {
		diff, err = DiffCatalog(root, view, lang)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	present := make(map[corpusid.FileId]struct{}, len(broader.Entries))
	for _, e := range broader.Entries {
		present[e.FileId] = struct{}{}
	}

	out := &Catalog{Format: diff.Format}
	for _, e := range diff.Entries {
		if _, ok := present[e.FileId]; ok {
			out.Entries = append(out.Entries, e)
		}
	}
	return out, nil
}

// Total sums every entry's record count.
func (c *Catalog) Total() int {
	var n int
	for _, e := range c.Entries {
		n += e.Count
	}
	return n
}
