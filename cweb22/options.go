package cweb22

import (
	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
)

// Options configures Open. It's a plain struct constructed once by the
// caller, the same way libvuln.Opts and indexer.Options are -- no
// environment or flag parsing happens inside the library.
type Options struct {
	// View narrows the dataset to a subset the on-disk Version
	// (transitively) extends -- reading only TXT from an on-disk A-tree,
	// for example. Zero value means "serve the on-disk subset itself".
	View corpus.SubsetID
	// Language restricts every operation to a single language. Identifier
	// lookups for a different language are rejected outright rather than
	// silently filtered.
	Language *corpusid.Language
}
