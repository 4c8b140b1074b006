// Package align implements the aligner/combiner: it steps the record
// iterators of every format a subset requires in lock-step and joins them
// into unified [Doc] values, applying the corpus's documented consistency
// checks and tolerated-defect repairs.
package align

import (
	"time"

	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
	"github.com/quay/cweb22/record"
)

// Doc is a joined logical document. Which fields are populated depends on
// Subset: an L document only ever has DocID, URL, URLHash, Language, and
// Text set; A and B add the rest as their formats are joined in.
type Doc struct {
	Subset   corpus.SubsetID
	DocID    corpusid.DocId
	URL      string
	URLHash  string
	Language string
	Date     time.Time
	Text     string
	Inlinks  []record.Anchor
	Outlinks []record.Anchor
	VDOM     []byte
}
