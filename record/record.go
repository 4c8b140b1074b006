// Package record defines the typed record shapes produced by each format
// reader (see the format subpackages) before they're joined into a [Doc] by
// package align.
package record

import (
	"iter"
	"time"
)

// Iter is the shape every format reader returns: a range-over-func
// sequence of (record, error) pairs, consumed with "for rec, err := range
// seq". A non-nil error is always the final value yielded.
type Iter[T any] = iter.Seq2[T, error]

// TxtRecord is one decoded line of a TXT shard.
type TxtRecord struct {
	DocID    string
	URL      string
	URLHash  string
	Language string
	Text     string
}

// Anchor is one anchor entry of an INLINK or OUTLINK record: a 5-tuple of
// (url, url_hash, text, ?, language) as carried on the wire. The fourth
// field is unnamed in the corpus's own format and is kept opaque here.
type Anchor struct {
	URL      string
	URLHash  string
	Text     string
	Unknown  string
	Language string
}

// LinkRecord is one decoded line of an INLINK or OUTLINK shard. A blank
// line in the source produces a LinkRecord with Null set, preserving
// positional alignment with an empty Anchors list.
type LinkRecord struct {
	Null     bool
	DocID    string
	URL      string
	URLHash  string
	Anchors  []Anchor
}

// HtmlRecord is one decoded WARC `response` record of an HTML shard.
type HtmlRecord struct {
	DocID          string
	URL            string
	URLHash        string
	Language       string
	Date           time.Time
	RecordID       string
	PayloadDigest  string
	ContentLength  int64
	Body           []byte

	VDOMNone      []int
	VDOMPrimary   []int
	VDOMHeading   []int
	VDOMTitle     []int
	VDOMParagraph []int
	VDOMTable     []int
	VDOMList      []int
}

// VdomRecord is one decompressed ZIP member of a VDOM shard: an opaque
// visual-DOM protobuf blob. The schema is out of scope at this layer (see
// spec.md's out-of-scope list); callers treat Blob as opaque bytes.
type VdomRecord struct {
	Blob []byte
}

// JpgRecord is reserved for the (currently inactive) screenshot format.
type JpgRecord struct {
	Blob []byte
}
