// Package link reads the INLINK and OUTLINK record formats, which share a
// wire shape: one JSON object per line, with the anchor list under a
// format-specific key ("anchors" for inlink, "outlinks" for outlink).
package link

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/quay/cweb22/record"
)

// Kind selects which array key a shard's JSON lines use.
type Kind int

const (
	Inlink Kind = iota
	Outlink
)

func (k Kind) arrayKey() string {
	if k == Outlink {
		return "outlinks"
	}
	return "anchors"
}

// anchorTuple mirrors the wire shape of one anchor: [url, url_hash, text, ?,
// language].
type anchorTuple [5]string

type wireRecord struct {
	DocID   string `json:"ClueWeb22-ID"`
	URL     string `json:"url"`
	URLHash string `json:"urlhash"`
}

// New returns a lazy sequence over the decompressed shard stream r. A blank
// line yields a LinkRecord with Null set and no anchors, preserving
// positional alignment with the other required formats.
func New(r io.Reader, kind Kind) record.Iter[record.LinkRecord] {
	return func(yield func(record.LinkRecord, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for sc.Scan() {
			line := sc.Bytes()
			if len(line) == 0 {
				if !yield(record.LinkRecord{Null: true}, nil) {
					return
				}
				continue
			}

			var raw map[string]json.RawMessage
			if err := json.Unmarshal(line, &raw); err != nil {
				yield(record.LinkRecord{}, fmt.Errorf("link: decoding line: %w", err))
				return
			}
			var wr wireRecord
			if err := json.Unmarshal(line, &wr); err != nil {
				yield(record.LinkRecord{}, fmt.Errorf("link: decoding line: %w", err))
				return
			}
			var tuples []anchorTuple
			if msg, ok := raw[kind.arrayKey()]; ok {
				if err := json.Unmarshal(msg, &tuples); err != nil {
					yield(record.LinkRecord{}, fmt.Errorf("link: decoding %s: %w", kind.arrayKey(), err))
					return
				}
			}

			anchors := make([]record.Anchor, len(tuples))
			for i, t := range tuples {
				anchors[i] = record.Anchor{
					URL:      t[0],
					URLHash:  t[1],
					Text:     t[2],
					Unknown:  t[3],
					Language: t[4],
				}
			}

			rec := record.LinkRecord{
				DocID:   wr.DocID,
				URL:     wr.URL,
				URLHash: wr.URLHash,
				Anchors: anchors,
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(record.LinkRecord{}, fmt.Errorf("link: scanning shard: %w", err))
		}
	}
}
