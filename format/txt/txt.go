// Package txt reads the TXT record format: one JSON object per line.
package txt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/quay/cweb22/record"
)

// wireRecord mirrors the TXT shard's on-the-wire JSON field names.
type wireRecord struct {
	DocID    string `json:"ClueWeb22-ID"`
	URL      string `json:"URL"`
	URLHash  string `json:"URL-hash"`
	Language string `json:"Language"`
	Text     string `json:"Clean-Text"`
}

// New returns a lazy sequence over the decompressed TXT shard stream r,
// one record per line.
//
// Two documented data quirks are repaired here, not downstream: the URL
// field may carry a trailing newline (stripped), and it may be truncated at
// the first comma in the source data -- record.TxtRecord.URL always holds
// the already-truncated form, which is what package align compares against
// the HTML record's full URL.
func New(r io.Reader) record.Iter[record.TxtRecord] {
	return func(yield func(record.TxtRecord, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for sc.Scan() {
			line := sc.Bytes()
			var wr wireRecord
			if err := json.Unmarshal(line, &wr); err != nil {
				yield(record.TxtRecord{}, fmt.Errorf("txt: decoding line: %w", err))
				return
			}
			rec := record.TxtRecord{
				DocID:    wr.DocID,
				URL:      repairURL(wr.URL),
				URLHash:  wr.URLHash,
				Language: wr.Language,
				Text:     wr.Text,
			}
			if !yield(rec, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(record.TxtRecord{}, fmt.Errorf("txt: scanning shard: %w", err))
		}
	}
}

func repairURL(u string) string {
	u = strings.TrimSuffix(u, "\n")
	if i := strings.IndexByte(u, ','); i >= 0 {
		u = u[:i]
	}
	return u
}
