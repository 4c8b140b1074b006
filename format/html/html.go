// Package html reads the HTML record format: a WARC stream in which each
// decompressed gzip member is one `response` record.
package html

import (
	"bufio"
	"fmt"
	"io"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/quay/cweb22/record"
)

const (
	dateLayout      = "2006-01-02T15:04:05Z"
	dateLayoutMicro = "2006-01-02T15:04:05.999999Z"
)

// New returns a lazy sequence over the decompressed WARC stream r, one
// record per `response`-typed WARC record.
func New(r io.Reader) record.Iter[record.HtmlRecord] {
	return func(yield func(record.HtmlRecord, error) bool) {
		br := bufio.NewReaderSize(r, 64*1024)
		for {
			rec, err := readRecord(br)
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(record.HtmlRecord{}, fmt.Errorf("html: %w", err))
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// readRecord reads one WARC record off br: its version line, its header
// stanza (parsed the same MIME-header way the teacher repository parses
// Debian Release stanzas), and its Content-Length-bounded body.
func readRecord(br *bufio.Reader) (record.HtmlRecord, error) {
	if err := skipBlankLines(br); err != nil {
		return record.HtmlRecord{}, err
	}
	versionLine, err := br.ReadString('\n')
	if err == io.EOF && versionLine == "" {
		return record.HtmlRecord{}, io.EOF
	}
	if err != nil && err != io.EOF {
		return record.HtmlRecord{}, fmt.Errorf("reading WARC version line: %w", err)
	}
	if !strings.HasPrefix(versionLine, "WARC/") {
		return record.HtmlRecord{}, fmt.Errorf("unexpected WARC version line %q", versionLine)
	}

	tp := textproto.NewReader(br)
	hdr, err := tp.ReadMIMEHeader()
	if err != nil && len(hdr) == 0 {
		return record.HtmlRecord{}, fmt.Errorf("reading WARC headers: %w", err)
	}

	contentLength, err := strconv.ParseInt(hdr.Get("Content-Length"), 10, 64)
	if err != nil {
		return record.HtmlRecord{}, fmt.Errorf("bad Content-Length: %w", err)
	}
	body := make([]byte, contentLength)
	if _, err := io.ReadFull(br, body); err != nil {
		return record.HtmlRecord{}, fmt.Errorf("reading body of length %d: %w", contentLength, err)
	}
	if int64(len(body)) != contentLength {
		return record.HtmlRecord{}, fmt.Errorf("body length %d does not match Content-Length %d", len(body), contentLength)
	}

	date, err := parseWarcDate(hdr.Get("WARC-Date"))
	if err != nil {
		return record.HtmlRecord{}, fmt.Errorf("bad WARC-Date: %w", err)
	}

	rec := record.HtmlRecord{
		DocID:         hdr.Get("ClueWeb22-ID"),
		URL:           hdr.Get("WARC-Target-URI"),
		URLHash:       hdr.Get("URL-Hash"),
		Language:      hdr.Get("Language"),
		Date:          date,
		RecordID:      stripAngleBrackets(hdr.Get("WARC-Record-ID")),
		PayloadDigest: hdr.Get("WARC-Payload-Digest"),
		ContentLength: contentLength,
		Body:          body,

		VDOMNone:      parseIntList(hdr.Get("VDOM-None")),
		VDOMPrimary:   parseIntList(hdr.Get("VDOM-Primary")),
		VDOMHeading:   parseIntList(hdr.Get("VDOM-Heading")),
		VDOMTitle:     parseIntList(hdr.Get("VDOM-Title")),
		VDOMParagraph: parseIntList(hdr.Get("VDOM-Paragraph")),
		VDOMTable:     parseIntList(hdr.Get("VDOM-Table")),
		VDOMList:      parseIntList(hdr.Get("VDOM-List")),
	}
	return rec, nil
}

// skipBlankLines consumes the blank-line record separator WARC leaves
// between records, stopping right before the next record's version line.
func skipBlankLines(br *bufio.Reader) error {
	for {
		b, err := br.Peek(1)
		if err == io.EOF {
			return io.EOF
		}
		if err != nil {
			return err
		}
		if b[0] != '\r' && b[0] != '\n' {
			return nil
		}
		if _, err := br.ReadByte(); err != nil {
			return err
		}
	}
}

// parseWarcDate accepts both the second- and microsecond-precision WARC
// date forms, selecting the layout by the presence of a '.' in the value.
func parseWarcDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	layout := dateLayout
	if strings.Contains(s, ".") {
		layout = dateLayoutMicro
	}
	return time.Parse(layout, s)
}

func stripAngleBrackets(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, "<"), ">")
}

func parseIntList(s string) []int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}
