package align

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/quay/zlog"

	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
	"github.com/quay/cweb22/metrics"
	"github.com/quay/cweb22/record"
)

// Inputs holds the per-format record iterators a subset requires. Txt is
// always present; the rest are nil unless the subset's formats call for
// them (see corpus.RequiredFormatsFor).
type Inputs struct {
	Txt     record.Iter[record.TxtRecord]
	Html    record.Iter[record.HtmlRecord]
	Inlink  record.Iter[record.LinkRecord]
	Outlink record.Iter[record.LinkRecord]
	Vdom    record.Iter[record.VdomRecord]
}

// Combine steps every configured iterator in in lock-step and yields one
// Doc per position. indices gives the local doc index within file that
// each successive position corresponds to, in the same sorted order the
// sparse adapter used to produce the underlying streams -- it is not
// necessarily contiguous, since a strided slice or an identifier lookup
// may skip local indices within the same shard. The k-th tuple across
// iterators is the k-th logical document (see the package doc comment);
// Combine enforces the corpus's cross-format consistency checks and
// tolerated-defect repairs as it goes, stopping and yielding a fatal error
// on the first unrecoverable mismatch.
func Combine(ctx context.Context, subset corpus.SubsetID, file corpusid.FileId, indices []int, in Inputs) record.Iter[Doc] {
	return func(yield func(Doc, error) bool) {
		txtNext, txtStop := iter.Pull2(in.Txt)
		defer txtStop()

		var htmlNext func() (record.HtmlRecord, error, bool)
		var htmlStop func()
		if in.Html != nil {
			n, s := iter.Pull2(in.Html)
			htmlNext, htmlStop = n, s
			defer htmlStop()
		}
		var inlinkNext func() (record.LinkRecord, error, bool)
		var inlinkStop func()
		if in.Inlink != nil {
			n, s := iter.Pull2(in.Inlink)
			inlinkNext, inlinkStop = n, s
			defer inlinkStop()
		}
		var outlinkNext func() (record.LinkRecord, error, bool)
		var outlinkStop func()
		if in.Outlink != nil {
			n, s := iter.Pull2(in.Outlink)
			outlinkNext, outlinkStop = n, s
			defer outlinkStop()
		}
		var vdomNext func() (record.VdomRecord, error, bool)
		var vdomStop func()
		if in.Vdom != nil {
			n, s := iter.Pull2(in.Vdom)
			vdomNext, vdomStop = n, s
			defer vdomStop()
		}

		for i := 0; ; i++ {
			start := time.Now()
			txt, txtErr, txtOK := txtNext()
			if !txtOK {
				return
			}
			if txtErr != nil {
				yield(Doc{}, txtErr)
				return
			}
			if i >= len(indices) {
				yield(Doc{}, mismatch(i, "doc_id", "TXT iterator produced more records than the %d planned indices", len(indices)))
				return
			}

			doc := Doc{
				Subset:   subset,
				DocID:    corpusid.DocId{FileId: file, Doc: indices[i]},
				URL:      txt.URL,
				URLHash:  txt.URLHash,
				Language: txt.Language,
				Text:     txt.Text,
			}
			expected := doc.DocID.String()
			if txt.DocID != expected {
				yield(Doc{}, mismatch(i, "doc_id", "expected %q from position, TXT carries %q", expected, txt.DocID))
				return
			}

			if htmlNext != nil {
				html, err, ok := htmlNext()
				if !ok {
					yield(Doc{}, mismatch(i, "html", "iterator exhausted before TXT"))
					return
				}
				if err != nil {
					yield(Doc{}, err)
					return
				}
				if html.DocID != expected {
					yield(Doc{}, mismatch(i, "doc_id", "expected %q from position, HTML carries %q", expected, html.DocID))
					return
				}
				if err := checkURL(ctx, i, txt.URL, html.URL); err != nil {
					yield(Doc{}, err)
					return
				}
				if txt.URLHash != html.URLHash {
					metrics.ToleratedDefects.WithLabelValues("url-hash-mismatch").Inc()
					zlog.Warn(ctx).
						Int("index", i).
						Str("doc_id", expected).
						Str("txt_hash", txt.URLHash).
						Str("html_hash", html.URLHash).
						Msg("TXT/HTML url_hash mismatch, tolerated")
				}
				if txt.Language != html.Language && !strings.EqualFold(txt.Language, "other") {
					yield(Doc{}, mismatch(i, "language", "TXT %q != HTML %q", txt.Language, html.Language))
					return
				}
				doc.URL = html.URL
				doc.URLHash = html.URLHash
				doc.Language = html.Language
				doc.Date = html.Date
			}

			if inlinkNext != nil {
				rec, err, ok := inlinkNext()
				if !ok {
					yield(Doc{}, mismatch(i, "inlink", "iterator exhausted before TXT"))
					return
				}
				if err != nil {
					yield(Doc{}, err)
					return
				}
				anchors, err := joinLink(ctx, i, "inlink", expected, txt.URL, rec)
				if err != nil {
					yield(Doc{}, err)
					return
				}
				doc.Inlinks = anchors
			}
			if outlinkNext != nil {
				rec, err, ok := outlinkNext()
				if !ok {
					yield(Doc{}, mismatch(i, "outlink", "iterator exhausted before TXT"))
					return
				}
				if err != nil {
					yield(Doc{}, err)
					return
				}
				anchors, err := joinLink(ctx, i, "outlink", expected, txt.URL, rec)
				if err != nil {
					yield(Doc{}, err)
					return
				}
				doc.Outlinks = anchors
			}
			if vdomNext != nil {
				rec, err, ok := vdomNext()
				if !ok {
					yield(Doc{}, mismatch(i, "vdom", "iterator exhausted before TXT"))
					return
				}
				if err != nil {
					yield(Doc{}, err)
					return
				}
				doc.VDOM = rec.Blob
			}

			metrics.AlignDuration.Observe(time.Since(start).Seconds())
			metrics.RecordsYielded.WithLabelValues(string(subset)).Inc()
			if !yield(doc, nil) {
				return
			}
		}
	}
}

// checkURL applies the documented TXT/HTML URL truncation defect: a
// mismatch is tolerated only when the TXT URL equals the HTML URL cut at
// its first comma.
func checkURL(ctx context.Context, index int, txtURL, htmlURL string) error {
	if txtURL == htmlURL {
		return nil
	}
	if prefix, _, ok := strings.Cut(htmlURL, ","); ok && prefix == txtURL {
		metrics.ToleratedDefects.WithLabelValues("txt-html-url-truncation").Inc()
		zlog.Debug(ctx).
			Int("index", index).
			Str("txt_url", txtURL).
			Str("html_url", htmlURL).
			Msg("TXT/HTML url comma truncation, tolerated")
		return nil
	}
	return mismatch(index, "url", "TXT %q != HTML %q", txtURL, htmlURL)
}

// joinLink converts one INLINK/OUTLINK record into the anchors to attach
// to a Doc. A doc_id disagreement with the rest of the join is fatal, per
// §4.6 ("doc_id across TXT/HTML/INLINK/OUTLINK must be equal; mismatch is
// fatal"); a url mismatch against the TXT record is logged and tolerated.
// The record's url_hash is not compared. A null placeholder yields no
// anchors.
func joinLink(ctx context.Context, index int, kind, expectedDocID, txtURL string, rec record.LinkRecord) ([]record.Anchor, error) {
	if rec.Null {
		return nil, nil
	}
	if rec.DocID != "" && rec.DocID != expectedDocID {
		return nil, mismatch(index, "doc_id", "%s carries %q, expected %q", kind, rec.DocID, expectedDocID)
	}
	if rec.URL != "" && rec.URL != txtURL {
		zlog.Warn(ctx).
			Int("index", index).
			Str("kind", kind).
			Str("txt_url", txtURL).
			Str("link_url", rec.URL).
			Msg("link record url mismatch, tolerated")
		metrics.ToleratedDefects.WithLabelValues(kind + "-url-mismatch").Inc()
	}
	return rec.Anchors, nil
}
