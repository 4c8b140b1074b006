package align

import (
	"context"
	"errors"
	"testing"

	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
	"github.com/quay/cweb22/record"
)

func seqOf[T any](items ...T) record.Iter[T] {
	return func(yield func(T, error) bool) {
		for _, it := range items {
			if !yield(it, nil) {
				return
			}
		}
	}
}

var testFile = corpusid.FileId{Language: corpusid.LangEn, Stream: 0, Subdirectory: 0, File: 0}

func docID(n int) string {
	return corpusid.DocId{FileId: testFile, Doc: n}.String()
}

func collect(t *testing.T, seq record.Iter[Doc]) ([]Doc, error) {
	t.Helper()
	var docs []Doc
	var err error
	for d, e := range seq {
		if e != nil {
			err = e
			break
		}
		docs = append(docs, d)
	}
	return docs, err
}

func TestCombineTxtOnly(t *testing.T) {
	in := Inputs{
		Txt: seqOf(
			record.TxtRecord{DocID: docID(0), URL: "http://a", URLHash: "h0", Language: "en", Text: "one"},
			record.TxtRecord{DocID: docID(1), URL: "http://b", URLHash: "h1", Language: "en", Text: "two"},
		),
	}
	docs, err := collect(t, Combine(context.Background(), corpus.L, testFile, []int{0, 1}, in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("got %d docs, want 2", len(docs))
	}
	if docs[0].Text != "one" || docs[1].Text != "two" {
		t.Errorf("unexpected text: %+v", docs)
	}
}

func TestCombineDocIDMismatchFatal(t *testing.T) {
	in := Inputs{
		Txt: seqOf(record.TxtRecord{DocID: "clueweb22-en0000-00-99999", URL: "http://a", Language: "en", Text: "x"}),
	}
	_, err := collect(t, Combine(context.Background(), corpus.L, testFile, []int{0}, in))
	var ame *AlignmentMismatchError
	if !errors.As(err, &ame) {
		t.Fatalf("expected *AlignmentMismatchError, got %T: %v", err, err)
	}
	if ame.Field != "doc_id" {
		t.Errorf("Field = %q, want doc_id", ame.Field)
	}
}

func TestCombineHtmlURLCommaTruncationTolerated(t *testing.T) {
	in := Inputs{
		Txt: seqOf(record.TxtRecord{DocID: docID(0), URL: "http://a", URLHash: "h0", Language: "en", Text: "x"}),
		Html: seqOf(record.HtmlRecord{
			DocID:    docID(0),
			URL:      "http://a,some-trailer",
			URLHash:  "h0",
			Language: "en",
		}),
	}
	docs, err := collect(t, Combine(context.Background(), corpus.A, testFile, []int{0}, in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].URL != "http://a,some-trailer" {
		t.Errorf("URL = %q, want the HTML-sourced canonical URL", docs[0].URL)
	}
}

func TestCombineHtmlURLMismatchFatal(t *testing.T) {
	in := Inputs{
		Txt:  seqOf(record.TxtRecord{DocID: docID(0), URL: "http://a", Language: "en", Text: "x"}),
		Html: seqOf(record.HtmlRecord{DocID: docID(0), URL: "http://totally-different", Language: "en"}),
	}
	_, err := collect(t, Combine(context.Background(), corpus.A, testFile, []int{0}, in))
	var ame *AlignmentMismatchError
	if !errors.As(err, &ame) {
		t.Fatalf("expected *AlignmentMismatchError, got %T: %v", err, err)
	}
	if ame.Field != "url" {
		t.Errorf("Field = %q, want url", ame.Field)
	}
}

func TestCombineURLHashMismatchNonFatal(t *testing.T) {
	in := Inputs{
		Txt:  seqOf(record.TxtRecord{DocID: docID(0), URL: "http://a", URLHash: "hash-txt", Language: "en", Text: "x"}),
		Html: seqOf(record.HtmlRecord{DocID: docID(0), URL: "http://a", URLHash: "hash-html", Language: "en"}),
	}
	docs, err := collect(t, Combine(context.Background(), corpus.A, testFile, []int{0}, in))
	if err != nil {
		t.Fatalf("expected url_hash mismatch to be non-fatal, got %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
}

func TestCombineOtherLanguageExemptsLanguageCheck(t *testing.T) {
	in := Inputs{
		Txt:  seqOf(record.TxtRecord{DocID: docID(0), URL: "http://a", Language: "other", Text: "x"}),
		Html: seqOf(record.HtmlRecord{DocID: docID(0), URL: "http://a", Language: "fr"}),
	}
	docs, err := collect(t, Combine(context.Background(), corpus.A, testFile, []int{0}, in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].Language != "fr" {
		t.Errorf("Language = %q, want HTML-sourced %q", docs[0].Language, "fr")
	}
}

func TestCombineNullLinkRecordYieldsNoAnchors(t *testing.T) {
	in := Inputs{
		Txt:    seqOf(record.TxtRecord{DocID: docID(0), URL: "http://a", Language: "en", Text: "x"}),
		Inlink: seqOf(record.LinkRecord{Null: true}),
	}
	docs, err := collect(t, Combine(context.Background(), corpus.A, testFile, []int{0}, in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].Inlinks != nil {
		t.Errorf("Inlinks = %v, want nil", docs[0].Inlinks)
	}
}

func TestCombineLinkDocIDMismatchFatal(t *testing.T) {
	in := Inputs{
		Txt:    seqOf(record.TxtRecord{DocID: docID(0), URL: "http://a", Language: "en", Text: "x"}),
		Inlink: seqOf(record.LinkRecord{DocID: "clueweb22-en0000-00-99999", URL: "http://a"}),
	}
	_, err := collect(t, Combine(context.Background(), corpus.A, testFile, []int{0}, in))
	var ame *AlignmentMismatchError
	if !errors.As(err, &ame) {
		t.Fatalf("expected *AlignmentMismatchError, got %T: %v", err, err)
	}
	if ame.Field != "doc_id" {
		t.Errorf("Field = %q, want doc_id", ame.Field)
	}
}

func TestCombineLinkURLMismatchNonFatal(t *testing.T) {
	in := Inputs{
		Txt:     seqOf(record.TxtRecord{DocID: docID(0), URL: "http://a", Language: "en", Text: "x"}),
		Outlink: seqOf(record.LinkRecord{DocID: docID(0), URL: "http://totally-different"}),
	}
	docs, err := collect(t, Combine(context.Background(), corpus.A, testFile, []int{0}, in))
	if err != nil {
		t.Fatalf("expected outlink url mismatch to be non-fatal, got %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}
}

func TestCombineIndicesGiveNonContiguousDocID(t *testing.T) {
	in := Inputs{
		Txt: seqOf(record.TxtRecord{DocID: docID(5), URL: "http://a", Language: "en", Text: "x"}),
	}
	docs, err := collect(t, Combine(context.Background(), corpus.L, testFile, []int{5}, in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if docs[0].DocID.Doc != 5 {
		t.Errorf("Doc = %d, want 5", docs[0].DocID.Doc)
	}
}
