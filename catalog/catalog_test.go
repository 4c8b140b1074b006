package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
)

func writeCountsCSV(t *testing.T, dir, format, name, body string) {
	t.Helper()
	d := filepath.Join(dir, "record_counts", format)
	if err := os.MkdirAll(d, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(d, name), []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestLoadCatalog(t *testing.T) {
	dir := t.TempDir()
	writeCountsCSV(t, dir, "txt", "en00_counts.csv", "en0000-00,3\nen0000-01,5\n")

	cat, err := Load(os.DirFS(dir), corpus.TXT, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(cat.Entries))
	}
	if cat.Total() != 8 {
		t.Errorf("Total() = %d, want 8", cat.Total())
	}
	want := corpusid.FileId{Language: corpusid.LangEn, Stream: 0, Subdirectory: 0, File: 0}
	if cat.Entries[0].FileId != want {
		t.Errorf("Entries[0].FileId = %+v, want %+v", cat.Entries[0].FileId, want)
	}
}

func TestLoadCatalogLanguageFilter(t *testing.T) {
	dir := t.TempDir()
	writeCountsCSV(t, dir, "txt", "en00_counts.csv", "en0000-00,3\n")
	writeCountsCSV(t, dir, "txt", "de00_counts.csv", "de0000-00,7\n")

	en := corpusid.LangEn
	cat, err := Load(os.DirFS(dir), corpus.TXT, &en)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Entries) != 1 || cat.Entries[0].FileId.Language != corpusid.LangEn {
		t.Fatalf("expected only en entries, got %+v", cat.Entries)
	}
}

func TestLoadCatalogMissingDirectory(t *testing.T) {
	dir := t.TempDir()
	cat, err := Load(os.DirFS(dir), corpus.TXT, nil)
	if err != nil {
		t.Fatalf("Load on missing record_counts dir should not error: %v", err)
	}
	if len(cat.Entries) != 0 {
		t.Errorf("expected an empty catalog, got %+v", cat.Entries)
	}
}

func TestDiffCatalogUsesHTMLDiffFormat(t *testing.T) {
	dir := t.TempDir()
	// A's diff formats are HTML/INLINK/OUTLINK; only HTML has counts on
	// disk, so DiffCatalog must pick it over the empty INLINK/OUTLINK
	// candidates.
	writeCountsCSV(t, dir, "html", "en00_counts.csv", "en0000-00,9\n")

	cat, err := DiffCatalog(os.DirFS(dir), corpus.A, nil)
	if err != nil {
		t.Fatalf("DiffCatalog: %v", err)
	}
	if cat.Format != corpus.HTML {
		t.Fatalf("expected HTML diff catalog, got format %s", cat.Format)
	}
	if cat.Total() != 9 {
		t.Errorf("Total() = %d, want 9", cat.Total())
	}
}

func TestSubsetConstrained(t *testing.T) {
	dir := t.TempDir()
	// On-disk copy is A; two HTML shards exist, but the TXT (L's diff
	// format) only covers one of them -- SubsetConstrained must exclude
	// the shard the L view never received.
	writeCountsCSV(t, dir, "html", "en00_counts.csv", "en0000-00,3\nen0000-01,4\n")
	writeCountsCSV(t, dir, "txt", "en00_counts.csv", "en0000-00,3\n")

	cat, err := SubsetConstrained(os.DirFS(dir), corpus.A, corpus.L, nil)
	if err != nil {
		t.Fatalf("SubsetConstrained: %v", err)
	}
	if len(cat.Entries) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(cat.Entries), cat.Entries)
	}
	want := corpusid.FileId{Language: corpusid.LangEn, Stream: 0, Subdirectory: 0, File: 0}
	if cat.Entries[0].FileId != want {
		t.Errorf("Entries[0].FileId = %+v, want %+v", cat.Entries[0].FileId, want)
	}
}
