package vdom

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"

	"github.com/quay/cweb22/corpusid"
	"github.com/quay/cweb22/record"
)

var testFile = corpusid.FileId{Language: corpusid.LangEn, Stream: 0, Subdirectory: 0, File: 0}

func buildZip(t *testing.T, members map[string][]byte) *zip.Reader {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range members {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	return zr
}

func TestMemberNameIsFullDocID(t *testing.T) {
	got := MemberName(testFile, 0)
	want := "clueweb22-en0000-00-00000.bin"
	if got != want {
		t.Errorf("MemberName = %q, want %q", got, want)
	}
}

func TestAt(t *testing.T) {
	zr := buildZip(t, map[string][]byte{
		MemberName(testFile, 0): []byte("blob-zero"),
		MemberName(testFile, 1): []byte("blob-one"),
	})

	rec, err := At(zr, testFile, 1)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if string(rec.Blob) != "blob-one" {
		t.Errorf("Blob = %q", rec.Blob)
	}
}

func TestAtMissingMember(t *testing.T) {
	zr := buildZip(t, map[string][]byte{MemberName(testFile, 0): []byte("x")})
	_, err := At(zr, testFile, 5)
	if err == nil {
		t.Fatal("expected an error for a missing member")
	}
	var mme *MissingMemberError
	if !errors.As(err, &mme) {
		t.Fatalf("expected a *MissingMemberError, got %T: %v", err, err)
	}
}

func TestNewOrdersByIndex(t *testing.T) {
	zr := buildZip(t, map[string][]byte{
		MemberName(testFile, 2): []byte("two"),
		MemberName(testFile, 0): []byte("zero"),
		MemberName(testFile, 1): []byte("one"),
	})

	var got []record.VdomRecord
	for rec, err := range New(zr) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, rec)
	}
	if len(got) != 3 {
		t.Fatalf("got %d records, want 3", len(got))
	}
	want := []string{"zero", "one", "two"}
	for i, w := range want {
		if string(got[i].Blob) != w {
			t.Errorf("record %d = %q, want %q", i, got[i].Blob, w)
		}
	}
}
