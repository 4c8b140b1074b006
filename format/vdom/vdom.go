// Package vdom reads the VDOM record format: a ZIP archive shard in which
// each record is one independently addressable member. Unlike the
// GZIP-compressed formats, VDOM shards carry no offset sidecar -- the ZIP
// central directory already gives random access by member name, so package
// sparse is not used here.
package vdom

import (
	"archive/zip"
	"fmt"
	"io"
	"sort"

	"github.com/quay/cweb22/corpusid"
	"github.com/quay/cweb22/record"
)

// MemberName returns the expected archive member name for local record
// index i of shard fid: the record's full document identifier plus the
// format's inner extension, e.g. "clueweb22-en0000-00-00000.bin".
func MemberName(fid corpusid.FileId, i int) string {
	return corpusid.DocId{FileId: fid, Doc: i}.String() + ".bin"
}

// MissingMemberError reports that a VDOM shard's ZIP archive does not
// contain an expected member name. It is fatal to the iterator.
type MissingMemberError struct {
	Name string
}

func (e *MissingMemberError) Error() string {
	return fmt.Sprintf("vdom: missing expected archive member %q", e.Name)
}

// At extracts the VdomRecord for local index i of shard fid out of an
// already-opened ZIP archive.
func At(zr *zip.Reader, fid corpusid.FileId, i int) (record.VdomRecord, error) {
	name := MemberName(fid, i)
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		return readMember(f)
	}
	return record.VdomRecord{}, &MissingMemberError{Name: name}
}

// New returns a lazy sequence over every member of zr, in member-name
// order, which is index order since every member of a shard shares the
// same FileId prefix and differs only in its zero-padded doc sequence.
func New(zr *zip.Reader) record.Iter[record.VdomRecord] {
	files := append([]*zip.File(nil), zr.File...)
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return func(yield func(record.VdomRecord, error) bool) {
		for _, f := range files {
			rec, err := readMember(f)
			if err != nil {
				yield(record.VdomRecord{}, err)
				return
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

func readMember(f *zip.File) (record.VdomRecord, error) {
	rc, err := f.Open()
	if err != nil {
		return record.VdomRecord{}, fmt.Errorf("vdom: opening member %q: %w", f.Name, err)
	}
	defer rc.Close()
	blob, err := io.ReadAll(rc)
	if err != nil {
		return record.VdomRecord{}, fmt.Errorf("vdom: reading member %q: %w", f.Name, err)
	}
	return record.VdomRecord{Blob: blob}, nil
}
