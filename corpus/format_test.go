package corpus

import "testing"

func TestFormatByID(t *testing.T) {
	f, ok := FormatByID(HTML)
	if !ok {
		t.Fatal("FormatByID(HTML) not found")
	}
	if f.ShardExt != ".warc.gz" || f.OffsetExt != ".warc.offset" {
		t.Errorf("unexpected HTML format: %+v", f)
	}
	if !f.HasOffsetSidecar() {
		t.Error("HTML format should have an offset sidecar")
	}
}

func TestVdomHasNoOffsetSidecar(t *testing.T) {
	f, ok := FormatByID(VDOM)
	if !ok {
		t.Fatal("FormatByID(VDOM) not found")
	}
	if f.HasOffsetSidecar() {
		t.Error("VDOM is ZIP-compressed and should have no offset sidecar")
	}
	if f.InnerExt != ".bin" {
		t.Errorf("VDOM InnerExt = %q, want %q", f.InnerExt, ".bin")
	}
}

func TestJpgIsInactive(t *testing.T) {
	f, ok := FormatByID(JPG)
	if !ok {
		t.Fatal("FormatByID(JPG) not found")
	}
	if f.Active {
		t.Error("JPG format is reserved and must be inactive")
	}
}

func TestCompressionString(t *testing.T) {
	if GZIP.String() != "gzip" || ZIP.String() != "zip" {
		t.Errorf("unexpected Compression.String(): gzip=%q zip=%q", GZIP.String(), ZIP.String())
	}
}
