package corpus

import "testing"

func TestDiffFormats(t *testing.T) {
	cases := []struct {
		id   SubsetID
		want []FormatID
	}{
		{L, []FormatID{TXT}},
		{A, []FormatID{HTML, INLINK, OUTLINK}},
		{B, []FormatID{VDOM}},
	}
	for _, c := range cases {
		got := DiffFormats(c.id)
		if len(got) != len(c.want) {
			t.Fatalf("DiffFormats(%s) = %v, want %v", c.id, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("DiffFormats(%s)[%d] = %s, want %s", c.id, i, got[i], c.want[i])
			}
		}
	}
}

func TestExtends(t *testing.T) {
	if !Extends(B, A) || !Extends(B, L) || !Extends(A, L) {
		t.Error("expected B to extend A and L, and A to extend L")
	}
	if Extends(L, A) || Extends(A, B) {
		t.Error("extension relation should not hold in reverse")
	}
	if !Extends(L, L) {
		t.Error("a subset should extend itself")
	}
}

func TestRequiredFormatsForExcludesInactive(t *testing.T) {
	got := RequiredFormatsFor(B)
	for _, f := range got {
		if f == JPG {
			t.Error("RequiredFormatsFor(B) should exclude the inactive JPG format")
		}
	}
	want := []FormatID{TXT, HTML, INLINK, OUTLINK, VDOM}
	if len(got) != len(want) {
		t.Fatalf("RequiredFormatsFor(B) = %v, want %v", got, want)
	}
}

func TestDiffFormatsReturnsACopy(t *testing.T) {
	got := DiffFormats(A)
	got[0] = JPG
	again := DiffFormats(A)
	if again[0] == JPG {
		t.Error("DiffFormats must not let callers mutate internal state")
	}
}
