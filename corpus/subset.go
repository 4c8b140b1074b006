package corpus

// SubsetID names one of the corpus's three nested subsets.
type SubsetID string

const (
	L SubsetID = "l"
	A SubsetID = "a"
	B SubsetID = "b"
)

// Subset is a named collection of required formats. Subsets nest: L ⊂ A ⊂
// B. Extends names the subset this one directly extends, or "" for L,
// which extends nothing.
type Subset struct {
	ID       SubsetID
	Formats  []FormatID
	Extends  SubsetID
}

// subsets is the static extension DAG B -> A -> L. Declared as a plain
// table and turned into the derived diffFormats/viewsOf indices once, in
// init, per the "compute by transitive closure at initialization, not
// per-call" design note.
var subsets = []Subset{
	{ID: L, Formats: []FormatID{TXT}, Extends: ""},
	{ID: A, Formats: []FormatID{TXT, HTML, INLINK, OUTLINK, VDOM}, Extends: L},
	// B's only addition over A is JPG, whose reader isn't implemented yet
	// (see corpus.Format.Active); until it is, B's required-formats list
	// equals A's, so B has no diff formats of its own -- the documented
	// "subset has no diff formats" case in catalog.DiffCatalog's HTML
	// fallback.
	{ID: B, Formats: []FormatID{TXT, HTML, INLINK, OUTLINK, VDOM}, Extends: A},
}

var (
	byID        = map[SubsetID]Subset{}
	diffFormats = map[SubsetID][]FormatID{}
	// extendsClosure[s] lists every subset s (transitively) extends,
	// nearest first -- extendsClosure[B] = [A, L].
	extendsClosure = map[SubsetID][]SubsetID{}
)

func init() {
	for _, s := range subsets {
		byID[s.ID] = s
	}
	for _, s := range subsets {
		var chain []SubsetID
		for parent := s.Extends; parent != ""; {
			chain = append(chain, parent)
			parent = byID[parent].Extends
		}
		extendsClosure[s.ID] = chain

		inherited := map[FormatID]bool{}
		for _, pid := range chain {
			for _, f := range byID[pid].Formats {
				inherited[f] = true
			}
		}
		var diff []FormatID
		for _, f := range s.Formats {
			if !inherited[f] {
				diff = append(diff, f)
			}
		}
		diffFormats[s.ID] = diff
	}
}

// SubsetByID looks up a Subset by its ID.
func SubsetByID(id SubsetID) (Subset, bool) {
	s, ok := byID[id]
	return s, ok
}

// DiffFormats returns the formats required by s but not required by any
// subset s (transitively) extends. These are the authoritative
// record-count source for s: see catalog.DiffCatalog for the fallback
// when a subset has none.
func DiffFormats(id SubsetID) []FormatID {
	return append([]FormatID(nil), diffFormats[id]...)
}

// Extends reports whether base (transitively) extends other, i.e. every
// document visible through base is also visible through other's on-disk
// layout. A subset is considered to extend itself.
func Extends(base, other SubsetID) bool {
	if base == other {
		return true
	}
	for _, s := range extendsClosure[base] {
		if s == other {
			return true
		}
	}
	return false
}

// RequiredFormatsFor resolves the formats a reader must open to serve subset
// view over an on-disk copy, filtering out any format whose reader isn't
// implemented ([Format.Active] is false).
func RequiredFormatsFor(view SubsetID) []FormatID {
	s, ok := byID[view]
	if !ok {
		return nil
	}
	out := make([]FormatID, 0, len(s.Formats))
	for _, fid := range s.Formats {
		f, ok := FormatByID(fid)
		if ok && f.Active {
			out = append(out, fid)
		}
	}
	return out
}
