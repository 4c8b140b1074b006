// Package corpus holds the corpus's static domain model: the record
// [Format]s, the [Subset] extension graph, and the on-disk [Version]
// marker. None of these depend on any particular open reader; they're
// computed once and shared.
package corpus

// Compression names the container compression a Format's shard files use.
type Compression int

const (
	GZIP Compression = iota
	ZIP
)

func (c Compression) String() string {
	switch c {
	case GZIP:
		return "gzip"
	case ZIP:
		return "zip"
	default:
		return "unknown"
	}
}

// FormatID names one of the corpus's parallel record-format trees.
type FormatID string

const (
	TXT     FormatID = "txt"
	HTML    FormatID = "html"
	INLINK  FormatID = "inlink"
	OUTLINK FormatID = "outlink"
	VDOM    FormatID = "vdom"
	JPG     FormatID = "jpg"
)

// Format describes one record-format tree: its shard and offset-sidecar
// extensions, its compression, and (for ZIP-compressed formats) the
// extension of the single member inside each shard's zip archive.
//
// Active is false for formats whose readers aren't implemented (JPG is
// reserved for future screenshot support); such formats are excluded from
// every subset's required-formats list.
type Format struct {
	ID         FormatID
	ShardExt   string
	OffsetExt  string // empty if the format has no offset sidecar
	Compress   Compression
	InnerExt   string // ZIP-only: extension of the member inside each shard
	Active     bool
}

// Formats is the corpus's format table, in the order given by the on-disk
// layout contract.
var Formats = []Format{
	{ID: TXT, ShardExt: ".json.gz", OffsetExt: ".offset", Compress: GZIP, Active: true},
	{ID: HTML, ShardExt: ".warc.gz", OffsetExt: ".warc.offset", Compress: GZIP, Active: true},
	{ID: INLINK, ShardExt: ".json.gz", OffsetExt: ".offset", Compress: GZIP, Active: true},
	{ID: OUTLINK, ShardExt: ".json.gz", OffsetExt: ".offset", Compress: GZIP, Active: true},
	{ID: VDOM, ShardExt: ".zip", Compress: ZIP, InnerExt: ".bin", Active: true},
	{ID: JPG, Active: false},
}

// FormatByID looks up a Format by its ID.
func FormatByID(id FormatID) (Format, bool) {
	for _, f := range Formats {
		if f.ID == id {
			return f, true
		}
	}
	return Format{}, false
}

// HasOffsetSidecar reports whether shards of this format ship a `.offset`
// style sidecar file at all (ZIP-compressed formats like VDOM do not --
// each zip member is independently addressable by name).
func (f Format) HasOffsetSidecar() bool {
	return f.OffsetExt != ""
}
