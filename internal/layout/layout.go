// Package layout derives on-disk shard and offset-sidecar paths from
// [corpusid.FileId] values, applying the corpus's one documented path
// defect (the outlink format's "zh_chs/zh" spelling, see [ShardPath]).
package layout

import (
	"fmt"
	"path"
	"strings"

	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
)

// BasePath returns the extension-less shard path for id under format,
// relative to that format's <format-id>/ directory of a dataset root:
//
//	<lang>/<lang><ss>/<lang><ss><dd>/<lang><ss><dd>-<ff>
//
// For the outlink format, the "zh_chs" directory component is rewritten to
// "zh", matching the corpus's on-disk quirk: outlink shards live under
// outlink/zh_chs/zh00/... rather than outlink/zh_chs/zh_chs00/....
func BasePath(f corpus.FormatID, id corpusid.FileId) string {
	lang := id.Language.Id
	streamDir := fmt.Sprintf("%s%02d", lang, id.Stream)
	subdirDir := fmt.Sprintf("%s%02d%02d", lang, id.Stream, id.Subdirectory)
	tag := fmt.Sprintf("%s%02d%02d-%02d", lang, id.Stream, id.Subdirectory, id.File)

	base := path.Join(lang, streamDir, subdirDir, tag)
	if f == corpus.OUTLINK && lang == corpusid.LangZhChs.Id {
		base = applyOutlinkZhDefect(base, lang)
	}
	return base
}

// applyOutlinkZhDefect rewrites only the "zh_chs<ss>" stream directory
// component down to "zh<ss>", leaving the leading "zh_chs" language
// directory, the "zh_chs<ss><dd>" subdirectory component, and the trailing
// shard tag untouched. This is exactly the substitution
// "zh_chs/zh_chs" -> "zh_chs/zh" applied once, string-replace style: only
// the second path component drops the "_chs" suffix.
func applyOutlinkZhDefect(base, lang string) string {
	parts := strings.Split(base, "/")
	if len(parts) != 4 {
		return base
	}
	parts[1] = "zh" + strings.TrimPrefix(parts[1], lang)
	return strings.Join(parts, "/")
}

// ShardPath returns the full shard file path for id under format f.
func ShardPath(f corpus.Format, id corpusid.FileId) string {
	return BasePath(f.ID, id) + f.ShardExt
}

// OffsetPath returns the offset-sidecar path for id under format f, or ""
// if the format has no sidecar (see [corpus.Format.HasOffsetSidecar]).
func OffsetPath(f corpus.Format, id corpusid.FileId) string {
	if !f.HasOffsetSidecar() {
		return ""
	}
	return BasePath(f.ID, id) + f.OffsetExt
}

// CountsPath returns the record-count catalog path for format f and the
// (language, stream) pair: record_counts/<format-id>/<lang><ss>_counts.csv.
func CountsPath(f corpus.FormatID, lang corpusid.Language, stream int) string {
	return path.Join("record_counts", string(f), fmt.Sprintf("%s%02d_counts.csv", lang.Id, stream))
}

// JaOffsetRunOnDefect is the one hard-coded shard path whose `.warc.offset`
// sidecar is missing the final newline between its last two offsets. See
// [corpusid] is not the right package for this -- it's an offset-reader
// concern -- but the path constant lives here alongside the rest of the
// known-defects table so every layout/offset quirk is in one place.
const JaOffsetRunOnDefect = "ja/ja00/ja0009/ja0009-57.warc"
