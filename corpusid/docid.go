package corpusid

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxSubdirectory and MaxFile bound the subdirectory and file components of
// every identifier. Values above these are rejected at parse time.
const (
	MaxSubdirectory = 80
	MaxFile         = 100
)

// FileId identifies one shard file: a (language, stream, subdirectory,
// file) tuple. It's a DocId with the record index dropped.
type FileId struct {
	Language      Language
	Stream        int
	Subdirectory  int
	File          int
}

// DocId identifies a single logical document: a FileId plus its record
// index within that file.
type DocId struct {
	FileId
	Doc int
}

// String renders the canonical "clueweb22-<lang><ss><dd>-<ff>-<ddddd>" form.
func (d DocId) String() string {
	return fmt.Sprintf("clueweb22-%s%02d%02d-%02d-%05d",
		d.Language.Id, d.Stream, d.Subdirectory, d.File, d.Doc)
}

// String renders the FileId prefix of a DocId, "<lang><ss><dd>-<ff>".
func (f FileId) String() string {
	return fmt.Sprintf("%s%02d%02d-%02d", f.Language.Id, f.Stream, f.Subdirectory, f.File)
}

// Parse decodes a textual document identifier.
//
// Parsing is total over the corpus's identifier surface: every malformed or
// out-of-range input produces a [MalformedIdentifierError], and every valid
// input round-trips through [DocId.String].
func Parse(s string) (DocId, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return DocId{}, malformed(s, "expected 4 '-'-separated segments, got %d", len(parts))
	}
	if parts[0] != "clueweb22" {
		return DocId{}, malformed(s, "first segment must be %q", "clueweb22")
	}

	lang, stream, subdir, err := parseLangStreamSubdir(parts[1])
	if err != nil {
		return DocId{}, malformed(s, "%s", err)
	}

	file, err := parseFixedDigits(parts[2], 2)
	if err != nil {
		return DocId{}, malformed(s, "bad file segment: %s", err)
	}
	doc, err := parseFixedDigits(parts[3], 5)
	if err != nil {
		return DocId{}, malformed(s, "bad doc segment: %s", err)
	}

	if subdir > MaxSubdirectory {
		return DocId{}, malformed(s, "subdirectory %d exceeds max %d", subdir, MaxSubdirectory)
	}
	if file > MaxFile {
		return DocId{}, malformed(s, "file %d exceeds max %d", file, MaxFile)
	}

	return DocId{
		FileId: FileId{
			Language:     lang,
			Stream:       stream,
			Subdirectory: subdir,
			File:         file,
		},
		Doc: doc,
	}, nil
}

// parseLangStreamSubdir splits the second identifier segment, e.g.
// "zh_chs0012", into its Language, stream, and subdirectory parts. The
// trailing four digits are always stream+subdirectory; everything before
// that is the language id.
func parseLangStreamSubdir(seg string) (Language, int, int, error) {
	if len(seg) < 5 {
		return Language{}, 0, 0, fmt.Errorf("segment %q too short to hold language+stream+subdirectory", seg)
	}
	digits := seg[len(seg)-4:]
	langID := seg[:len(seg)-4]

	lang, ok := LanguageByID(langID)
	if !ok {
		return Language{}, 0, 0, fmt.Errorf("unknown language %q", langID)
	}
	stream, err := parseFixedDigits(digits[:2], 2)
	if err != nil {
		return Language{}, 0, 0, fmt.Errorf("bad stream: %w", err)
	}
	subdir, err := parseFixedDigits(digits[2:], 2)
	if err != nil {
		return Language{}, 0, 0, fmt.Errorf("bad subdirectory: %w", err)
	}
	return lang, stream, subdir, nil
}

func parseFixedDigits(s string, width int) (int, error) {
	if len(s) != width {
		return 0, fmt.Errorf("expected %d digits, got %q", width, s)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit in %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n, nil
}
