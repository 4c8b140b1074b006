package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"
	"strings"

	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
)

// Entry is one row of a format's record-count catalog: a shard identifier
// and the number of records it holds.
type Entry struct {
	FileId corpusid.FileId
	Count  int
}

// Catalog is the authoritative shard listing for one format: shards
// present on disk but absent from the catalog are ignored by every reader
// operation, and vice versa.
type Catalog struct {
	Format  corpus.FormatID
	Entries []Entry // sorted by (language, stream, subdirectory, file)
}

// Load reads every `record_counts/<format>/<lang><ss>_counts.csv` file
// under root for the given format, optionally restricted to one language,
// and returns them merged into lexicographic (language, stream,
// subdirectory, file) order.
//
// encoding/csv is used for the row parsing: no third-party CSV library
// appears anywhere in the example corpus this reader is grounded on, so
// this is one of the few deliberately stdlib-only pieces (see DESIGN.md).
func Load(root fs.FS, format corpus.FormatID, lang *corpusid.Language) (*Catalog, error) {
	dir := "record_counts/" + string(format)
	entries, err := fs.ReadDir(root, dir)
	if err != nil {
		if lang == nil || errors.Is(err, fs.ErrNotExist) {
			// A format with no record_counts directory at all contributes
			// nothing; callers fall back to another format's counts.
			return &Catalog{Format: format}, nil
		}
		return nil, fmt.Errorf("catalog: reading %s: %w", dir, err)
	}

	var all []Entry
	for _, de := range entries {
		name := de.Name()
		l, stream, ok := parseCountsFileName(name)
		if !ok {
			continue
		}
		if lang != nil && l.Id != lang.Id {
			continue
		}
		rows, err := loadCountsFile(root, dir+"/"+name, l, stream)
		if err != nil {
			return nil, err
		}
		all = append(all, rows...)
	}

	sort.Slice(all, func(i, j int) bool { return lessFileId(all[i].FileId, all[j].FileId) })
	return &Catalog{Format: format, Entries: all}, nil
}

func lessFileId(a, b corpusid.FileId) bool {
	switch {
	case a.Language.Id != b.Language.Id:
		return a.Language.Id < b.Language.Id
	case a.Stream != b.Stream:
		return a.Stream < b.Stream
	case a.Subdirectory != b.Subdirectory:
		return a.Subdirectory < b.Subdirectory
	default:
		return a.File < b.File
	}
}

// parseCountsFileName reverses layout.CountsPath's "<lang><ss>_counts.csv"
// naming to recover the language and stream it describes.
func parseCountsFileName(name string) (corpusid.Language, int, bool) {
	base := strings.TrimSuffix(name, "_counts.csv")
	if base == name || len(base) < 3 {
		return corpusid.Language{}, 0, false
	}
	streamStr := base[len(base)-2:]
	langID := base[:len(base)-2]
	stream, err := strconv.Atoi(streamStr)
	if err != nil {
		return corpusid.Language{}, 0, false
	}
	lang, ok := corpusid.LanguageByID(langID)
	if !ok {
		return corpusid.Language{}, 0, false
	}
	return lang, stream, true
}

func loadCountsFile(root fs.FS, p string, lang corpusid.Language, stream int) ([]Entry, error) {
	f, err := root.Open(p)
	if err != nil {
		return nil, fmt.Errorf("catalog: opening %s: %w", p, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 2
	r.ReuseRecord = true

	prefix := fmt.Sprintf("%s%02d", lang.Id, stream)
	var out []Entry
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: reading %s: %w", p, err)
		}
		tag, countStr := row[0], row[1]
		subdir, file, ok := parseTagSuffix(tag, prefix)
		if !ok {
			return nil, fmt.Errorf("catalog: %s: unexpected tag %q for prefix %q", p, tag, prefix)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, fmt.Errorf("catalog: %s: bad count %q: %w", p, countStr, err)
		}
		out = append(out, Entry{
			FileId: corpusid.FileId{Language: lang, Stream: stream, Subdirectory: subdir, File: file},
			Count:  count,
		})
	}
	return out, nil
}

// parseTagSuffix splits a catalog row tag "<prefix><dd>-<ff>" given the
// already-known "<lang><ss>" prefix.
func parseTagSuffix(tag, prefix string) (subdir, file int, ok bool) {
	rest, ok := strings.CutPrefix(tag, prefix)
	if !ok || len(rest) != 5 || rest[2] != '-' {
		return 0, 0, false
	}
	subdir, err1 := strconv.Atoi(rest[:2])
	file, err2 := strconv.Atoi(rest[3:])
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return subdir, file, true
}
