package corpus

import (
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"
)

// Version identifies the on-disk copy's subset and release.
type Version struct {
	Subset SubsetID
	Major  int
	Minor  int
}

func (v Version) String() string {
	return fmt.Sprintf("version_%s_%d.%d", v.Subset, v.Major, v.Minor)
}

// ReadVersion finds and parses the single `version_<subset>_<major>.<minor>`
// marker file at the root of a dataset directory.
func ReadVersion(root fs.FS) (Version, error) {
	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return Version{}, fmt.Errorf("corpus: reading dataset root: %w", err)
	}
	var marker string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "version_") {
			marker = e.Name()
			break
		}
	}
	if marker == "" {
		return Version{}, fmt.Errorf("corpus: no version_* marker file found")
	}
	return parseVersionName(marker)
}

func parseVersionName(name string) (Version, error) {
	base := path.Base(name)
	rest, ok := strings.CutPrefix(base, "version_")
	if !ok {
		return Version{}, fmt.Errorf("corpus: malformed version marker %q", name)
	}
	subsetStr, rest, ok := strings.Cut(rest, "_")
	if !ok {
		return Version{}, fmt.Errorf("corpus: malformed version marker %q", name)
	}
	majStr, minStr, ok := strings.Cut(rest, ".")
	if !ok {
		return Version{}, fmt.Errorf("corpus: malformed version marker %q", name)
	}
	if _, ok := SubsetByID(SubsetID(subsetStr)); !ok {
		return Version{}, fmt.Errorf("corpus: unknown subset %q in version marker %q", subsetStr, name)
	}
	maj, err := strconv.Atoi(majStr)
	if err != nil {
		return Version{}, fmt.Errorf("corpus: bad major version in %q: %w", name, err)
	}
	min, err := strconv.Atoi(minStr)
	if err != nil {
		return Version{}, fmt.Errorf("corpus: bad minor version in %q: %w", name, err)
	}
	return Version{Subset: SubsetID(subsetStr), Major: maj, Minor: min}, nil
}
