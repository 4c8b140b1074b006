// Package catalog reads the corpus's two auxiliary file families: the
// per-shard `.offset` sidecars (see [ReadOffsets]) and the per-format
// record-count CSVs (see [Catalog]).
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quay/cweb22/internal/layout"
)

// ReadOffsets parses a shard's offset sidecar: one decimal integer per
// line, giving the byte offset of each record's gzip member within the
// shard. The returned slice is monotone non-decreasing and has one entry
// per record in the shard.
//
// shardPath is the shard's own path (not the sidecar's): it's used only to
// detect the one known sidecar defect, a shard whose offset file is
// missing the separating newline on its final line so that the last two
// 10-digit offsets run together as one 20-character line.
func ReadOffsets(r io.Reader, shardPath string) ([]int64, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	quirked := hasRunOnDefect(shardPath)
	var offsets []int64
	for sc.Scan() {
		line := sc.Text()
		if quirked && len(line) > 11 {
			a, b, err := splitRunOnLine(line)
			if err != nil {
				return nil, err
			}
			offsets = append(offsets, a, b)
			continue
		}
		n, err := strconv.ParseInt(line, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("catalog: bad offset line %q: %w", line, err)
		}
		offsets = append(offsets, n)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("catalog: reading offsets: %w", err)
	}
	return offsets, nil
}

// hasRunOnDefect reports whether shardPath, with or without its ".gz"
// extension, is the one hard-coded shard known to have a malformed final
// offset line.
func hasRunOnDefect(shardPath string) bool {
	return strings.TrimSuffix(shardPath, ".gz") == layout.JaOffsetRunOnDefect
}

// splitRunOnLine recovers the two offsets concatenated into one line by the
// documented ja0009-57 sidecar defect: the line is split exactly in half.
func splitRunOnLine(line string) (int64, int64, error) {
	mid := len(line) / 2
	a, err := strconv.ParseInt(line[:mid], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("catalog: splitting run-on offset line %q: %w", line, err)
	}
	b, err := strconv.ParseInt(line[mid:], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("catalog: splitting run-on offset line %q: %w", line, err)
	}
	return a, b, nil
}
