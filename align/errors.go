package align

import "fmt"

// AlignmentMismatchError reports that two required-format records at the
// same positional index disagree on a field the corpus treats as fatal
// (doc_id, or a URL mismatch that isn't the documented TXT truncation
// defect). It is fatal to the iterator.
type AlignmentMismatchError struct {
	Index int
	Field string
	Msg   string
}

func (e *AlignmentMismatchError) Error() string {
	return fmt.Sprintf("align: record %d: %s mismatch: %s", e.Index, e.Field, e.Msg)
}

func mismatch(index int, field, format string, args ...any) error {
	return &AlignmentMismatchError{Index: index, Field: field, Msg: fmt.Sprintf(format, args...)}
}
