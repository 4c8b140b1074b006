// Package jpg is reserved for the screenshot record format. The format is
// not yet active (see corpus.Format.Active): the corpus does not yet
// document the screenshot tree's layout or compression, so no reader is
// implemented. This package exists so the format's eventual shape has a
// home without disturbing the rest of the module.
package jpg

import "github.com/quay/cweb22/record"

// New is not implemented: JPG has no documented on-disk layout yet.
func New() record.Iter[record.JpgRecord] {
	return func(yield func(record.JpgRecord, error) bool) {
		yield(record.JpgRecord{}, errNotImplemented)
	}
}

var errNotImplemented = notImplementedError{}

type notImplementedError struct{}

func (notImplementedError) Error() string {
	return "jpg: format reserved, reader not implemented"
}
