// Package xio provides the scoped-acquisition helper used everywhere
// cweb22 opens shard files or inner compressed streams: a stack of
// [io.Closer]s that releases in reverse acquisition order on every exit
// path, normal or not.
package xio

import "io"

// Scope is a LIFO stack of closers. Zero value is ready to use.
type Scope struct {
	closers []io.Closer
}

// Defer registers c to be closed when the Scope closes, before everything
// registered before it (reverse acquisition order, mirroring how N parallel
// format readers must release their shard handles).
func (s *Scope) Defer(c io.Closer) {
	if c != nil {
		s.closers = append(s.closers, c)
	}
}

// Close releases every registered closer, most-recently-registered first,
// and returns the first error encountered (after still attempting to close
// the rest).
func (s *Scope) Close() error {
	var first error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	s.closers = nil
	return first
}
