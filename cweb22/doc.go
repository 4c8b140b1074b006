// Package cweb22 is the public reader facade over a ClueWeb22 dataset
// root: it composes the corpusid, catalog, sparse, format, align, and plan
// packages into streaming and random-access read APIs, managing scoped
// acquisition of the shard file handles each operation needs.
package cweb22
