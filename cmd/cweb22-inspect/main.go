// Command cweb22-inspect is a small developer smoke-tool for poking at a
// local ClueWeb22 dataset copy: it opens a root, prints the subset-
// constrained record count, and optionally looks up one document by
// identifier. It is not the dataset-registry-integrated CLI spec.md
// places out of scope -- this is a debugging convenience analogous to
// claircore's own cmd/cctool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/quay/cweb22/corpus"
	"github.com/quay/cweb22/corpusid"
	"github.com/quay/cweb22/cweb22"
)

func main() {
	var (
		root   = flag.String("root", ".", "dataset root directory")
		view   = flag.String("view", "", "subset view to serve (l, a, b); defaults to the on-disk subset")
		lang   = flag.String("lang", "", "restrict to a single language id (e.g. en)")
		getStr = flag.String("get", "", "look up one document by its clueweb22-... identifier")
	)
	flag.Parse()

	if err := run(*root, *view, *lang, *getStr); err != nil {
		log.Fatal(err)
	}
}

func run(root, view, lang, get string) error {
	ctx := context.Background()

	opts := cweb22.Options{View: corpus.SubsetID(view)}
	if lang != "" {
		l, ok := corpusid.LanguageByID(lang)
		if !ok {
			return fmt.Errorf("unknown language id %q", lang)
		}
		opts.Language = &l
	}

	r, err := cweb22.Open(ctx, os.DirFS(root), opts)
	if err != nil {
		return fmt.Errorf("opening %s: %w", root, err)
	}
	fmt.Printf("count: %d\n", r.Count())

	if get == "" {
		return nil
	}
	id, err := corpusid.Parse(get)
	if err != nil {
		return fmt.Errorf("parsing %q: %w", get, err)
	}
	doc, err := r.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("getting %q: %w", get, err)
	}
	fmt.Printf("url: %s\nlanguage: %s\ntext: %.200s\n", doc.URL, doc.Language, doc.Text)
	return nil
}
