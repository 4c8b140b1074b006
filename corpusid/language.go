// Package corpusid implements the identifier types used throughout cweb22:
// [Language], [DocId], and [FileId]. It owns parsing, formatting, and the
// on-disk path derivation rules described by the corpus's identifier
// surface.
package corpusid

import "fmt"

// Language is one of the partitions the corpus is sharded by.
//
// Id is the filesystem-facing name used inside shard paths (for example
// "zh_chs"); Tag is the short public name used in dataset identifiers (for
// example "zh"). For most languages the two are identical.
type Language struct {
	Id  string
	Tag string
}

// Known languages, in the order they're documented in the corpus's public
// identifier surface.
var (
	LangDe    = Language{Id: "de", Tag: "de"}
	LangEn    = Language{Id: "en", Tag: "en"}
	LangEs    = Language{Id: "es", Tag: "es"}
	LangFr    = Language{Id: "fr", Tag: "fr"}
	LangIt    = Language{Id: "it", Tag: "it"}
	LangJa    = Language{Id: "ja", Tag: "ja"}
	LangNl    = Language{Id: "nl", Tag: "nl"}
	LangPo    = Language{Id: "po", Tag: "po"}
	LangPt    = Language{Id: "pt", Tag: "pt"}
	LangZhChs = Language{Id: "zh_chs", Tag: "zh"}
	LangOther = Language{Id: "other", Tag: "other-languages"}
)

// Languages lists every known [Language], in declaration order.
var Languages = []Language{
	LangDe, LangEn, LangEs, LangFr, LangIt, LangJa, LangNl, LangPo, LangPt, LangZhChs, LangOther,
}

// LanguageByID finds the [Language] whose filesystem id matches s.
func LanguageByID(s string) (Language, bool) {
	for _, l := range Languages {
		if l.Id == s {
			return l, true
		}
	}
	return Language{}, false
}

// LanguageByTag finds the [Language] whose public tag matches s.
func LanguageByTag(s string) (Language, bool) {
	for _, l := range Languages {
		if l.Tag == s {
			return l, true
		}
	}
	return Language{}, false
}

func (l Language) String() string {
	return fmt.Sprintf("Language(%s)", l.Id)
}
