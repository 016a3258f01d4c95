package model

import (
	"path"
	"regexp"
	"strings"
)

// File-layout constants. These are load-bearing for every component: the
// loader discovers entities by matching them and the translation store
// indexes uploaded files by the paths they produce.
const (
	metaExt    = ".meta"
	contentExt = ".json"

	// Article bodies use a dedicated extension so unrelated .md files in
	// the tree are never mistaken for content.
	bodyExt = ".mkdown"

	groupContentBase  = "__group__"
	groupContentFile  = groupContentBase + contentExt
	groupMetaFile     = ".group" + metaExt
	articleMetaPrefix = ".article_"
)

// groupTranslationRe matches a group content translation file and captures
// its locale. The bare __group__.json (no locale infix) is the default
// locale and deliberately does not match.
var groupTranslationRe = regexp.MustCompile(`^` + groupContentBase + `\.([a-zA-Z-]{2,5})\` + contentExt + `$`)

// GroupTranslationLocale extracts the locale from a group translation
// filename. It returns DefaultLocale for the bare content file and
// ok=false for files that are not group content at all.
func GroupTranslationLocale(filename string) (locale string, ok bool) {
	if filename == groupContentFile {
		return DefaultLocale, true
	}
	if m := groupTranslationRe.FindStringSubmatch(filename); m != nil {
		return m[1], true
	}
	return "", false
}

// ArticleSlugFromFile returns the article slug for a body file name, and
// ok=false for anything that is not a body file.
func ArticleSlugFromFile(filename string) (string, bool) {
	if !strings.HasSuffix(filename, bodyExt) {
		return "", false
	}
	base := strings.TrimSuffix(filename, bodyExt)
	if base == "" || strings.Contains(base, ".") {
		return "", false
	}
	return base, true
}

func groupTranslationPath(dir, locale string) string {
	if locale == "" || locale == DefaultLocale {
		return joinPath(dir, groupContentFile)
	}
	return joinPath(dir, groupContentBase+"."+locale+contentExt)
}

// joinPath joins store-relative path elements with forward slashes; the
// store adapter resolves them against its root, and the translation store
// indexes them verbatim.
func joinPath(elem ...string) string {
	return path.Join(elem...)
}
