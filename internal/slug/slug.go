// Package slug provides name normalization helpers shared by every layer
// that maps display names onto the filesystem or remote locale codes.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	nonWord  = regexp.MustCompile(`[^\w\s-]`)
	collapse = regexp.MustCompile(`[-_\s]+`)
)

// Make converts a display name into a filesystem- and URL-safe identifier:
// Unicode is folded to its closest ASCII form, anything that is not a word
// character, whitespace or hyphen is dropped, and whitespace runs become
// single hyphens. Make is idempotent: Make(Make(s)) == Make(s).
func Make(s string) string {
	s = asciiFold(s)
	s = nonWord.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return collapse.ReplaceAllString(s, "-")
}

// asciiFold decomposes accented characters and strips everything that does
// not survive as plain ASCII.
func asciiFold(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if r > unicode.MaxASCII || unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ToRemoteLocale converts a local locale code to the help-desk system's
// convention, which lowercases the region part ("en-US" -> "en-us").
func ToRemoteLocale(locale string) string {
	return strings.ToLower(locale)
}

// ToLocalLocale converts a remote locale code back to the local directory
// convention, which upcases the region part ("en-us" -> "en-US").
// Locales without a region pass through lowercased.
func ToLocalLocale(locale string) string {
	lang, region, ok := strings.Cut(locale, "-")
	if !ok {
		return strings.ToLower(locale)
	}
	return strings.ToLower(lang) + "-" + strings.ToUpper(region)
}
