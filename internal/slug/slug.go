// Package slug derives URL-safe identifiers from article titles.
package slug

import (
	gslug "github.com/gosimple/slug"
)

// Make converts a title into a slug: lower-cased, locale-aware diacritics
// stripped, non-alphanumeric runs collapsed to a single hyphen, separators
// trimmed from both ends. Deterministic: identical input always yields the
// identical slug.
//
// Two distinct titles may collide on the same slug when they differ only in
// punctuation. That is accepted here; uniqueness is enforced at the record
// store, never by regenerating the slug.
func Make(title, locale string) string {
	if locale == "" {
		return gslug.Make(title)
	}
	return gslug.MakeLang(title, locale)
}
