// Package normalize folds free-form applicant text into a canonical key for enum matching
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization
// 3 Case folding
// 4 Remove format characters (zero-width joiners, BOM)
// 5 Width fold fullwidth to ASCII
// 6 Collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformer chains are stateful, so each caller borrows its own
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			cases.Fold(),
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Fold returns the canonical matching key of s, so "GOOD", " good " and "ｇｏｏｄ" all fold to "good"
func Fold(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	out, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		out = strings.ToLower(s)
	}
	return strings.Join(strings.Fields(out), " ")
}

// Equal reports whether a and b fold to the same key
func Equal(a, b string) bool { return Fold(a) == Fold(b) }

// OneOf reports whether s folds to any of the options
func OneOf(s string, options ...string) bool {
	k := Fold(s)
	for _, o := range options {
		if k == Fold(o) {
			return true
		}
	}
	return false
}
