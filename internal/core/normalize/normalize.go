// Package normalize cleans free-text search input before it reaches a query
// Pipeline order
// 1 drop invalid UTF-8
// 2 Unicode NFKC normalization
// 3 remove format runes (ZWJ, ZWNJ, BOM)
// 4 width fold fullwidth forms to ASCII
// 5 keep letters, digits, apostrophe and space
// 6 trim surrounding spaces
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// Search returns s reduced to characters that are safe inside a regex
// case is preserved; exact author lookups depend on it
func Search(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}

	return strings.TrimSpace(strings.Map(keep, ns))
}

func keep(r rune) rune {
	switch {
	case r == '\'' || r == ' ':
		return r
	case unicode.IsLetter(r), unicode.IsDigit(r):
		return r
	default:
		return -1
	}
}
