// Package slug turns display names into URL-safe identifiers and keeps them unique per table.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	stripped   = regexp.MustCompile(`[^a-z0-9\p{Z}\s_-]+`)
	separators = regexp.MustCompile(`[\p{Z}\s_-]+`)
)

// Make lower-cases s, folds accents and Arabic letters to ASCII, drops punctuation and joins
// the remaining words with single hyphens. The result only holds [a-z0-9-], never starts or
// ends with a hyphen, and may be empty.
func Make(s string) string {
	s = transliterate(s)

	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, _ = transform.String(t, s)

	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "@", " at ")
	s = stripped.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

func transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if replacement, ok := arabic[r]; ok {
			b.WriteString(replacement)
			continue
		}
		if r >= '٠' && r <= '٩' {
			b.WriteRune('0' + (r - '٠'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var arabic = map[rune]string{
	'ا': "a", 'أ': "a", 'إ': "i", 'آ': "aa", 'ب': "b", 'ت': "t", 'ث': "th",
	'ج': "j", 'ح': "h", 'خ': "kh", 'د': "d", 'ذ': "th", 'ر': "r", 'ز': "z",
	'س': "s", 'ش': "sh", 'ص': "s", 'ض': "d", 'ط': "t", 'ظ': "z", 'ع': "a",
	'غ': "gh", 'ف': "f", 'ق': "q", 'ك': "k", 'ل': "l", 'م': "m", 'ن': "n",
	'ه': "h", 'ة': "h", 'و': "w", 'ؤ': "o", 'ي': "y", 'ى': "a", 'ئ': "e",
	'ء': "",
}
