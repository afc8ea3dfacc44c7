// Package normalize reduces human-written dish names to comparison keys.
//
// Sources spell the same dish with different casing, punctuation, spacing
// and with or without the letter ё. Key maps all of those spellings to one
// string so that lookups across sources agree.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	unsafeChars = regexp.MustCompile(`[^\p{L}\p{N}\p{M}_\s-]`)
	separators  = regexp.MustCompile(`[-\s]+`)
)

// ImageExtensions lists the archive entry extensions treated as dish images.
var ImageExtensions = []string{".jpg", ".jpeg", ".png"}

// Key returns the normalized comparison key of text. Key is idempotent:
// Key(Key(s)) == Key(s).
func Key(text string) string {
	s := Collapse(text)
	if s == "" {
		return ""
	}

	s = cases.Lower(language.Russian).String(s)

	// Transformers carry state; build a fresh chain per call. NFC first so
	// decomposed ё and й compare equal to their composed forms.
	t := transform.Chain(
		norm.NFC,
		runes.Remove(runes.Predicate(isPunct)),
		runes.Map(foldYo),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}

	return Collapse(out)
}

// Collapse trims text and collapses every Unicode whitespace run, including
// no-break spaces, to a single space.
func Collapse(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Tokens splits a key on whitespace into a set of distinct words.
func Tokens(key string) map[string]struct{} {
	fields := strings.Fields(key)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Overlap counts the words shared by two token sets.
func Overlap(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for w := range a {
		if _, ok := b[w]; ok {
			n++
		}
	}
	return n
}

// Stem strips a trailing image extension (any case) from a filename and
// trims the result.
func Stem(filename string) string {
	lower := strings.ToLower(filename)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			filename = filename[:len(filename)-len(ext)]
			break
		}
	}
	return strings.TrimSpace(filename)
}

// IsImage reports whether filename carries one of ImageExtensions.
func IsImage(filename string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range ImageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// SafeFilename turns a dish name into a file name that survives any file
// system: characters other than letters, digits, underscores, spaces and
// dashes become underscores, then dash and space runs collapse into one
// underscore. ext is appended verbatim.
func SafeFilename(name, ext string) string {
	s := unsafeChars.ReplaceAllString(name, "_")
	s = separators.ReplaceAllString(s, "_")
	return s + ext
}

func isPunct(r rune) bool {
	if r == '_' || unicode.IsSpace(r) {
		return false
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
}

func foldYo(r rune) rune {
	if r == 'ё' {
		return 'е'
	}
	return r
}
