// Package extract derives stable matching keys (numeric indexes, normalized
// titles) from the heterogeneous free-text identifiers carried by video
// filenames, URLs and authored exercise titles. All functions are total over
// string input: absence of a result is an explicit return value, never an
// error.
package extract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// leadingIndex matches a numeric index token anchored at the start of a
// string or path segment: "12.", "10.1 ", "3". Numbers appearing mid-string
// (set counts, muscle counts) deliberately do not match.
var leadingIndex = regexp.MustCompile(`^(\d+(?:\.\d+)?)(?:[.)\s]|$)`)

// leadingIndexPrefix is the cleanup variant: it also consumes the trailing
// dot and whitespace so the remainder is a display title.
var leadingIndexPrefix = regexp.MustCompile(`^\d+(?:\.\d+)?\.?\s*`)

// DefaultStoplist holds the trailing administrative annotations authors
// append to work-in-progress titles. Single letters mark the demonstrating
// coach, the phrases mark follow-up work.
var DefaultStoplist = []string{
	"a refaire",
	"a corriger le nom",
	"changer la video",
	"x",
	"f",
	"h",
}

// accentFolder decomposes characters and strips nonspacing marks, folding
// accented Latin letters to their base form.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NumericIndex scans text for a leading numeric index token and returns it
// as a decimal. For URLs and paths each segment is considered in turn, so
// "Video/dos/10.1 Rowing.mp4" yields 10.1. The second return is false when
// no leading numeric token exists anywhere.
func NumericIndex(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	if i := strings.IndexByte(text, '?'); i >= 0 {
		text = text[:i]
	}
	for _, seg := range strings.Split(text, "/") {
		if decoded, err := url.PathUnescape(seg); err == nil {
			seg = decoded
		}
		m := leadingIndex.FindStringSubmatch(strings.TrimSpace(seg))
		if m == nil {
			continue
		}
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			// Overflow or junk the regexp let through counts as "not found".
			continue
		}
		return n, true
	}
	return 0, false
}

// NormalizeTitle produces the canonical matching key for a title: case
// folded, accents stripped, punctuation folded to spaces, whitespace
// collapsed. It is deterministic and locale independent, so it is safe to
// use both as an equality key and as fuzzy-matching input.
func NormalizeTitle(text string) string {
	folded, _, err := transform.String(accentFolder, text)
	if err != nil {
		folded = text
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CleanDisplayTitle strips the leading numeric index token and any trailing
// stoplist annotations from a title, returning the trimmed remainder. A nil
// stoplist uses DefaultStoplist. This is a display concern: matching always
// goes through NumericIndex and NormalizeTitle instead.
func CleanDisplayTitle(text string, stoplist []string) string {
	if stoplist == nil {
		stoplist = DefaultStoplist
	}
	cleaned := leadingIndexPrefix.ReplaceAllString(strings.TrimSpace(text), "")
	words := strings.Fields(cleaned)

	for len(words) > 0 {
		trimmed := false
		for _, stop := range stoplist {
			stopWords := strings.Fields(stop)
			n := len(stopWords)
			if n == 0 || n > len(words) {
				continue
			}
			match := true
			for i := 0; i < n; i++ {
				if NormalizeTitle(words[len(words)-n+i]) != NormalizeTitle(stopWords[i]) {
					match = false
					break
				}
			}
			if match {
				words = words[:len(words)-n]
				trimmed = true
				break
			}
		}
		if !trimmed {
			break
		}
	}
	return strings.Join(words, " ")
}

// StripExtension removes a trailing file extension from a filename-derived
// title, leaving embedded dots (as in "10.1") intact when they are part of
// a leading index rather than an extension.
func StripExtension(filename string) string {
	i := strings.LastIndexByte(filename, '.')
	if i <= 0 {
		return filename
	}
	ext := filename[i+1:]
	if ext == "" || strings.ContainsAny(ext, " /") {
		return filename
	}
	for _, r := range ext {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return filename
		}
	}
	return filename[:i]
}
