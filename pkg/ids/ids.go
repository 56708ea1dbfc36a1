// Package ids derives URL- and anchor-safe identifiers from text.
package ids

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fallback is used for headings whose text produces an empty slug.
const Fallback = "heading"

// Slugify lowercases s, keeps letters and digits, turns every run of
// whitespace, hyphens and underscores into one hyphen and drops everything
// else. The result never starts or ends with a hyphen and may be empty.
func Slugify(s string) string {
	lower := cases.Lower(language.Und).String(s)

	var sb strings.Builder
	sb.Grow(len(lower))
	pending := false
	for _, r := range lower {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pending && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pending = false
			sb.WriteRune(r)
		case isSeparator(r):
			pending = true
		}
	}
	return sb.String()
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == '_' || unicode.Is(unicode.Pd, r)
}

// Allocator hands out unique ids within one document. The zero value is not
// usable; call NewAllocator. An Allocator is not safe for concurrent use and
// is meant to live for a single compilation.
type Allocator struct {
	counts map[string]int
	issued map[string]struct{}
}

func NewAllocator() *Allocator {
	return &Allocator{
		counts: make(map[string]int),
		issued: make(map[string]struct{}),
	}
}

// Next returns base the first time it is seen and base-2, base-3, ... after.
// A suffixed candidate that was already handed out (because some heading's
// own text was "intro-2", say) is skipped.
func (a *Allocator) Next(base string) string {
	base = strings.TrimSpace(base)
	for {
		a.counts[base]++
		id := base
		if n := a.counts[base]; n > 1 {
			id = base + "-" + strconv.Itoa(n)
		}
		if _, taken := a.issued[id]; !taken {
			a.issued[id] = struct{}{}
			return id
		}
	}
}
