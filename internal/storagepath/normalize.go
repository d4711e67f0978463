// Package storagepath turns free-text labels and user-authored path templates into
// filesystem-safe storage paths.
package storagepath

import "strings"

const (
	// MaxLength is the longest path segment or template accepted, in characters.
	MaxLength = 63
	// MinLength is the shortest path segment or template accepted, in characters.
	MinLength = 3

	fallbackSegment = "birim"
)

var turkishFold = strings.NewReplacer(
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ü", "u", "Ü", "u",
	"ş", "s", "Ş", "s",
	"ç", "c", "Ç", "c",
)

// Normalize maps a label such as a department name to a canonical path segment.
//
// Turkish letters are folded to ASCII, the result is lowercased, spaces become
// hyphens and hyphen runs collapse to one. Exactly one "/" or "-" is stripped
// from each end, so "/-abc-/" keeps its inner hyphens as "-abc-". The result is
// cut to MaxLength runes; a hyphen left at the cut is dropped as well, which
// can make the result one rune shorter than MaxLength. Short results are
// padded with "-birim".
func Normalize(label string) string {
	p := strings.ToLower(turkishFold.Replace(label))
	p = strings.ReplaceAll(p, " ", "-")

	parts := strings.Split(p, "-")
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	p = strings.Join(kept, "-")

	p = trimOne(p)

	if r := []rune(p); len(r) > MaxLength {
		// cutting can expose a hyphen at the new end
		p = strings.TrimSuffix(string(r[:MaxLength]), "-")
	}

	switch n := len([]rune(p)); {
	case n == 0:
		return fallbackSegment
	case n < MinLength:
		return p + "-" + fallbackSegment
	}
	return p
}

func trimOne(p string) string {
	if strings.HasPrefix(p, "/") || strings.HasPrefix(p, "-") {
		p = p[1:]
	}
	if strings.HasSuffix(p, "/") || strings.HasSuffix(p, "-") {
		p = p[:len(p)-1]
	}
	return p
}
