package util

import (
	"fmt"
	"strings"
	"unicode"
)

// Slugify derives a URL slug from a competency title: lowercase,
// alphanumeric runs joined by single dashes. The slug is generated
// once on create and kept stable on rename so existing links survive.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress a leading dash

	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}

// SlugWithSuffix builds the candidate used when the base slug is
// already taken: "ujian-akhir-2", "ujian-akhir-3", ...
func SlugWithSuffix(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}
