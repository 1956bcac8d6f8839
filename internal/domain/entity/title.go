package entity

import "strings"

// SanitizeTitle reduces a video title to a string safe to use as a
// directory name. Only ASCII letters, digits and "-_.() " survive.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case strings.ContainsRune("-_.() ", r):
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
