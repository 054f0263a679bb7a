package royale

import "strings"

// ValidateTag reports whether tag looks like a real player tag: after
// stripping '#', 3–15 characters, digits and uppercase letters only, with
// at least one letter.
func ValidateTag(tag string) bool {
	clean := strings.ReplaceAll(tag, "#", "")
	if len(clean) < 3 || len(clean) > 15 {
		return false
	}
	hasLetter := false
	for _, r := range clean {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'A' && r <= 'Z':
			hasLetter = true
		default:
			return false
		}
	}
	return hasLetter
}

// EncodeTag strips '#' and URL-encodes the tag for use in a path segment.
func EncodeTag(tag string) string {
	return "%23" + strings.ReplaceAll(tag, "#", "")
}
