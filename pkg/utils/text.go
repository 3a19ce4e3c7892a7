package utils

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// asciiPunct is the ASCII punctuation set stripped from token edges
const asciiPunct = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// TrimPunctuation removes leading and trailing ASCII punctuation from a token.
// Punctuation inside the token ("don't", "e-mail") is kept.
func TrimPunctuation(token string) string {
	return strings.Trim(token, asciiPunct)
}

// StartsWithLetter reports whether s begins with an ASCII letter
func StartsWithLetter(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// StartsWithUpper reports whether s begins with an ASCII capital letter
func StartsWithUpper(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// CleanText collapses runs of whitespace into single spaces
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// NormalizeURL normalizes a URL for consistent comparison. Only the parts
// that cannot name a different resource change: surrounding space, the
// fragment, and the case of scheme and host. The path is kept byte for byte.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}

	// Remove fragment
	u.Fragment = ""
	u.RawFragment = ""

	// Scheme and host are case-insensitive
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	return u.String()
}

// IsValidURL checks if a string is an absolute http or https URL
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// TruncateText truncates text to a maximum length, preserving word boundaries
func TruncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	for maxLength > 0 && !utf8.RuneStart(text[maxLength]) {
		maxLength--
	}
	truncated := text[:maxLength]
	lastSpace := strings.LastIndex(truncated, " ")

	if lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "..."
}
