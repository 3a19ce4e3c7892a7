package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTrimPunctuation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello", "Hello"},
		{"world!", "world"},
		{"Hello,", "Hello"},
		{"\"quoted\"", "quoted"},
		{"(parens)...", "parens"},
		{"don't", "don't"},
		{"e-mail.", "e-mail"},
		{"...", ""},
		{"—dash—", "—dash—"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TrimPunctuation(tt.in))
		})
	}
}

func TestStartsWith(t *testing.T) {
	assert.True(t, StartsWithLetter("abc"))
	assert.True(t, StartsWithLetter("Zed"))
	assert.False(t, StartsWithLetter("1st"))
	assert.False(t, StartsWithLetter("école"))
	assert.False(t, StartsWithLetter(""))

	assert.True(t, StartsWithUpper("Rust"))
	assert.False(t, StartsWithUpper("rust"))
	assert.False(t, StartsWithUpper("Élan"))
	assert.False(t, StartsWithUpper(""))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a b c", CleanText("  a \n\t b   c "))
	assert.Equal(t, "", CleanText(" \n "))
}

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com/path/", NormalizeURL(" HTTPS://Example.COM/path/#top "))
	assert.Equal(t, "https://example.com/", NormalizeURL("https://example.com/"))
	assert.Equal(t, "https://example.com/Docs", NormalizeURL("https://EXAMPLE.com/Docs#intro"))
	assert.NotEqual(t, NormalizeURL("https://x.com/docs/"), NormalizeURL("https://x.com/docs"))
	assert.Equal(t, "https://example.com/a?q=1", NormalizeURL("https://example.com/a?q=1"))
	assert.Equal(t, "not a url", NormalizeURL("not a url"))
}

func TestIsValidURL(t *testing.T) {
	assert.True(t, IsValidURL("https://example.com"))
	assert.True(t, IsValidURL("http://localhost:8080/x"))
	assert.False(t, IsValidURL("ftp://example.com"))
	assert.False(t, IsValidURL("example.com"))
	assert.False(t, IsValidURL("/relative"))
}

func TestTruncateText(t *testing.T) {
	assert.Equal(t, "short", TruncateText("short", 10))
	assert.Equal(t, "hello...", TruncateText("hello world", 8))

	multibyte := "a" + strings.Repeat("é", 60)
	got := TruncateText(multibyte, 80)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "a"+strings.Repeat("é", 39)+"...", got)
}
