package reporter

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/amosWeiskopf/pagewords/internal/models"
)

func sampleReport(topN int) *models.Report {
	doc := &models.Document{
		Source: "https://example.com/",
		Title:  "Example",
		Links:  models.LinkList{"https://example.com/a", "https://other.org/"},
		Words: models.WordIndex{
			"hello": {{Position: 0, Capitalized: true}, {Position: 2, Capitalized: true}},
			"world": {{Position: 1}},
			"rust":  {{Position: 3, Capitalized: true}},
		},
		TokenCount: 4,
	}
	return &models.Report{
		Document: doc,
		Keywords: models.KeywordIndex{"hello", "rust", "world"},
		Frequency: models.FrequencyIndex{
			{Word: "hello", Count: 2},
			{Word: "world", Count: 1},
			{Word: "rust", Count: 1},
		},
		TopN: topN,
	}
}

func TestTextReport(t *testing.T) {
	out, err := New().GenerateReport(sampleReport(2), FormatText)
	require.NoError(t, err)

	want := "\n" +
		"Links: 2\n" +
		"https://example.com/a\n" +
		"https://other.org/\n" +
		"\n" +
		"Top 2 words sorted in alphabetical order, format:[(position, isCapitalized)] :\n" +
		"hello : [(0,Y),(2,Y)]\n" +
		"rust : [(3,Y)]\n" +
		"\n" +
		"Top 2 words sorted in frequency order:\n" +
		"hello : 2\n" +
		"world : 1\n"
	assert.Equal(t, want, out)
}

func TestTextReportZeroAndNegativeTopN(t *testing.T) {
	for _, topN := range []int{0, -3} {
		out, err := New().GenerateReport(sampleReport(topN), FormatText)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		assert.Equal(t, []string{
			"Links: 2",
			"https://example.com/a",
			"https://other.org/",
			"",
			"Top " + strconv.Itoa(topN) + " words sorted in alphabetical order, format:[(position, isCapitalized)] :",
			"",
			"Top " + strconv.Itoa(topN) + " words sorted in frequency order:",
		}, lines)
	}
}

func TestTextReportTopNLargerThanIndex(t *testing.T) {
	out, err := New().GenerateReport(sampleReport(100), FormatText)
	require.NoError(t, err)
	assert.Contains(t, out, "world : [(1,N)]\n")
	assert.Contains(t, out, "rust : 1\n")
}

func TestTextReportEmptyDocument(t *testing.T) {
	report := &models.Report{Document: &models.Document{Words: models.WordIndex{}}, TopN: 5}
	out, err := New().GenerateReport(report, FormatText)
	require.NoError(t, err)
	assert.Equal(t, "\nLinks: 0\n\nTop 5 words sorted in alphabetical order, format:[(position, isCapitalized)] :\n\nTop 5 words sorted in frequency order:\n", out)
}

func TestFormatOccurrences(t *testing.T) {
	assert.Equal(t, "[]", FormatOccurrences(nil))
	assert.Equal(t, "[(5,N)]", FormatOccurrences([]models.Occurrence{{Position: 5}}))
	assert.Equal(t, "[(0,Y),(9,N)]", FormatOccurrences([]models.Occurrence{{Position: 0, Capitalized: true}, {Position: 9}}))
}

func TestJSONReport(t *testing.T) {
	out, err := New().GenerateReport(sampleReport(1), FormatJSON)
	require.NoError(t, err)

	var view reportView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	assert.Equal(t, "https://example.com/", view.Source)
	assert.Equal(t, "Example", view.Title)
	assert.Equal(t, 3, view.WordCount)
	assert.Equal(t, []string{"https://example.com/a", "https://other.org/"}, view.Links)
	require.Len(t, view.Keywords, 1)
	assert.Equal(t, "hello", view.Keywords[0].Word)
	assert.Len(t, view.Keywords[0].Occurrences, 2)
	assert.Equal(t, []models.FrequencyEntry{{Word: "hello", Count: 2}}, view.Frequency)
}

func TestJSONReportEmptyListsAreArrays(t *testing.T) {
	report := &models.Report{Document: &models.Document{}, TopN: 3}
	out, err := New().GenerateReport(report, FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, out, `"links": []`)
	assert.Contains(t, out, `"keywords": []`)
	assert.Contains(t, out, `"frequency": []`)
}

func TestYAMLReport(t *testing.T) {
	out, err := New().GenerateReport(sampleReport(3), FormatYAML)
	require.NoError(t, err)

	var view reportView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, 3, view.TopN)
	require.Len(t, view.Keywords, 3)
	assert.Equal(t, "world", view.Keywords[2].Word)
	assert.Equal(t, 2, view.Frequency[0].Count)
}

func TestMarkdownReport(t *testing.T) {
	out, err := New().GenerateReport(sampleReport(2), FormatMarkdown)
	require.NoError(t, err)

	assert.Contains(t, out, "# Word index for https://example.com/")
	assert.Contains(t, out, "*Example*")
	assert.Contains(t, out, "## Links (2)")
	assert.Contains(t, out, "- https://other.org/")
	assert.Contains(t, out, "| hello | [(0,Y),(2,Y)] |")
	assert.Contains(t, out, "| hello | 2 |")
	assert.NotContains(t, out, "| rust | 1 |")
}

func TestMarkdownReportLongTitleStaysValidUTF8(t *testing.T) {
	report := sampleReport(1)
	report.Document.Title = "a" + strings.Repeat("é", 60)

	out, err := New().GenerateReport(report, FormatMarkdown)
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, "...*")
}

func TestHTMLReportEscapes(t *testing.T) {
	report := sampleReport(1)
	report.Document.Title = "<script>alert(1)</script>"

	out, err := New().GenerateReport(report, FormatHTML)
	require.NoError(t, err)
	assert.Contains(t, out, `<a href="https://other.org/">`)
	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.Contains(t, out, "[(0,Y),(2,Y)]")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := New().GenerateReport(sampleReport(1), "pdf")
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New().Write(&buf, sampleReport(1), FormatText))
	assert.True(t, strings.HasPrefix(buf.String(), "\nLinks: 2\n"))

	assert.Error(t, New().Write(&buf, sampleReport(1), "pdf"))
}
