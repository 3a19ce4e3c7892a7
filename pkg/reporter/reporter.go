package reporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/amosWeiskopf/pagewords/internal/models"
	"github.com/amosWeiskopf/pagewords/pkg/utils"
)

// Supported report formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// Reporter handles report generation in various formats
type Reporter struct {
	titleWidth int
}

// New creates a new Reporter instance
func New() *Reporter {
	return &Reporter{
		titleWidth: 80,
	}
}

// Write renders report in the given format to w
func (r *Reporter) Write(w io.Writer, report *models.Report, format string) error {
	out, err := r.GenerateReport(report, format)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// GenerateReport creates a report in the specified format
func (r *Reporter) GenerateReport(report *models.Report, format string) (string, error) {
	switch format {
	case FormatText, "":
		return r.generateText(report), nil
	case FormatJSON:
		return r.generateJSON(report)
	case FormatYAML:
		return r.generateYAML(report)
	case FormatMarkdown:
		return r.generateMarkdown(report), nil
	case FormatHTML:
		return r.generateHTML(report)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// generateText creates the plain text report. The layout is line-exact:
//
//	Links: <count>
//	<link>
//	Top <n> words sorted in alphabetical order, format:[(position, isCapitalized)] :
//	<word> : [(<position>,<Y|N>),...]
//	Top <n> words sorted in frequency order:
//	<word> : <count>
//
// with a blank line before each section header.
func (r *Reporter) generateText(report *models.Report) string {
	var buf bytes.Buffer
	doc := report.Document

	fmt.Fprintf(&buf, "\nLinks: %d\n", len(doc.Links))
	for _, link := range doc.Links {
		fmt.Fprintln(&buf, link)
	}

	fmt.Fprintf(&buf, "\nTop %d words sorted in alphabetical order, format:[(position, isCapitalized)] :\n", report.TopN)
	for _, word := range topKeywords(report) {
		fmt.Fprintf(&buf, "%s : %s\n", word, FormatOccurrences(doc.Words[word]))
	}

	fmt.Fprintf(&buf, "\nTop %d words sorted in frequency order:\n", report.TopN)
	for _, entry := range topFrequency(report) {
		fmt.Fprintf(&buf, "%s : %d\n", entry.Word, entry.Count)
	}

	return buf.String()
}

// FormatOccurrences renders occurrences as [(position,Y|N),...]
func FormatOccurrences(occurrences []models.Occurrence) string {
	parts := make([]string, len(occurrences))
	for i, occ := range occurrences {
		flag := "N"
		if occ.Capitalized {
			flag = "Y"
		}
		parts[i] = fmt.Sprintf("(%d,%s)", occ.Position, flag)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// keywordView is a keyword with its occurrences, for structured formats
type keywordView struct {
	Word        string              `json:"word" yaml:"word"`
	Occurrences []models.Occurrence `json:"occurrences" yaml:"occurrences"`
}

// reportView is the serialized shape of a report
type reportView struct {
	Source     string                  `json:"source" yaml:"source"`
	Title      string                  `json:"title,omitempty" yaml:"title,omitempty"`
	TokenCount int                     `json:"token_count" yaml:"token_count"`
	WordCount  int                     `json:"word_count" yaml:"word_count"`
	TopN       int                     `json:"top_n" yaml:"top_n"`
	Links      []string                `json:"links" yaml:"links"`
	Keywords   []keywordView           `json:"keywords" yaml:"keywords"`
	Frequency  []models.FrequencyEntry `json:"frequency" yaml:"frequency"`
}

func newReportView(report *models.Report) reportView {
	doc := report.Document
	view := reportView{
		Source:     doc.Source,
		Title:      doc.Title,
		TokenCount: doc.TokenCount,
		WordCount:  len(doc.Words),
		TopN:       report.TopN,
		Links:      []string(doc.Links),
		Keywords:   []keywordView{},
		Frequency:  append([]models.FrequencyEntry{}, topFrequency(report)...),
	}
	if view.Links == nil {
		view.Links = []string{}
	}
	for _, word := range topKeywords(report) {
		view.Keywords = append(view.Keywords, keywordView{Word: word, Occurrences: doc.Words[word]})
	}
	return view
}

// generateJSON creates a JSON formatted report
func (r *Reporter) generateJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(newReportView(report), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return string(data) + "\n", nil
}

// generateYAML creates a YAML formatted report
func (r *Reporter) generateYAML(report *models.Report) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(newReportView(report)); err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	return buf.String(), nil
}

// generateMarkdown creates a Markdown formatted report
func (r *Reporter) generateMarkdown(report *models.Report) string {
	var buf bytes.Buffer
	doc := report.Document

	fmt.Fprintf(&buf, "# Word index for %s\n\n", doc.Source)
	if doc.Title != "" {
		fmt.Fprintf(&buf, "*%s*\n\n", utils.TruncateText(doc.Title, r.titleWidth))
	}
	fmt.Fprintf(&buf, "%d tokens, %d distinct words\n\n", doc.TokenCount, len(doc.Words))

	fmt.Fprintf(&buf, "## Links (%d)\n\n", len(doc.Links))
	for _, link := range doc.Links {
		fmt.Fprintf(&buf, "- %s\n", link)
	}
	if len(doc.Links) > 0 {
		fmt.Fprintf(&buf, "\n")
	}

	fmt.Fprintf(&buf, "## Top %d words (alphabetical)\n\n", report.TopN)
	fmt.Fprintf(&buf, "| Word | Occurrences |\n")
	fmt.Fprintf(&buf, "|------|-------------|\n")
	for _, word := range topKeywords(report) {
		fmt.Fprintf(&buf, "| %s | %s |\n", word, FormatOccurrences(doc.Words[word]))
	}
	fmt.Fprintf(&buf, "\n")

	fmt.Fprintf(&buf, "## Top %d words (frequency)\n\n", report.TopN)
	fmt.Fprintf(&buf, "| Word | Count |\n")
	fmt.Fprintf(&buf, "|------|-------|\n")
	for _, entry := range topFrequency(report) {
		fmt.Fprintf(&buf, "| %s | %d |\n", entry.Word, entry.Count)
	}

	return buf.String()
}

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"occurrences": FormatOccurrences,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Word index - {{.View.Source}}</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; max-width: 960px; margin: 0 auto; padding: 20px; color: #333; }
        table { border-collapse: collapse; margin: 1rem 0; }
        th, td { border: 1px solid #ddd; padding: 0.25rem 0.75rem; text-align: left; }
    </style>
</head>
<body>
    <h1>Word index for {{.View.Source}}</h1>
    {{if .View.Title}}<p><em>{{.View.Title}}</em></p>{{end}}

    <h2>Links ({{len .View.Links}})</h2>
    <ul>
        {{range .View.Links}}<li><a href="{{.}}">{{.}}</a></li>
        {{end}}
    </ul>

    <h2>Top {{.View.TopN}} words (alphabetical)</h2>
    <table>
        <tr><th>Word</th><th>Occurrences</th></tr>
        {{range .View.Keywords}}<tr><td>{{.Word}}</td><td>{{occurrences .Occurrences}}</td></tr>
        {{end}}
    </table>

    <h2>Top {{.View.TopN}} words (frequency)</h2>
    <table>
        <tr><th>Word</th><th>Count</th></tr>
        {{range .View.Frequency}}<tr><td>{{.Word}}</td><td>{{.Count}}</td></tr>
        {{end}}
    </table>
</body>
</html>
`))

// generateHTML creates an HTML formatted report
func (r *Reporter) generateHTML(report *models.Report) (string, error) {
	var buf bytes.Buffer
	data := struct{ View reportView }{View: newReportView(report)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

func topKeywords(report *models.Report) models.KeywordIndex {
	return report.Keywords[:clamp(report.TopN, len(report.Keywords))]
}

func topFrequency(report *models.Report) models.FrequencyIndex {
	return report.Frequency[:clamp(report.TopN, len(report.Frequency))]
}

// clamp limits n to [0, limit]
func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
