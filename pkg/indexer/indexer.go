// Package indexer turns a fetched HTML page into a link list and a word
// index, and derives the alphabetical and frequency views used for
// reporting.
//
// Tokens are the whitespace-separated pieces of the page's body text. Every
// token consumes a position, including tokens that are later discarded. A
// token is kept when, after ASCII punctuation is trimmed from both ends, it is
// non-empty and starts with an ASCII letter. Words are keyed in lower case and
// remember whether their first letter was a capital.
package indexer

import (
	"log/slog"
	"strings"

	"github.com/amosWeiskopf/pagewords/internal/logger"
	"github.com/amosWeiskopf/pagewords/internal/models"
	"github.com/amosWeiskopf/pagewords/pkg/extractor"
	"github.com/amosWeiskopf/pagewords/pkg/utils"
)

// Text sources for the word index
const (
	ExtractBody     = "body"
	ExtractReadable = "readable"
)

// Options controls how a page is indexed
type Options struct {
	// Extraction selects the text that is tokenized: the whole visible body
	// (ExtractBody, the default) or the main content only (ExtractReadable).
	Extraction string
}

// Indexer builds documents from raw HTML
type Indexer struct {
	extractor *extractor.Extractor
	logger    *slog.Logger
}

// New creates an Indexer
func New() *Indexer {
	return &Indexer{
		extractor: extractor.New(),
		logger:    logger.WithComponent("indexer"),
	}
}

// Index parses htmlContent and returns a freshly built document. Relative
// links are resolved against source when it is an absolute URL. Index never
// fails: malformed markup is parsed leniently.
func (ix *Indexer) Index(source, htmlContent string, opts Options) *models.Document {
	doc := &models.Document{
		Source: source,
		Links:  models.LinkList{},
		Words:  models.WordIndex{},
	}

	parsed, err := ix.extractor.Parse(htmlContent)
	if err != nil {
		ix.logger.Warn("parse failed", "source", source, "error", err)
		return doc
	}

	doc.Title = ix.extractor.ExtractTitle(parsed)
	doc.Links = ix.extractor.ExtractLinks(parsed, source)

	text := ""
	if opts.Extraction == ExtractReadable {
		text, err = ix.extractor.ExtractReadableText(htmlContent, source)
		if err != nil {
			ix.logger.Debug("readable extraction failed", "source", source, "error", err)
		}
		if strings.TrimSpace(text) == "" {
			ix.logger.Info("no readable content, using body text", "source", source)
			text = ""
		}
	}
	if text == "" {
		text = ix.extractor.ExtractBodyText(parsed)
	}

	doc.Words, doc.TokenCount = IndexText(text)
	ix.logger.Debug("indexed page",
		"source", source,
		"links", len(doc.Links),
		"tokens", doc.TokenCount,
		"words", len(doc.Words),
	)
	return doc
}

// IndexText tokenizes text on runs of whitespace and records every kept
// token. It returns the index and the number of tokens seen.
func IndexText(text string) (models.WordIndex, int) {
	words := models.WordIndex{}
	tokens := strings.Fields(text)
	for position, token := range tokens {
		word, ok := normalizeToken(token)
		if !ok {
			continue
		}
		key := strings.ToLower(word)
		words[key] = append(words[key], models.Occurrence{
			Position:    position,
			Capitalized: utils.StartsWithUpper(word),
		})
	}
	return words, len(tokens)
}

// normalizeToken trims punctuation and reports whether the token is a word
func normalizeToken(token string) (string, bool) {
	word := utils.TrimPunctuation(token)
	if !utils.StartsWithLetter(word) {
		return "", false
	}
	return word, true
}
