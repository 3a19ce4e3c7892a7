package indexer

import (
	"sort"

	"github.com/amosWeiskopf/pagewords/internal/models"
)

// KeywordIndex returns the indexed words in ascending byte order
func KeywordIndex(words models.WordIndex) models.KeywordIndex {
	keys := make(models.KeywordIndex, 0, len(words))
	for word := range words {
		keys = append(keys, word)
	}
	sort.Strings(keys)
	return keys
}

// FrequencyIndex returns every word with its occurrence count, most frequent
// first. Callers must not rely on the order of words with equal counts; it is
// currently alphabetical so that repeated runs print the same report.
func FrequencyIndex(words models.WordIndex) models.FrequencyIndex {
	entries := make(models.FrequencyIndex, 0, len(words))
	for word, occurrences := range words {
		entries = append(entries, models.FrequencyEntry{Word: word, Count: len(occurrences)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count == entries[j].Count {
			return entries[i].Word < entries[j].Word
		}
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// BuildReport derives the sorted views of doc for rendering
func BuildReport(doc *models.Document, topN int) *models.Report {
	return &models.Report{
		Document:  doc,
		Keywords:  KeywordIndex(doc.Words),
		Frequency: FrequencyIndex(doc.Words),
		TopN:      topN,
	}
}
