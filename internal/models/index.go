package models

// Occurrence is one appearance of a word in the body text
type Occurrence struct {
	Position    int  `json:"position" yaml:"position"`
	Capitalized bool `json:"capitalized" yaml:"capitalized"`
}

// WordIndex maps a lowercased word to its occurrences in document order
type WordIndex map[string][]Occurrence

// Count returns the number of occurrences recorded for word
func (w WordIndex) Count(word string) int {
	return len(w[word])
}

// KeywordIndex is the set of indexed words in ascending order
type KeywordIndex []string

// FrequencyEntry pairs a word with its occurrence count
type FrequencyEntry struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// FrequencyIndex is ordered by count, highest first
type FrequencyIndex []FrequencyEntry
