package models

// Document is the result of fetching and indexing a single page
type Document struct {
	Source     string
	Title      string
	Links      LinkList
	Words      WordIndex
	TokenCount int // whitespace-separated tokens seen, kept or not
}

// LinkList holds absolute link targets in document order. Duplicates are kept.
type LinkList []string

// Report bundles a document with its derived views for rendering
type Report struct {
	Document  *Document
	Keywords  KeywordIndex
	Frequency FrequencyIndex
	TopN      int
}
