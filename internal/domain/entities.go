package domain

import "time"

// Document is a single note picked up from the vault.
type Document struct {
	Path       string // absolute filesystem path
	Name       string // filename without the note extension
	Breadcrumb string // ancestor folders joined for display, e.g. "Core > People"
	Content    string // raw text, trimmed
	ModTime    time.Time
}

// Chunk is a fixed-width slice of a document's annotated text, the unit
// that gets embedded and stored.
type Chunk struct {
	ID    string // "{document path}_{index}"
	Index int
	Text  string
}

// SearchHit is the best-scoring chunk of one file, collapsed per path.
type SearchHit struct {
	Path         string   `json:"path"`
	Score        float64  `json:"score"`
	LastModified string   `json:"last_modified"`
	Snippets     []string `json:"snippets"`
}

// SearchResponse is the payload returned for one query.
type SearchResponse struct {
	Query   string      `json:"query"`
	Count   int         `json:"count"`
	Results []SearchHit `json:"results"`
}
