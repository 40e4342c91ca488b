package domain

// SearchResult is one match of a full-text query against the document content.
// Results are transient; the session never stores them.
type SearchResult struct {
	Text      string  `json:"text"`     // the query that matched
	Position  int     `json:"position"` // byte offset into the document text
	Context   string  `json:"context"`  // surrounding window of the original text
	Relevance float64 `json:"relevance"`
}
