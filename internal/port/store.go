package port

// VectorStore persists embedding vectors together with the chunk text and
// metadata they were produced from.
type VectorStore interface {
	// Upsert adds or replaces stored vectors keyed by item ID.
	Upsert(items []VectorItem) error

	// Query finds the k nearest vectors, ordered by ascending distance.
	Query(vector []float32, k int) ([]VectorResult, error)

	// Delete removes vectors by their IDs.
	Delete(ids []string) error

	// Count returns the number of vectors in the store.
	Count() (int, error)

	// IDsForMetadata returns the IDs of all stored vectors whose
	// metadata carries the given key/value pair.
	IDsForMetadata(key, value string) []string
}

// VectorItem is a vector to be stored.
type VectorItem struct {
	ID       string
	Vector   []float32
	Document string            // the embedded chunk text
	Metadata map[string]string // path, last_modified
}

// VectorResult is one nearest-neighbor match.
type VectorResult struct {
	ID       string
	Distance float64 // cosine distance, lower is more similar
	Document string
	Metadata map[string]string
}

// Collection is the text-level view of the vector store used by the
// indexer and the query aggregator: callers hand over raw text and the
// collection embeds it on the way in and out.
type Collection interface {
	// Upsert embeds and stores the records, replacing any with the same ID.
	Upsert(records []Record) error

	// Query embeds the text and returns up to k matches by ascending distance.
	Query(text string, k int) ([]Match, error)

	// DeleteByPath removes every chunk whose metadata path equals path.
	// Returns the number of records removed.
	DeleteByPath(path string) (int, error)

	// Count returns the total number of stored records.
	Count() (int, error)
}

// Record is the persisted unit, one per chunk.
type Record struct {
	ID       string
	Document string
	Metadata map[string]string
}

// Match is one retrieval candidate.
type Match struct {
	ID       string
	Distance float64
	Document string
	Metadata map[string]string
}
