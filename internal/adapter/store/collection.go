package store

import (
	"fmt"

	"notewell/internal/port"
)

// Collection pairs an embedder with a vector store to provide the
// text-level API the indexer and query aggregator work against: callers
// hand over raw text and the collection embeds it in both directions.
type Collection struct {
	embedder port.Embedder
	store    port.VectorStore
}

func NewCollection(embedder port.Embedder, store port.VectorStore) *Collection {
	return &Collection{embedder: embedder, store: store}
}

// Upsert embeds and stores the records, replacing any with the same ID.
func (c *Collection) Upsert(records []port.Record) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, len(records))
	for i, r := range records {
		texts[i] = r.Document
	}

	vectors, err := c.embedder.Embed(texts)
	if err != nil {
		return fmt.Errorf("embedding failed: %w", err)
	}
	if len(vectors) != len(records) {
		return fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(records))
	}

	items := make([]port.VectorItem, len(records))
	for i, r := range records {
		items[i] = port.VectorItem{
			ID:       r.ID,
			Vector:   vectors[i],
			Document: r.Document,
			Metadata: r.Metadata,
		}
	}
	return c.store.Upsert(items)
}

// Query embeds the text and returns up to k matches by ascending distance.
func (c *Collection) Query(text string, k int) ([]port.Match, error) {
	vectors, err := c.embedder.Embed([]string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding failed: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one text", len(vectors))
	}

	results, err := c.store.Query(vectors[0], k)
	if err != nil {
		return nil, err
	}

	matches := make([]port.Match, len(results))
	for i, r := range results {
		matches[i] = port.Match{
			ID:       r.ID,
			Distance: r.Distance,
			Document: r.Document,
			Metadata: r.Metadata,
		}
	}
	return matches, nil
}

// DeleteByPath removes every chunk stored for the given document path.
func (c *Collection) DeleteByPath(path string) (int, error) {
	ids := c.store.IDsForMetadata("path", path)
	if len(ids) == 0 {
		return 0, nil
	}
	if err := c.store.Delete(ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Count returns the total number of stored records.
func (c *Collection) Count() (int, error) {
	return c.store.Count()
}
