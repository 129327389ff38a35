package store

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.etcd.io/bbolt"

	"notewell/internal/port"
)

// BoltVectorStore implements port.VectorStore using BoltDB for persistence.
// One bucket per collection name. Queries are brute-force cosine distance
// over an in-memory cache of all vectors.
type BoltVectorStore struct {
	db        *bbolt.DB
	bucket    []byte
	dimension int

	mu      sync.RWMutex
	records map[string]storedRecord
}

type storedRecord struct {
	Vector   []float32         `json:"v"`
	Document string            `json:"d"`
	Metadata map[string]string `json:"m,omitempty"`
}

// NewBoltVectorStore opens (or creates) the store at path and loads the
// named collection into memory. An open failure is fatal to the caller:
// there is no degraded mode without the store.
func NewBoltVectorStore(path, collection string, dimension int) (*BoltVectorStore, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open vector store at %s: %w", path, err)
	}

	s := &BoltVectorStore{
		db:        db,
		bucket:    []byte(collection),
		dimension: dimension,
		records:   make(map[string]storedRecord),
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create collection %s: %w", collection, err)
	}

	if err := s.load(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to load collection %s: %w", collection, err)
	}

	return s, nil
}

// load reads all records of the collection into memory.
func (s *BoltVectorStore) load() error {
	return s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var rec storedRecord
			if err := json.Unmarshal(v, &rec); err != nil {
				return nil // skip corrupted entries
			}
			s.records[string(k)] = rec
			return nil
		})
	})
}

// Upsert adds or replaces records keyed by item ID.
func (s *BoltVectorStore) Upsert(items []port.VectorItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return fmt.Errorf("collection bucket not found")
		}

		for _, item := range items {
			if len(item.Vector) != s.dimension {
				return fmt.Errorf("vector dimension mismatch: expected %d, got %d", s.dimension, len(item.Vector))
			}

			rec := storedRecord{
				Vector:   item.Vector,
				Document: item.Document,
				Metadata: item.Metadata,
			}
			data, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(item.ID), data); err != nil {
				return err
			}
			s.records[item.ID] = rec
		}
		return nil
	})
}

// Query returns the k nearest records by cosine distance, ascending.
func (s *BoltVectorStore) Query(vector []float32, k int) ([]port.VectorResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(vector) != s.dimension {
		return nil, fmt.Errorf("query dimension mismatch: expected %d, got %d", s.dimension, len(vector))
	}
	if len(s.records) == 0 {
		return nil, nil
	}

	results := make([]port.VectorResult, 0, len(s.records))
	for id, rec := range s.records {
		results = append(results, port.VectorResult{
			ID:       id,
			Distance: cosineDistance(vector, rec.Vector),
			Document: rec.Document,
			Metadata: rec.Metadata,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})

	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// Delete removes records by their IDs.
func (s *BoltVectorStore) Delete(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b == nil {
			return nil
		}
		for _, id := range ids {
			if err := b.Delete([]byte(id)); err != nil {
				return err
			}
			delete(s.records, id)
		}
		return nil
	})
}

// Count returns the number of records in the collection.
func (s *BoltVectorStore) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// IDsForMetadata returns the IDs of all records whose metadata has the
// given key/value pair.
func (s *BoltVectorStore) IDsForMetadata(key, value string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []string
	for id, rec := range s.records {
		if rec.Metadata[key] == value {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Close closes the underlying database.
func (s *BoltVectorStore) Close() error {
	return s.db.Close()
}

// cosineDistance is 1 - cosine similarity, so lower means more similar.
func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return 1
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
