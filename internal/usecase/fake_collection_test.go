package usecase

import (
	"fmt"
	"sort"
	"strings"

	"notewell/internal/port"
)

// fakeCollection is an in-memory port.Collection for usecase tests.
// Query returns canned matches; Upsert records everything it was given.
type fakeCollection struct {
	records map[string]port.Record
	matches []port.Match
	upserts int
	failOn  string // substring of a record ID that makes Upsert fail
}

func newFakeCollection() *fakeCollection {
	return &fakeCollection{records: make(map[string]port.Record)}
}

func (f *fakeCollection) Upsert(records []port.Record) error {
	for _, r := range records {
		if f.failOn != "" && strings.Contains(r.ID, f.failOn) {
			return fmt.Errorf("simulated store failure")
		}
	}
	for _, r := range records {
		f.records[r.ID] = r
	}
	f.upserts++
	return nil
}

func (f *fakeCollection) Query(text string, k int) ([]port.Match, error) {
	if k < len(f.matches) {
		return f.matches[:k], nil
	}
	return f.matches, nil
}

func (f *fakeCollection) DeleteByPath(path string) (int, error) {
	removed := 0
	for id, r := range f.records {
		if r.Metadata["path"] == path {
			delete(f.records, id)
			removed++
		}
	}
	return removed, nil
}

func (f *fakeCollection) Count() (int, error) {
	return len(f.records), nil
}

func (f *fakeCollection) ids() []string {
	ids := make([]string, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
