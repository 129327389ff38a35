package usecase

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"notewell/config"
	"notewell/internal/domain"
	"notewell/internal/port"
)

const snippetFallbackWidth = 90

// SearchUseCase turns raw nearest-neighbor hits into a small, confident,
// one-per-file result set. It holds no mutable state: every call reads
// the collection and computes purely from the response.
type SearchUseCase struct {
	collection port.Collection
	root       string
	policy     config.SearchConfig
}

func NewSearchUseCase(collection port.Collection, root string, policy config.SearchConfig) *SearchUseCase {
	return &SearchUseCase{
		collection: collection,
		root:       root,
		policy:     policy,
	}
}

// Search retrieves an oversampled candidate set, collapses candidates to
// the best-scoring chunk per file, applies the filename boost, and
// returns at most TopK results below the confidence threshold. An empty
// result set is a normal outcome, not an error.
func (u *SearchUseCase) Search(query string) (*domain.SearchResponse, error) {
	matches, err := u.collection.Query(query, u.policy.Candidates)
	if err != nil {
		return nil, fmt.Errorf("store query failed: %w", err)
	}

	words := strings.Fields(strings.ToLower(query))

	type candidate struct {
		score    float64
		document string
		modified string
	}
	best := make(map[string]candidate)

	for _, m := range matches {
		fullPath := m.Metadata["path"]
		if fullPath == "" {
			continue
		}

		display, err := filepath.Rel(u.root, fullPath)
		if err != nil {
			display = fullPath
		}

		score := m.Distance
		if u.filenameMatches(fullPath, words) {
			score -= u.policy.FilenameBoost
		}

		if prev, seen := best[display]; !seen || score < prev.score {
			best[display] = candidate{
				score:    score,
				document: m.Document,
				modified: m.Metadata["last_modified"],
			}
		}
	}

	hits := make([]domain.SearchHit, 0, len(best))
	for display, c := range best {
		hits = append(hits, domain.SearchHit{
			Path:         display,
			Score:        round3(c.score),
			LastModified: c.modified,
			Snippets:     []string{snippet(c.document)},
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score < hits[j].Score
		}
		return hits[i].Path < hits[j].Path
	})

	if len(hits) > u.policy.TopK {
		hits = hits[:u.policy.TopK]
	}

	confident := make([]domain.SearchHit, 0, len(hits))
	for _, h := range hits {
		if h.Score < u.policy.ScoreThreshold {
			confident = append(confident, h)
		}
	}

	return &domain.SearchResponse{
		Query:   query,
		Count:   len(confident),
		Results: confident,
	}, nil
}

// filenameMatches reports whether any query word longer than the minimum
// length is a substring of the candidate's filename.
func (u *SearchUseCase) filenameMatches(fullPath string, words []string) bool {
	filename := strings.ToLower(filepath.Base(fullPath))
	for _, w := range words {
		if utf8.RuneCountInString(w) > u.policy.MinWordLength && strings.Contains(filename, w) {
			return true
		}
	}
	return false
}

// snippet derives a short preview from a stored chunk: the text after
// the last content delimiter, cut to the first line and the first
// sentence fragment. Very short first lines (a bare heading, say) fall
// back to a flattened prefix of the content.
func snippet(text string) string {
	clean := text
	if i := strings.LastIndex(clean, "---"); i >= 0 {
		clean = clean[i+len("---"):]
	}
	clean = strings.TrimSpace(clean)

	s := clean
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[:i]
	}
	if i := strings.Index(s, ". "); i >= 0 {
		s = s[:i]
	}

	if utf8.RuneCountInString(s) < 10 && utf8.RuneCountInString(clean) > 15 {
		flat := []rune(strings.ReplaceAll(clean, "\n", " "))
		if len(flat) > snippetFallbackWidth {
			flat = flat[:snippetFallbackWidth]
		}
		s = string(flat) + "..."
	}
	return s
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
