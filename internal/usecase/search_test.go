package usecase

import (
	"math"
	"strings"
	"testing"

	"notewell/config"
	"notewell/internal/port"
)

func testPolicy() config.SearchConfig {
	return config.SearchConfig{
		Candidates:     20,
		TopK:           5,
		FilenameBoost:  0.7,
		ScoreThreshold: 1.2,
		MinWordLength:  2,
	}
}

func match(path, text string, distance float64) port.Match {
	return port.Match{
		ID:       path + "_0",
		Distance: distance,
		Document: text,
		Metadata: map[string]string{
			"path":          path,
			"last_modified": "2026-08-01T10:00:00Z",
		},
	}
}

func newTestSearcher(matches ...port.Match) *SearchUseCase {
	coll := newFakeCollection()
	coll.matches = matches
	return NewSearchUseCase(coll, "/vault", testPolicy())
}

func TestSearchFilenameBoost(t *testing.T) {
	u := newTestSearcher(
		match("/vault/Notes/Meeting.md", "Discussed budget.\nNext steps: none.", 1.0),
		match("/vault/Notes/Groceries.md", "Buy milk and eggs for the week ahead.", 1.3),
	)

	resp, err := u.Search("meeting budget")
	if err != nil {
		t.Fatal(err)
	}

	if resp.Count != 1 {
		t.Fatalf("expected 1 confident result, got %d", resp.Count)
	}
	r := resp.Results[0]
	if r.Path != "Notes/Meeting.md" {
		t.Errorf("expected display path Notes/Meeting.md, got %s", r.Path)
	}
	// Boost is exactly 0.7 off the native distance.
	if math.Abs(r.Score-0.3) > 1e-9 {
		t.Errorf("expected boosted score 0.3, got %f", r.Score)
	}
	if r.LastModified != "2026-08-01T10:00:00Z" {
		t.Errorf("unexpected last_modified: %s", r.LastModified)
	}
}

func TestSearchNoBoostForShortOrMissingWords(t *testing.T) {
	u := newTestSearcher(
		match("/vault/md.md", "short name note with enough text", 1.0),
	)

	// "md" has length 2, not > 2, so no boost applies and 1.0 < 1.2 passes.
	resp, err := u.Search("md")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 {
		t.Fatalf("expected 1 result, got %d", resp.Count)
	}
	if resp.Results[0].Score != 1.0 {
		t.Errorf("expected unboosted score 1.0, got %f", resp.Results[0].Score)
	}
}

func TestSearchCollapsesChunksPerFile(t *testing.T) {
	u := newTestSearcher(
		match("/vault/a.md", "first chunk of the note, quite similar", 0.5),
		port.Match{
			ID:       "/vault/a.md_1",
			Distance: 0.3,
			Document: "second chunk, even more similar content",
			Metadata: map[string]string{"path": "/vault/a.md", "last_modified": "2026-08-01T10:00:00Z"},
		},
	)

	resp, err := u.Search("similar")
	if err != nil {
		t.Fatal(err)
	}

	if resp.Count != 1 {
		t.Fatalf("expected chunks collapsed to one result, got %d", resp.Count)
	}
	if resp.Results[0].Score != 0.3 {
		t.Errorf("expected the lower score retained, got %f", resp.Results[0].Score)
	}
	if !strings.Contains(resp.Results[0].Snippets[0], "second chunk") {
		t.Errorf("snippet should come from the best chunk, got %q", resp.Results[0].Snippets[0])
	}
}

func TestSearchThresholdAndLimit(t *testing.T) {
	matches := []port.Match{
		match("/vault/a.md", "content of note a goes here", 0.1),
		match("/vault/b.md", "content of note b goes here", 0.2),
		match("/vault/c.md", "content of note c goes here", 0.3),
		match("/vault/d.md", "content of note d goes here", 0.4),
		match("/vault/e.md", "content of note e goes here", 0.5),
		match("/vault/f.md", "content of note f goes here", 0.6),
		match("/vault/g.md", "content of note g goes here", 1.5),
	}
	u := newTestSearcher(matches...)

	resp, err := u.Search("content")
	if err != nil {
		t.Fatal(err)
	}

	if len(resp.Results) > 5 {
		t.Errorf("expected at most 5 results, got %d", len(resp.Results))
	}
	for _, r := range resp.Results {
		if r.Score >= 1.2 {
			t.Errorf("result above confidence threshold returned: %f", r.Score)
		}
	}
	for i := 1; i < len(resp.Results); i++ {
		if resp.Results[i].Score < resp.Results[i-1].Score {
			t.Error("results not ordered by ascending score")
		}
	}
}

func TestSearchNoConfidentResults(t *testing.T) {
	u := newTestSearcher(
		match("/vault/far.md", "unrelated content entirely", 1.9),
	)

	resp, err := u.Search("no good match")
	if err != nil {
		t.Fatal(err)
	}

	if resp.Count != 0 {
		t.Errorf("expected count 0, got %d", resp.Count)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected empty results, got %v", resp.Results)
	}
	if resp.Query != "no good match" {
		t.Errorf("response should echo the query, got %q", resp.Query)
	}
}

func TestSnippetStripsHeader(t *testing.T) {
	text := "FILE_NAME: Meeting\nHOLDER_FOLDERS: Notes\nDOCUMENT_SUBJECT: Meeting\n--- START OF CONTENT ---\nDiscussed budget. Next steps: none."
	s := snippet(text)
	if s != "Discussed budget" {
		t.Errorf("expected first sentence fragment, got %q", s)
	}
}

func TestSnippetShortFirstLineFallback(t *testing.T) {
	text := "--- START OF CONTENT ---\n# Plan\nThe plan has many moving parts and needs a long preview to make sense."
	s := snippet(text)

	if !strings.HasSuffix(s, "...") {
		t.Errorf("expected fallback snippet with ellipsis, got %q", s)
	}
	if strings.Contains(s, "\n") {
		t.Errorf("fallback snippet should collapse newlines, got %q", s)
	}
	if !strings.Contains(s, "The plan has many moving parts") {
		t.Errorf("fallback should preview the content, got %q", s)
	}
}

func TestSnippetWithoutDelimiter(t *testing.T) {
	// Chunks past the first carry no header; the whole text is content.
	s := snippet("plain continuation text of a later chunk. And more after that.")
	if s != "plain continuation text of a later chunk" {
		t.Errorf("unexpected snippet: %q", s)
	}
}

func TestSearchScoreRounding(t *testing.T) {
	u := newTestSearcher(
		match("/vault/x.md", "note content that is long enough", 0.123456),
	)

	resp, err := u.Search("note")
	if err != nil {
		t.Fatal(err)
	}
	if resp.Results[0].Score != 0.123 {
		t.Errorf("expected score rounded to 3 decimals, got %f", resp.Results[0].Score)
	}
}
