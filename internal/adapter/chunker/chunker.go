package chunker

import (
	"fmt"

	"notewell/internal/domain"
)

// ContentDelimiter separates the injected identity header from the
// document content inside the annotated text.
const ContentDelimiter = "--- START OF CONTENT ---"

// DefaultChunkSize is the fixed chunk width in characters.
const DefaultChunkSize = 1000

// FixedChunker slices a document's annotated text into fixed-width
// chunks. Boundaries are purely positional and may split sentences.
type FixedChunker struct {
	size int
}

func NewFixedChunker(size int) *FixedChunker {
	if size <= 0 {
		size = DefaultChunkSize
	}
	return &FixedChunker{size: size}
}

// Header builds the identity header for a document. The name appears
// twice on purpose: it biases embedding similarity toward filename and
// topic matches over raw content.
func Header(doc domain.Document) string {
	return fmt.Sprintf(
		"FILE_NAME: %s\nHOLDER_FOLDERS: %s\nDOCUMENT_SUBJECT: %s\n%s\n",
		doc.Name, doc.Breadcrumb, doc.Name, ContentDelimiter,
	)
}

// Annotate prepends the identity header to the document content.
func Annotate(doc domain.Document) string {
	return Header(doc) + doc.Content
}

// Chunk slices the annotated text of doc into fixed-width pieces.
// Widths are counted in runes, so multibyte text never splits a
// character. Chunk IDs are "{path}_{index}" starting at 0.
func (c *FixedChunker) Chunk(doc domain.Document) []domain.Chunk {
	runes := []rune(Annotate(doc))
	if len(runes) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, 0, (len(runes)+c.size-1)/c.size)
	for start, i := 0, 0; start < len(runes); start, i = start+c.size, i+1 {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, domain.Chunk{
			ID:    fmt.Sprintf("%s_%d", doc.Path, i),
			Index: i,
			Text:  string(runes[start:end]),
		})
	}
	return chunks
}
