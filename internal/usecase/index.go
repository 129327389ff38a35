package usecase

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"notewell/internal/adapter/chunker"
	"notewell/internal/adapter/fs"
	"notewell/internal/domain"
	"notewell/internal/port"
)

// BreadcrumbSeparator joins ancestor folder names for display.
const BreadcrumbSeparator = " > "

// IndexUseCase walks the vault and upserts context-annotated chunks
// into the vector collection.
type IndexUseCase struct {
	collection port.Collection
	walker     port.FileWalker
	chunker    *chunker.FixedChunker
	extension  string
}

func NewIndexUseCase(collection port.Collection, walker port.FileWalker, chk *chunker.FixedChunker, extension string) *IndexUseCase {
	return &IndexUseCase{
		collection: collection,
		walker:     walker,
		chunker:    chk,
		extension:  extension,
	}
}

// IndexReport summarizes one indexing run. Per-file failures are
// collected here instead of aborting the run.
type IndexReport struct {
	FilesIndexed  int
	FilesSkipped  int // empty after trimming
	ChunksCreated int
	StoreRecords  int // total records in the collection after the run
	Errors        []string
}

// Run indexes every note under root. Files are processed one at a time;
// a failure on one file is recorded and the walk continues. Records for
// files deleted outside this run are intentionally left in place.
// progress, when non-nil, is called after each file with the number of
// files handled so far and the total found by the walk.
func (u *IndexUseCase) Run(root string, progress func(processed, total int)) (*IndexReport, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	paths, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk vault: %w", err)
	}

	report := &IndexReport{}
	for i, path := range paths {
		chunks, err := u.indexFile(root, path)
		switch {
		case err != nil:
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", filepath.Base(path), err))
		case chunks == 0:
			report.FilesSkipped++
		default:
			report.FilesIndexed++
			report.ChunksCreated += chunks
		}
		if progress != nil {
			progress(i+1, len(paths))
		}
	}

	total, err := u.collection.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count records: %w", err)
	}
	report.StoreRecords = total

	return report, nil
}

// IndexFile indexes a single note, replacing its previous chunks through
// the deterministic chunk IDs. Returns the number of chunks written;
// zero means the file was empty and skipped.
func (u *IndexUseCase) IndexFile(root, path string) (int, error) {
	return u.indexFile(root, path)
}

// RemoveFile deletes every stored chunk of the given note.
func (u *IndexUseCase) RemoveFile(path string) (int, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, err
	}
	return u.collection.DeleteByPath(abs)
}

func (u *IndexUseCase) indexFile(root, path string) (int, error) {
	doc, err := u.loadDocument(root, path)
	if err != nil {
		return 0, err
	}
	if doc.Content == "" {
		return 0, nil
	}

	chunks := u.chunker.Chunk(doc)

	meta := map[string]string{
		"path":          doc.Path,
		"last_modified": doc.ModTime.Format(time.RFC3339),
	}
	records := make([]port.Record, len(chunks))
	for i, c := range chunks {
		records[i] = port.Record{
			ID:       c.ID,
			Document: c.Text,
			Metadata: meta,
		}
	}

	if err := u.collection.Upsert(records); err != nil {
		return 0, fmt.Errorf("upsert failed: %w", err)
	}
	return len(records), nil
}

// loadDocument reads a note and derives its identity: logical name from
// the filename and breadcrumb from the folders between root and file.
func (u *IndexUseCase) loadDocument(root, path string) (domain.Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return domain.Document{}, err
	}

	content, err := fs.ReadFile(abs)
	if err != nil {
		return domain.Document{}, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return domain.Document{}, err
	}

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return domain.Document{}, err
	}

	return domain.Document{
		Path:       abs,
		Name:       strings.TrimSuffix(filepath.Base(abs), u.extension),
		Breadcrumb: breadcrumb(rel),
		Content:    strings.TrimSpace(content),
		ModTime:    info.ModTime(),
	}, nil
}

// breadcrumb returns the folder segments of a relative path joined for
// display, excluding the filename itself.
func breadcrumb(rel string) string {
	dir := filepath.Dir(rel)
	if dir == "." {
		return ""
	}
	return strings.Join(strings.Split(dir, string(filepath.Separator)), BreadcrumbSeparator)
}
