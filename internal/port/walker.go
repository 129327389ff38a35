package port

// FileWalker lists the note files under a root directory.
type FileWalker interface {
	Walk(root string) ([]string, error)
}
