package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"notewell/config"
	"notewell/internal/adapter/embedding"
	"notewell/internal/adapter/store"
)

// openCollection wires embedder and vector store into the collection
// both components run against. A failure here is fatal to the command:
// nothing works without the store.
func openCollection(cfg *config.Config) (*store.Collection, func(), error) {
	embedder, err := embedding.New(cfg.Embedding)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	storePath := cfg.StorePath(vault)
	if err := os.MkdirAll(filepath.Dir(storePath), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	st, err := store.NewBoltVectorStore(storePath, cfg.Store.Collection, embedder.Dimension())
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() { st.Close() }
	return store.NewCollection(embedder, st), closeFn, nil
}
