package testsupport

import (
	"context"
	"path/filepath"
	"testing"

	"contentcatalog/internal/config"
	"contentcatalog/internal/history"
)

// NewConfig returns defaults with every path rooted in a fresh temp directory.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.PrimarySource = filepath.Join(base, "your_content_data.csv")
	cfg.Paths.SecondarySource = filepath.Join(base, "Message tracks and length.XLSX")
	cfg.Paths.Output = filepath.Join(base, "src", "data", "staticContent.js")
	cfg.History.Path = filepath.Join(base, ".catalog", "history.db")
	return &cfg
}

// MustOpenHistory opens the history store configured in cfg and closes it when the test ends.
func MustOpenHistory(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(context.Background(), cfg.History.Path)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}
