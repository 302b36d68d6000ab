// Package samples attaches per-language audio sample links to catalog
// records. Sample files are named <Language>.<langId>.mp3, for example
// Akeu.1148.mp3 or Akha.Thailand.3127.mp3.
package samples

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"contentcatalog/internal/catalog"
	"contentcatalog/internal/fieldmap"
	"contentcatalog/internal/logging"
)

// Keys written onto records.
const (
	SampleURLKey = "sampleUrl"
	StableKey    = "stableKey"
)

var samplePattern = regexp.MustCompile(`(?i)\.(\d+)\.mp3$`)

// Index maps language ids to sample file names.
type Index map[string]string

// Scan lists dir and indexes every sample file by language id. Files are
// visited in name order, so the last name wins when two share an id.
func Scan(dir string) (Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read sample directory %s: %w", dir, err)
	}
	index := make(Index)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := samplePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		index[match[1]] = entry.Name()
	}
	return index, nil
}

// Options configures Attach.
type Options struct {
	Dir       string
	URLPrefix string
}

// Stats reports what Attach changed.
type Stats struct {
	Files      int
	Attached   int
	StableKeys int
}

// Attach sets sampleUrl on records whose langId has a sample file and fills
// stableKey from languageEn where it is unset. An unreadable directory is
// logged and leaves records untouched apart from stable keys.
func Attach(records []catalog.Record, opts Options, logger *slog.Logger) Stats {
	logger = logging.NewComponentLogger(logger, "samples")

	var stats Stats
	index, err := Scan(opts.Dir)
	if err != nil {
		hint := "check samples.dir"
		if errors.Is(err, fs.ErrNotExist) {
			hint = "create the directory or clear samples.dir"
		}
		logging.WarnWithContext(logger, "sample directory unavailable", "samples_unavailable",
			logging.String("dir", opts.Dir),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hint),
			logging.String(logging.FieldImpact, "catalog emitted without sample links"),
		)
	}
	stats.Files = len(index)

	for i := range records {
		langID := strings.TrimSpace(records[i].Text(fieldmap.LangIDKey))
		if file, ok := index[langID]; ok && langID != "" {
			records[i].Set(SampleURLKey, catalog.String(sampleURL(opts.URLPrefix, file)))
			stats.Attached++
		}
		if existing := records[i].Text(StableKey); existing == "" {
			if language := records[i].Text(fieldmap.LanguageKey); language != "" {
				records[i].Set(StableKey, catalog.String(language))
				stats.StableKeys++
			}
		}
	}

	logger.Info("audio samples attached",
		logging.Int("files", stats.Files),
		logging.Int("attached", stats.Attached),
		logging.Int("stable_keys", stats.StableKeys),
	)
	return stats
}

func sampleURL(prefix, file string) string {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return "/" + file
	}
	return prefix + "/" + file
}
