package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"contentcatalog/internal/catalog"
	"contentcatalog/internal/fileutil"
	"contentcatalog/internal/history"
	"contentcatalog/internal/logging"
	"contentcatalog/internal/merge"
)

// Merge joins program metadata into the already emitted catalog and writes
// it back. Record order and every other field are preserved, as is the
// source name in the provenance comment.
func (r *Runner) Merge(ctx context.Context) (Summary, error) {
	started := r.now()
	summary := Summary{
		RunID:     newRunID(),
		Kind:      history.KindMerge,
		Secondary: r.cfg.Paths.SecondarySource,
		Output:    r.cfg.Paths.Output,
	}
	logger := r.logger.With(logging.String(logging.FieldRunID, summary.RunID))

	if r.cfg.Paths.SecondarySource == "" {
		return summary, ErrNoSecondarySource
	}
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	existing, err := os.ReadFile(r.cfg.Paths.Output)
	if err != nil {
		return summary, fmt.Errorf("read catalog %s: %w", r.cfg.Paths.Output, err)
	}
	records, err := catalog.Parse(existing, r.cfg.Emit.Binding)
	if err != nil {
		return summary, fmt.Errorf("parse catalog %s: %w", r.cfg.Paths.Output, err)
	}
	sourceName, ok := catalog.SourceName(existing)
	if !ok {
		sourceName = filepath.Base(r.cfg.Paths.PrimarySource)
	}
	summary.Source = sourceName
	summary.Rows = len(records)
	summary.Records = len(records)

	lookup, err := r.loadLookup(logger)
	if err != nil {
		return summary, err
	}
	stats := merge.Apply(records, lookup, logger)
	summary.Merge = &stats

	data, err := catalog.Encode(records, catalog.EncodeOptions{
		SourceName: sourceName,
		Binding:    r.cfg.Emit.Binding,
		Indent:     r.cfg.Emit.Indent,
	})
	if err != nil {
		return summary, fmt.Errorf("encode catalog: %w", err)
	}
	if err := catalog.WriteFile(r.cfg.Paths.Output, data); err != nil {
		return summary, err
	}

	summary.Bytes = len(data)
	summary.SHA256 = fileutil.SHA256(data)
	finished := r.now()
	summary.Elapsed = finished.Sub(started)

	logger.Info("catalog re-enriched",
		logging.String("output", summary.Output),
		logging.Int("records", summary.Records),
		logging.Int("updated", stats.Updated),
	)
	r.recordHistory(ctx, logger, summary.historyRun(started, finished))
	return summary, nil
}
