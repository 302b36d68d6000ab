package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"contentcatalog/internal/catalog"
	"contentcatalog/internal/fileutil"
	"contentcatalog/internal/history"
	"contentcatalog/internal/ingest"
	"contentcatalog/internal/logging"
	"contentcatalog/internal/merge"
	"contentcatalog/internal/samples"
)

// Summary describes one completed run for the closing operator report.
type Summary struct {
	RunID     string
	Kind      string
	Source    string
	Secondary string
	Output    string

	Rows           int
	Records        int
	Skipped        []ingest.RowIssue
	Duplicates     []ingest.Duplicate
	MissingColumns []string

	Merge   *merge.Stats
	Samples *samples.Stats

	Bytes   int
	SHA256  string
	Elapsed time.Duration
}

// Build runs the full pipeline and writes the catalog. Nothing is written
// when the primary or secondary source cannot be read or the secondary
// source lacks a join column.
func (r *Runner) Build(ctx context.Context) (Summary, error) {
	started := r.now()
	summary := Summary{
		RunID:  newRunID(),
		Kind:   history.KindBuild,
		Source: r.cfg.Paths.PrimarySource,
		Output: r.cfg.Paths.Output,
	}
	logger := r.logger.With(logging.String(logging.FieldRunID, summary.RunID))

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	mapping, err := r.mapping()
	if err != nil {
		return summary, err
	}

	result, err := ingest.Load(r.cfg.Paths.PrimarySource, r.csvOptions(), mapping, r.normalizer, logger)
	if err != nil {
		return summary, err
	}
	summary.Rows = result.Rows
	summary.Records = len(result.Records)
	summary.Skipped = result.Skipped
	summary.Duplicates = result.Duplicates
	summary.MissingColumns = result.MissingColumns
	records := result.Records

	if r.cfg.MergeEnabled() {
		summary.Secondary = r.cfg.Paths.SecondarySource
		lookup, err := r.loadLookup(logger)
		if err != nil {
			return summary, err
		}
		stats := merge.Apply(records, lookup, logger)
		summary.Merge = &stats
	}

	if r.cfg.SamplesEnabled() {
		stats := samples.Attach(records, samples.Options{Dir: r.cfg.Samples.Dir, URLPrefix: r.cfg.Samples.URLPrefix}, logger)
		summary.Samples = &stats
	}

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	data, err := catalog.Encode(records, catalog.EncodeOptions{
		SourceName: filepath.Base(r.cfg.Paths.PrimarySource),
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

	logger.Info("catalog written",
		logging.String("output", summary.Output),
		logging.Int("records", summary.Records),
		logging.Int("skipped", len(summary.Skipped)),
		logging.Int("duplicates", len(summary.Duplicates)),
		logging.Int("bytes", summary.Bytes),
	)
	r.recordHistory(ctx, logger, summary.historyRun(started, finished))
	return summary, nil
}

func (s Summary) historyRun(started, finished time.Time) history.Run {
	run := history.Run{
		ID:         s.RunID,
		Kind:       s.Kind,
		StartedAt:  started,
		FinishedAt: finished,
		Source:     s.Source,
		Secondary:  s.Secondary,
		Output:     s.Output,
		Records:    s.Records,
		Skipped:    len(s.Skipped),
		Duplicates: len(s.Duplicates),
		SHA256:     s.SHA256,
	}
	if s.Merge != nil {
		run.Updated = s.Merge.Updated
	}
	if s.Samples != nil {
		run.Samples = s.Samples.Attached
	}
	return run
}
