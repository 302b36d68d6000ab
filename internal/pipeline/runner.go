package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"contentcatalog/internal/config"
	"contentcatalog/internal/fieldmap"
	"contentcatalog/internal/history"
	"contentcatalog/internal/logging"
	"contentcatalog/internal/merge"
	"contentcatalog/internal/tabular"
	"contentcatalog/internal/textnorm"
)

// ErrNoSecondarySource indicates a merge was requested without a secondary source.
var ErrNoSecondarySource = errors.New("no secondary source configured")

// Runner executes pipeline operations for one configuration.
type Runner struct {
	cfg        *config.Config
	logger     *slog.Logger
	history    *history.Store
	normalizer *textnorm.Normalizer
	now        func() time.Time
}

// Option customises a Runner.
type Option func(*Runner)

// WithHistory records successful runs in store.
func WithHistory(store *history.Store) Option {
	return func(r *Runner) { r.history = store }
}

// WithClock overrides the time source used for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// New constructs a Runner. A nil logger discards output.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pipeline requires a config")
	}
	r := &Runner{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
		normalizer: textnorm.Default(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

func (r *Runner) mapping() (fieldmap.Mapping, error) {
	m, err := fieldmap.LoadFile(r.cfg.Mapping.File)
	if err != nil {
		return fieldmap.Mapping{}, fmt.Errorf("load field mapping: %w", err)
	}
	return m, nil
}

func (r *Runner) csvOptions() tabular.CSVOptions {
	delimiter, _ := utf8.DecodeRuneInString(r.cfg.Source.Delimiter)
	return tabular.CSVOptions{Encoding: r.cfg.Source.Encoding, Delimiter: delimiter}
}

func (r *Runner) mergeColumns() merge.Columns {
	return merge.Columns{
		Key:        r.cfg.Merge.KeyColumn,
		Duration:   r.cfg.Merge.DurationColumn,
		TrackCount: r.cfg.Merge.TrackCountColumn,
	}
}

func (r *Runner) loadLookup(logger *slog.Logger) (*merge.Lookup, error) {
	opts := tabular.Options{CSV: r.csvOptions(), Sheet: r.cfg.Merge.Sheet}
	lookup, err := merge.Load(r.cfg.Paths.SecondarySource, opts, r.mergeColumns())
	if err != nil {
		return nil, err
	}
	logger.Debug("program metadata loaded",
		logging.String("source", filepath.Base(r.cfg.Paths.SecondarySource)),
		logging.Int("programs", lookup.Len()),
		logging.Int("excluded_rows", lookup.Excluded),
		logging.Int("replaced_rows", lookup.Replaced),
	)
	return lookup, nil
}

// recordHistory stores run when history is enabled. The catalog is already
// written at this point, so failures are logged rather than returned.
func (r *Runner) recordHistory(ctx context.Context, logger *slog.Logger, run history.Run) {
	if r.history == nil {
		return
	}
	if _, err := r.history.Record(ctx, run); err != nil {
		logging.WarnWithContext(logger, "failed to record run history", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check history.path permissions"),
			logging.String(logging.FieldImpact, "catalog written but run not recorded"),
		)
	}
}

func newRunID() string {
	return uuid.NewString()
}
