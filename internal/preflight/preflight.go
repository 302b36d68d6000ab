package preflight

import (
	"contentcatalog/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every applicable check for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckReadableFile("Primary source", cfg.Paths.PrimarySource),
	}

	if cfg.MergeEnabled() {
		results = append(results, CheckReadableFile("Program metadata", cfg.Paths.SecondarySource))
	}

	if cfg.Mapping.File != "" {
		results = append(results, CheckReadableFile("Field mapping", cfg.Mapping.File))
	}

	results = append(results, CheckWritableTarget("Output", cfg.Paths.Output))

	// Missing samples only degrade the build.
	if cfg.SamplesEnabled() {
		result := CheckDirectoryAccess("Samples directory", cfg.Samples.Dir, false)
		result.Optional = true
		results = append(results, result)
	}

	if cfg.History.Path != "" {
		results = append(results, CheckWritableTarget("Run history", cfg.History.Path))
	}

	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
