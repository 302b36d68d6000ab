package pipeline_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contentcatalog/internal/audit"
	"contentcatalog/internal/catalog"
	"contentcatalog/internal/config"
	"contentcatalog/internal/history"
	"contentcatalog/internal/merge"
	"contentcatalog/internal/pipeline"
	"contentcatalog/internal/tabular"
	"contentcatalog/internal/testsupport"
)

const header = "id,langID,iso3,langEn,langTh,titleEn,titleTh,verseEn,verseTh,playUrl,downloadTrack001Url,downloadZipUrl,program"

func writeSources(t *testing.T, cfg *config.Config) {
	t.Helper()
	testsupport.WriteCSV(t, cfg.Paths.PrimarySource,
		"\ufeff"+header,
		"7,1148,aeu,Akeu,อาเคอ,Hope,ความหวัง,Faith\u200b comes,ความเชื่อ,https://x/p7,https://x/t7,https://x/z7,12",
		",1148,aeu,Akeu,,Blank,,,,,,,12",
		"8,1148,aeu,Akeu,,Light,,,,,,,99",
	)
	testsupport.WriteWorkbook(t, cfg.Paths.SecondarySource, [][]any{
		{"Program Set Number", "Message Length", "Track Count"},
		{12, "3:45", 2},
	})
}

func newRunner(t *testing.T, cfg *config.Config, opts ...pipeline.Option) *pipeline.Runner {
	t.Helper()
	runner, err := pipeline.New(cfg, nil, opts...)
	require.NoError(t, err)
	return runner
}

func TestBuildScenario(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)
	store := testsupport.MustOpenHistory(t, cfg)

	summary, err := newRunner(t, cfg, pipeline.WithHistory(store)).Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Rows)
	assert.Equal(t, 2, summary.Records)
	require.Len(t, summary.Skipped, 1)
	assert.Equal(t, 3, summary.Skipped[0].Line)
	require.NotNil(t, summary.Merge)
	assert.Equal(t, merge.Stats{Updated: 1, Unmatched: 1, Lookup: 1}, *summary.Merge)
	assert.Nil(t, summary.Samples)

	records, err := catalog.ReadFile(cfg.Paths.Output, "")
	require.NoError(t, err)
	require.Len(t, records, 2)

	hope := records[0]
	assert.Equal(t, "7", hope.Text("id"))
	assert.Equal(t, "Hope", hope.Text("title_en"))
	assert.Equal(t, "Faith comes", hope.Text("verse_en"))
	duration, _ := hope.Get("duration")
	assert.Equal(t, catalog.String("3:45"), duration)
	trackCount, _ := hope.Get("trackCount")
	assert.Equal(t, catalog.Int(2), trackCount)

	assert.False(t, records[1].Has("duration"), "unmatched records stay unenriched")

	data := testsupport.ReadFile(t, cfg.Paths.Output)
	assert.Contains(t, data, "// This file was automatically generated from your CSV data on your_content_data.csv.\n")
	assert.Contains(t, data, `"title_th": "ความหวัง"`)

	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, summary.RunID, runs[0].ID)
	assert.Equal(t, summary.SHA256, runs[0].SHA256)
	assert.Equal(t, 1, runs[0].Updated)
}

func TestBuildIsDeterministic(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)
	runner := newRunner(t, cfg)

	first, err := runner.Build(context.Background())
	require.NoError(t, err)
	before := testsupport.ReadFile(t, cfg.Paths.Output)

	second, err := runner.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, before, testsupport.ReadFile(t, cfg.Paths.Output))
	assert.Equal(t, first.SHA256, second.SHA256)
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestBuildZeroRowsWritesEmptyArray(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Merge.Enabled = false
	testsupport.WriteCSV(t, cfg.Paths.PrimarySource, header)

	summary, err := newRunner(t, cfg).Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Records)
	assert.Equal(t,
		"// This file was automatically generated from your CSV data on your_content_data.csv.\nexport const staticContent = [];\n",
		testsupport.ReadFile(t, cfg.Paths.Output))
}

func TestBuildMissingPrimaryWritesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	_, err := newRunner(t, cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabular.ErrUnavailable))
	assert.NoFileExists(t, cfg.Paths.Output)
}

func TestBuildMissingSecondaryWritesNothing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)
	require.NoError(t, os.Remove(cfg.Paths.SecondarySource))

	_, err := newRunner(t, cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, tabular.ErrUnavailable))
	assert.NoFileExists(t, cfg.Paths.Output)
}

func TestBuildMissingMergeColumnIsFatal(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)
	testsupport.WriteWorkbook(t, cfg.Paths.SecondarySource, [][]any{
		{"Program Set Number", "Message Length"},
		{12, "3:45"},
	})

	_, err := newRunner(t, cfg).Build(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, merge.ErrMissingColumns))
	assert.NoFileExists(t, cfg.Paths.Output)
}

func TestBuildAttachesSamples(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)
	cfg.Samples.Dir = filepath.Join(filepath.Dir(cfg.Paths.PrimarySource), "public", "audio")
	testsupport.WriteFile(t, filepath.Join(cfg.Samples.Dir, "Akeu.1148.mp3"), "x")

	summary, err := newRunner(t, cfg).Build(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary.Samples)
	assert.Equal(t, 2, summary.Samples.Attached)

	records, err := catalog.ReadFile(cfg.Paths.Output, "")
	require.NoError(t, err)
	assert.Equal(t, "/audio/Akeu.1148.mp3", records[0].Text("sampleUrl"))
	assert.Equal(t, "Akeu", records[0].Text("stableKey"))
	assert.Equal(t,
		[]string{"id", "langId", "iso3", "languageEn", "languageTh", "title_en", "title_th", "verse_en", "verse_th",
			"streamUrl", "trackDownloadUrl", "zipDownloadUrl", "programId", "duration", "trackCount", "sampleUrl", "stableKey"},
		records[0].Keys())
}

func TestBuildWithMappingOverride(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Merge.Enabled = false
	cfg.Mapping.File = testsupport.WriteFile(t, filepath.Join(filepath.Dir(cfg.Paths.PrimarySource), "mapping.yaml"),
		"- column: id\n  key: id\n- column: titleEn\n  key: title\n- column: shareProgUrl\n  key: shareUrl\n")
	testsupport.WriteCSV(t, cfg.Paths.PrimarySource,
		"id,titleEn,shareProgUrl",
		"5,Grace,https://x/share",
	)

	_, err := newRunner(t, cfg).Build(context.Background())
	require.NoError(t, err)

	records, err := catalog.ReadFile(cfg.Paths.Output, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"id", "title", "shareUrl"}, records[0].Keys())
}

func TestMergeReenrichesExistingCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)
	cfg.Merge.Enabled = false
	runner := newRunner(t, cfg)

	_, err := runner.Build(context.Background())
	require.NoError(t, err)
	records, err := catalog.ReadFile(cfg.Paths.Output, "")
	require.NoError(t, err)
	require.False(t, records[0].Has("duration"))

	summary, err := runner.Merge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "your_content_data.csv", summary.Source)
	require.NotNil(t, summary.Merge)
	assert.Equal(t, 1, summary.Merge.Updated)

	records, err = catalog.ReadFile(cfg.Paths.Output, "")
	require.NoError(t, err)
	require.Len(t, records, 2)
	trackCount, _ := records[0].Get("trackCount")
	assert.Equal(t, catalog.Int(2), trackCount)
	assert.Equal(t, "8", records[1].Text("id"))

	// Merge output equals a build with merge enabled.
	merged := testsupport.ReadFile(t, cfg.Paths.Output)
	cfg.Merge.Enabled = true
	_, err = runner.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testsupport.ReadFile(t, cfg.Paths.Output), merged)
}

func TestMergeWithoutCatalogFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)

	_, err := newRunner(t, cfg).Merge(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestMergeRecordsHistory(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)
	store := testsupport.MustOpenHistory(t, cfg)
	runner := newRunner(t, cfg, pipeline.WithHistory(store))

	_, err := runner.Build(context.Background())
	require.NoError(t, err)
	_, err = runner.Merge(context.Background())
	require.NoError(t, err)

	runs, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	kinds := []string{runs[0].Kind, runs[1].Kind}
	assert.ElementsMatch(t, []string{history.KindBuild, history.KindMerge}, kinds)
}

func TestAuditAfterBuild(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)
	runner := newRunner(t, cfg)
	_, err := runner.Build(context.Background())
	require.NoError(t, err)

	report, err := runner.Audit(context.Background(), audit.Selector{Language: "Akeu"})
	require.NoError(t, err)
	assert.Len(t, report.Source, 3)
	assert.Len(t, report.Catalog, 2)
	assert.Equal(t, []string{"12", "99"}, report.Programs)
	assert.Empty(t, report.Mismatches)
	assert.Empty(t, report.OnlyInCatalog)
}

func TestAuditMissingCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)

	_, err := newRunner(t, cfg).Audit(context.Background(), audit.Selector{Language: "Akeu"})
	require.Error(t, err)
}

func TestInspectDescribesColumns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeSources(t, cfg)

	inspection, err := newRunner(t, cfg).Inspect(context.Background(), "", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, inspection.Rows)
	assert.Empty(t, inspection.Missing)
	require.Len(t, inspection.Columns, 3)
	assert.Equal(t, "Program Set Number", inspection.Columns[0].Name)
	assert.Equal(t, []string{"integer"}, inspection.Columns[0].Kinds)
	assert.Equal(t, []string{"text"}, inspection.Columns[1].Kinds)
	assert.Equal(t, []string{"3:45"}, inspection.Columns[1].Examples)
}

func TestInspectReportsMissingMergeColumns(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := testsupport.WriteCSV(t, filepath.Join(t.TempDir(), "tracks.csv"), "Program,Length", "12,3:45")

	inspection, err := newRunner(t, cfg).Inspect(context.Background(), path, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Program Set Number", "Message Length", "Track Count"}, inspection.Missing)
}
