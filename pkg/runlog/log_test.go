package runlog

import (
	"os"
	"strings"
	"testing"

	"lidbench/pkg/core"
	"lidbench/pkg/langmap"
	"lidbench/pkg/report"
	"lidbench/pkg/score"

	"github.com/stretchr/testify/require"
)

func fixtureLog(t *testing.T) Log {
	t.Helper()
	mapping := langmap.New([]string{"deu", "fra"}, []string{"de", "fr"})

	predictions := []core.Prediction{
		{Sample: core.Sample{ID: 1, Tag: "deu", Text: "guten morgen"}, Outcome: core.OutcomeCode, Code: "de"},
		{Sample: core.Sample{ID: 2, Tag: "deu", Text: strings.Repeat("ä", 300)}, Outcome: core.OutcomeCode, Code: "nl"},
		{Sample: core.Sample{ID: 3, Tag: "fra", Text: "bonjour"}, Outcome: core.OutcomeUnknown, Code: core.Unknown},
		{Sample: core.Sample{ID: 4, Tag: "fra", Text: "salut"}, Outcome: core.OutcomeError, Err: "timeout"},
	}

	rep := report.Build(report.RunInfo{Detector: "mock", Corpus: "bench.tsv", Seed: 42}, score.Result{TotalSamples: 4}, nil)
	return New(rep, predictions, mapping)
}

func TestNewCollectsMistakesWithExcerpts(t *testing.T) {
	log := fixtureLog(t)

	require.Len(t, log.Mistakes, 1)
	m := log.Mistakes[0]
	require.Equal(t, "deu", m.Tag)
	require.Equal(t, "de", m.Expected)
	require.Equal(t, "nl", m.Predicted)
	// Truncated to the excerpt length in runes, not bytes.
	require.Equal(t, 200, len([]rune(m.Text)))
}

func TestWriteAndReadArchive(t *testing.T) {
	log := fixtureLog(t)
	dir := t.TempDir()

	path, err := WriteArchive(dir, log)
	require.NoError(t, err)
	require.FileExists(t, path)

	loaded, err := ReadArchive(path)
	require.NoError(t, err)
	require.Equal(t, log.Version, loaded.Version)
	require.Equal(t, log.Report.Run.Detector, loaded.Report.Run.Detector)
	require.Len(t, loaded.Predictions, 4)
}

func TestWriteJSON(t *testing.T) {
	log := fixtureLog(t)
	dir := t.TempDir()

	path, err := WriteJSON(dir, log)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"mistakes"`)
	require.Contains(t, string(data), "bonjour")
}

func TestFailedSamples(t *testing.T) {
	log := fixtureLog(t)

	failed := FailedSamples(log)
	require.Len(t, failed, 1)
	require.Equal(t, 4, failed[0].ID)
	require.Equal(t, "fra", failed[0].Tag)
}

func TestWriteJSONRequiresDir(t *testing.T) {
	_, err := WriteJSON("", Log{})
	require.Error(t, err)
}
