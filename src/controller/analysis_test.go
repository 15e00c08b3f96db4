package controller

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeinsight/src/config"
	"codeinsight/src/model"
	"codeinsight/src/service/genai"
	"codeinsight/src/service/session"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.GenAI.APIKeyEnv = "CODEINSIGHT_TEST_UNSET_KEY"
	return cfg
}

func disabledGen(cfg *config.Config) genai.TextGenerator {
	return genai.NewClient(cfg.GenAI)
}

func writeSource(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestAnalyzeProducesReport(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "db.js",
		"db.query(\"SELECT * FROM users WHERE id=\" + id);\n")
	writeSource(t, root, "util.js",
		"function add(a, b) {\n  return a + b;\n}\n")

	cfg := testConfig()
	ctrl := NewAnalysisController(cfg, disabledGen(cfg))

	rep, units, err := ctrl.Analyze(context.Background(), root)

	require.NoError(t, err)
	require.NotNil(t, rep)
	assert.Len(t, units, 2)
	assert.Equal(t, 2, rep.Summary.TotalFiles)

	// The injection finding must be present and sorted to the top
	require.NotEmpty(t, rep.Issues)
	assert.Equal(t, model.SeverityCritical, rep.Issues[0].Severity)
	assert.Equal(t, model.TypeSecurity, rep.Issues[0].Type)
	assert.Equal(t, "db.js", rep.Issues[0].File)

	// Heuristic passes ran: no tests, no readme
	hasTesting, hasDocs := false, false
	for _, issue := range rep.Issues {
		switch issue.Type {
		case model.TypeTesting:
			hasTesting = true
		case model.TypeDocumentation:
			hasDocs = true
		}
	}
	assert.True(t, hasTesting)
	assert.True(t, hasDocs)

	for _, issue := range rep.Issues {
		assert.NotEmpty(t, issue.ID)
	}
}

func TestAnalyzeEmptyTree(t *testing.T) {
	cfg := testConfig()
	ctrl := NewAnalysisController(cfg, disabledGen(cfg))

	_, _, err := ctrl.Analyze(context.Background(), t.TempDir())

	require.ErrorIs(t, err, model.ErrNoInput)
}

func TestAnalyzeMissingRoot(t *testing.T) {
	cfg := testConfig()
	ctrl := NewAnalysisController(cfg, disabledGen(cfg))

	_, _, err := ctrl.Analyze(context.Background(), filepath.Join(t.TempDir(), "absent"))

	require.Error(t, err)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.js", "const x = 1;\n")

	cfg := testConfig()
	ctrl := NewAnalysisController(cfg, disabledGen(cfg))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, _, err := ctrl.Analyze(ctx, root)

	require.Error(t, err)
	assert.Nil(t, rep)
}

func TestWriteReports(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.js", "const x = 1;\n")

	cfg := testConfig()
	cfg.Output.OutputDir = filepath.Join(root, "out")
	cfg.Output.Formats = []string{"json", "markdown"}

	ctrl := NewAnalysisController(cfg, disabledGen(cfg))
	rep, _, err := ctrl.Analyze(context.Background(), root)
	require.NoError(t, err)

	paths, err := NewReportController(cfg).WriteReports(rep)

	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.FileExists(t, filepath.Join(root, "out", "quality-report.json"))
	assert.FileExists(t, filepath.Join(root, "out", "quality-report.md"))
}

func TestQAControllerSessionFlow(t *testing.T) {
	root := t.TempDir()
	writeSource(t, root, "a.js", "const x = 1;\n")

	cfg := testConfig()
	gen := disabledGen(cfg)

	analysisCtrl := NewAnalysisController(cfg, gen)
	rep, units, err := analysisCtrl.Analyze(context.Background(), root)
	require.NoError(t, err)

	qa := NewQAController(cfg, gen)
	sess := qa.CreateSession(rep, units)

	questions, err := qa.SuggestedQuestions(sess.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, questions)

	// A credential-less generator fails the call; the session answers
	// with the fallback and records nothing
	answer, err := qa.Ask(context.Background(), sess.ID, "what should I fix?")
	require.NoError(t, err)
	assert.Equal(t, session.FallbackAnswer, answer)

	history, err := qa.History(sess.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	qa.DeleteSession(sess.ID)
	_, err = qa.SuggestedQuestions(sess.ID)
	require.ErrorIs(t, err, model.ErrSessionNotFound)
}
