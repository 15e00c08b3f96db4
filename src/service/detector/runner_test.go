package detector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeinsight/src/config"
	"codeinsight/src/model"
)

func runnerUnits() []model.SourceUnit {
	return []model.SourceUnit{
		jsUnit("a.js", "db.query(\"SELECT * FROM users WHERE id=\" + id);\n"),
		jsUnit("b.js", "const data = readFileSync(\"b.json\");\n"),
		jsUnit("c.js", "const total = a + b;\n"),
	}
}

func TestRunnerRegistersEnabledDetectors(t *testing.T) {
	cfg := config.DefaultConfig()
	runner := NewRunner(cfg)
	assert.Equal(t, []string{"security", "performance", "complexity"}, runner.ListDetectors())

	cfg.Detectors.Performance = false
	runner = NewRunner(cfg)
	assert.Equal(t, []string{"security", "complexity"}, runner.ListDetectors())
}

func TestRunnerRunAll(t *testing.T) {
	runner := NewRunner(config.DefaultConfig())

	issues, err := runner.RunAll(context.Background(), runnerUnits())

	require.NoError(t, err)
	require.Len(t, issues, 2)
	assert.Equal(t, "a.js", issues[0].File)
	assert.Equal(t, "b.js", issues[1].File)
}

func TestRunnerDeterministicOrder(t *testing.T) {
	runner := NewRunner(config.DefaultConfig())
	units := runnerUnits()

	first, err := runner.RunAll(context.Background(), units)
	require.NoError(t, err)
	second, err := runner.RunAll(context.Background(), units)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunnerCancelledContext(t *testing.T) {
	runner := NewRunner(config.DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	issues, err := runner.RunAll(ctx, runnerUnits())

	require.Error(t, err)
	assert.Nil(t, issues)
}

func TestRunnerNoDetectors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Detectors = config.DetectorsConfig{}
	runner := NewRunner(cfg)

	issues, err := runner.RunAll(context.Background(), runnerUnits())

	require.NoError(t, err)
	assert.Empty(t, issues)
}
