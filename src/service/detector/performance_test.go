package detector

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeinsight/src/model"
)

func TestPerformanceDetectorNestedLoops(t *testing.T) {
	unit := jsUnit("matrix.js",
		"for (i = 0; i < n; i++) {\n"+
			"  for (j = 0; j < n; j++) {\n"+
			"    for (k = 0; k < n; k++) {\n"+
			"      total += grid[i][j][k];\n"+
			"    }\n"+
			"  }\n"+
			"}\n")

	issues := NewPerformanceDetector().Detect(unit)

	require.Len(t, issues, 1)
	assert.Equal(t, "Deeply nested loops", issues[0].Title)
	assert.Equal(t, model.SeverityHigh, issues[0].Severity)
	assert.Equal(t, 1, issues[0].Line)
}

func TestPerformanceDetectorTwoLoopsClean(t *testing.T) {
	unit := jsUnit("grid.js",
		"for (i = 0; i < n; i++) {\n"+
			"  for (j = 0; j < n; j++) {\n"+
			"    total += grid[i][j];\n"+
			"  }\n"+
			"}\n")

	assert.Empty(t, NewPerformanceDetector().Detect(unit))
}

func TestPerformanceDetectorNPlusOne(t *testing.T) {
	unit := jsUnit("orders.js", "users.forEach(user => fetch(baseURL + user.id));\n")

	issues := NewPerformanceDetector().Detect(unit)

	require.Len(t, issues, 1)
	assert.Equal(t, "Possible N+1 query pattern", issues[0].Title)
	assert.Equal(t, model.SeverityMedium, issues[0].Severity)
}

func TestPerformanceDetectorBlockingIO(t *testing.T) {
	unit := jsUnit("load.js", "const data = readFileSync(\"config.json\");\n")

	issues := NewPerformanceDetector().Detect(unit)

	require.Len(t, issues, 1)
	assert.Equal(t, "Blocking I/O call", issues[0].Title)
}

func TestPerformanceDetectorListenerLeak(t *testing.T) {
	unit := jsUnit("widget.js",
		"function mount(el) {\n"+
			"  el.addEventListener(\"click\", onClick);\n"+
			"}\n")

	issues := NewPerformanceDetector().Detect(unit)

	require.Len(t, issues, 1)
	assert.Equal(t, "Event listener without teardown", issues[0].Title)
	assert.Equal(t, 2, issues[0].Line)
}

func TestPerformanceDetectorListenerWithTeardownClean(t *testing.T) {
	unit := jsUnit("widget.js",
		"el.addEventListener(\"click\", onClick);\n"+
			"el.removeEventListener(\"click\", onClick);\n")

	assert.Empty(t, NewPerformanceDetector().Detect(unit))
}

func TestPerformanceDetectorOversizedLiteral(t *testing.T) {
	unit := jsUnit("data.js", "const blob = \""+strings.Repeat("x", 600)+"\";\n")

	issues := NewPerformanceDetector().Detect(unit)

	require.Len(t, issues, 1)
	assert.Equal(t, "Oversized inline literal", issues[0].Title)
	assert.Equal(t, model.SeverityLow, issues[0].Severity)
	assert.Equal(t, 1, issues[0].Line)
}
